// Package grade records official race outcomes against stored predictions.
package grade

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/cboland/raceledger/models"
	"github.com/cboland/raceledger/wager"
)

// ErrRaceNotFound is returned when grading is attempted for a race key that
// was never ingested.
var ErrRaceNotFound = errors.New("race not found")

// Outcome is the full official result for one race. Grading always replaces
// the stored Result wholesale; partial re-grades are not supported, so every
// field must be supplied each time.
type Outcome struct {
	Winner string
	Second string
	Third  string

	// Payouts as quoted by the source, with the base stake each was quoted
	// at. A zero base means "already $2.00"; common sources quote exactas at
	// $1.00 and trifectas at $0.50.
	WinPayout      float64
	ExactaPayout   float64
	TrifectaPayout float64
	WinBase        float64
	ExactaBase     float64
	TrifectaBase   float64
}

func rescale(payout, base float64) float64 {
	d := wager.RescaleToBase(decimal.NewFromFloat(payout), decimal.NewFromFloat(base))
	v, _ := d.Float64()
	return v
}

// result converts the outcome to its stored form, with every payout on the
// $2.00 base.
func (o Outcome) result(raceKey string) *models.Result {
	return &models.Result{
		RaceKey:        raceKey,
		WinnerNumber:   strings.TrimSpace(o.Winner),
		SecondNumber:   strings.TrimSpace(o.Second),
		ThirdNumber:    strings.TrimSpace(o.Third),
		WinPayout:      rescale(o.WinPayout, o.WinBase),
		ExactaPayout:   rescale(o.ExactaPayout, o.ExactaBase),
		TrifectaPayout: rescale(o.TrifectaPayout, o.TrifectaBase),
	}
}

// Grade writes the outcome for raceKey. The Result row is upserted whole:
// re-grading a race overwrites all three finishers and all three payouts.
func Grade(ctx context.Context, bdb *bun.DB, raceKey string, o Outcome) error {
	exists, err := bdb.NewSelect().Model((*models.Race)(nil)).
		Where("race_key = ?", raceKey).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("checking race %s: %w", raceKey, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrRaceNotFound, raceKey)
	}

	res := o.result(raceKey)
	_, err = bdb.NewInsert().Model(res).
		On("CONFLICT (race_key) DO UPDATE").
		Set("winner_number = EXCLUDED.winner_number").
		Set("second_number = EXCLUDED.second_number").
		Set("third_number = EXCLUDED.third_number").
		Set("win_payout = EXCLUDED.win_payout").
		Set("exacta_payout = EXCLUDED.exacta_payout").
		Set("trifecta_payout = EXCLUDED.trifecta_payout").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upserting result for %s: %w", raceKey, err)
	}
	return nil
}

// MarkFinishPositions applies a scraped finishing order (rank 1..4 to program
// number) to the race's predictions. Matching is exact trimmed string
// equality on the program number: only horses the oracle actually picked get
// a finish position, and no prediction rows are ever invented. Prior
// positions for the race are cleared first so a re-grade starts clean.
// Returns how many predictions were matched.
func MarkFinishPositions(ctx context.Context, bdb *bun.DB, raceKey string, order map[int]string) (int, error) {
	exists, err := bdb.NewSelect().Model((*models.Race)(nil)).
		Where("race_key = ?", raceKey).
		Exists(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking race %s: %w", raceKey, err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrRaceNotFound, raceKey)
	}

	matched := 0
	err = bdb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model((*models.Prediction)(nil)).
			Set("finish_position = NULL").
			Where("race_key = ?", raceKey).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("clearing positions for %s: %w", raceKey, err)
		}

		for pos, pgm := range order {
			res, err := tx.NewUpdate().Model((*models.Prediction)(nil)).
				Set("finish_position = ?", pos).
				Where("race_key = ? AND horse_number = ?", raceKey, strings.TrimSpace(pgm)).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("marking position %d for %s: %w", pos, raceKey, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				matched += int(n)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return matched, nil
}
