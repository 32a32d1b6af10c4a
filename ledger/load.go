package ledger

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// gradedRow is a flat scan target for the graded join query. One row per
// prediction; races group them back together.
type gradedRow struct {
	// races table (alias rc) and meetings (alias m)
	RaceKey  string `bun:"race_key"`
	Track    string `bun:"track"`
	Date     string `bun:"date"`
	Number   int    `bun:"race_number"`
	Strategy string `bun:"betting_strategy"`
	// predictions table (alias p)
	HorseNumber string `bun:"horse_number"`
	Rank        int    `bun:"rank"`
	Confidence  string `bun:"confidence_level"`
	// results table (alias res)
	Winner         string  `bun:"winner_number"`
	Second         string  `bun:"second_number"`
	Third          string  `bun:"third_number"`
	WinPayout      float64 `bun:"win_payout"`
	ExactaPayout   float64 `bun:"exacta_payout"`
	TrifectaPayout float64 `bun:"trifecta_payout"`
}

const gradedJoinSQL = `
SELECT
	rc.race_key, m.track, m.date, rc.race_number, rc.betting_strategy,
	p.horse_number, p.rank, p.confidence_level,
	res.winner_number, res.second_number, res.third_number,
	res.win_payout, res.exacta_payout, res.trifecta_payout
FROM predictions p
INNER JOIN races    rc  ON p.race_key  = rc.race_key
INNER JOIN meetings m   ON rc.meeting_id = m.meeting_id
INNER JOIN results  res ON rc.race_key = res.race_key
ORDER BY m.date, m.track, rc.race_number, p.rank
`

// Load pulls every race that has both predictions and an official result.
// Track and date filtering happens later in Compute, where track names can
// be matched in normalized form.
func Load(ctx context.Context, bdb *bun.DB) ([]GradedRace, error) {
	var rows []gradedRow
	if err := bdb.NewRaw(gradedJoinSQL).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("loading graded races: %w", err)
	}
	return groupByRace(rows), nil
}

// groupByRace converts flat rows into race-grouped slices, preserving the
// query's ordering.
func groupByRace(rows []gradedRow) []GradedRace {
	order := []string{}
	races := map[string]*GradedRace{}

	for _, row := range rows {
		if _, ok := races[row.RaceKey]; !ok {
			order = append(order, row.RaceKey)
			races[row.RaceKey] = &GradedRace{
				RaceKey:        row.RaceKey,
				Track:          row.Track,
				Date:           row.Date,
				Number:         row.Number,
				Strategy:       row.Strategy,
				Winner:         row.Winner,
				Second:         row.Second,
				Third:          row.Third,
				WinPayout:      row.WinPayout,
				ExactaPayout:   row.ExactaPayout,
				TrifectaPayout: row.TrifectaPayout,
			}
		}
		races[row.RaceKey].Picks = append(races[row.RaceKey].Picks, PickRow{
			Number:     row.HorseNumber,
			Rank:       row.Rank,
			Confidence: row.Confidence,
		})
	}

	out := make([]GradedRace, 0, len(order))
	for _, k := range order {
		out = append(out, *races[k])
	}
	return out
}
