// Package ledger joins predictions, results and race data and simulates the
// fixed wagering strategies over the graded history: a flat win bet on the
// top pick, a $1 exacta box and a $0.50 trifecta box over the top three
// numbers.
package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cboland/raceledger/models"
	"github.com/cboland/raceledger/normalize"
	"github.com/cboland/raceledger/racekey"
	"github.com/cboland/raceledger/wager"
)

// Filter restricts the graded-race window and overrides stake sizes.
// Zero-valued stakes fall back to the wager package defaults.
type Filter struct {
	Tracks []string `json:"tracks,omitempty"` // case-insensitive substring match
	From   string   `json:"from,omitempty"`   // inclusive, YYYY-MM-DD
	To     string   `json:"to,omitempty"`     // inclusive

	WinStake     decimal.Decimal `json:"winStake,omitempty"`
	PrimeStake   decimal.Decimal `json:"primeStake,omitempty"`
	ExactaCost   decimal.Decimal `json:"exactaCost,omitempty"`
	TrifectaCost decimal.Decimal `json:"trifectaCost,omitempty"`
}

// Match reports whether a race at track on date falls inside the filter.
// Dates compare lexicographically, which is safe for YYYY-MM-DD.
func (f Filter) Match(track, date string) bool {
	if f.From != "" && date < f.From {
		return false
	}
	if f.To != "" && date > f.To {
		return false
	}
	if len(f.Tracks) == 0 {
		return true
	}
	norm := racekey.NormalizeTrack(track)
	for _, t := range f.Tracks {
		if strings.Contains(norm, racekey.NormalizeTrack(t)) {
			return true
		}
	}
	return false
}

func (f Filter) winStake() decimal.Decimal {
	if f.WinStake.IsPositive() {
		return f.WinStake
	}
	return wager.DefaultWinStake
}

func (f Filter) primeStake() decimal.Decimal {
	if f.PrimeStake.IsPositive() {
		return f.PrimeStake
	}
	return wager.DefaultPrimeStake
}

func (f Filter) exactaCost() decimal.Decimal {
	if f.ExactaCost.IsPositive() {
		return f.ExactaCost
	}
	return wager.DefaultExactaCost
}

func (f Filter) trifectaCost() decimal.Decimal {
	if f.TrifectaCost.IsPositive() {
		return f.TrifectaCost
	}
	return wager.DefaultTrifectaCost
}

// PickRow is the slice of a Prediction the simulations need.
type PickRow struct {
	Number     string
	Rank       int
	Confidence string
}

// GradedRace is one race carrying both predictions and an official result.
type GradedRace struct {
	RaceKey  string
	Track    string
	Date     string
	Number   int
	Strategy string
	Picks    []PickRow

	Winner string
	Second string
	Third  string

	WinPayout      float64 // all payouts at the $2 storage base
	ExactaPayout   float64
	TrifectaPayout float64
}

// WinLedger accumulates the flat win-bet simulation.
type WinLedger struct {
	Bets   int             `json:"bets"`
	Wins   int             `json:"wins"`
	Cost   decimal.Decimal `json:"cost"`
	Return decimal.Decimal `json:"return"`
	Net    decimal.Decimal `json:"net"`
	ROI    decimal.Decimal `json:"roi"`
}

// BoxLedger accumulates one of the box-bet simulations.
type BoxLedger struct {
	Opportunities int             `json:"opportunities"`
	Hits          int             `json:"hits"`
	Cost          decimal.Decimal `json:"cost"`
	Return        decimal.Decimal `json:"return"`
	Net           decimal.Decimal `json:"net"`
	ROI           decimal.Decimal `json:"roi"`
}

// TrackStats is the win-bet breakdown for one track.
type TrackStats struct {
	Track  string          `json:"track"`
	Races  int             `json:"races"`
	Wins   int             `json:"wins"`
	Cost   decimal.Decimal `json:"cost"`
	Return decimal.Decimal `json:"return"`
	Net    decimal.Decimal `json:"net"`
	ROI    decimal.Decimal `json:"roi"`
}

// MissDiagnosis is the advisory complete-miss readout. It never feeds the
// financial totals.
type MissDiagnosis struct {
	Count        int             `json:"count"`
	AvgWinPayout decimal.Decimal `json:"avgWinPayout"`
	Note         string          `json:"note"`
}

// Report is the full analytics output for a filtered window.
type Report struct {
	Races    int           `json:"races"`
	Win      WinLedger     `json:"win"`
	Exacta   BoxLedger     `json:"exacta"`
	Trifecta BoxLedger     `json:"trifecta"`
	Tracks   []TrackStats  `json:"tracks"`
	Misses   MissDiagnosis `json:"misses"`
}

// Advisory thresholds on the average winner payout of complete misses.
var (
	longshotThreshold = decimal.NewFromInt(20)
	favoriteThreshold = decimal.NewFromInt(8)
)

func cancelled(winner string) bool {
	w := strings.ToLower(strings.TrimSpace(winner))
	return w == "" || w == "cancelled" || w == "00"
}

// Compute runs the three simulations over the filtered races. Each
// simulation is independent and accumulated per race; a race missing a top
// pick still participates in the box bets if enough picks remain.
func Compute(races []GradedRace, f Filter) *Report {
	rep := &Report{}
	trackStats := map[string]*TrackStats{}
	missPayout := decimal.Zero

	for _, race := range races {
		if !f.Match(race.Track, race.Date) {
			continue
		}
		if cancelled(race.Winner) {
			continue
		}
		rep.Races++

		var top, danger, second *PickRow
		for i := range race.Picks {
			p := &race.Picks[i]
			switch p.Rank {
			case 1:
				top = p
			case 2:
				second = p
			case models.DangerRank:
				danger = p
			}
		}

		winPayout := decimal.NewFromFloat(race.WinPayout)

		// A. flat win bet on the top pick, bumped for the top confidence tier
		if top != nil {
			stake := f.winStake()
			if top.Confidence == normalize.ConfidenceBestOfDay {
				stake = f.primeStake()
			}

			ts, ok := trackStats[race.Track]
			if !ok {
				ts = &TrackStats{Track: race.Track}
				trackStats[race.Track] = ts
			}
			ts.Races++
			ts.Cost = ts.Cost.Add(stake)
			rep.Win.Bets++
			rep.Win.Cost = rep.Win.Cost.Add(stake)

			if racekey.SameRunner(top.Number, race.Winner) {
				ret := wager.WinReturn(winPayout, stake)
				ts.Wins++
				ts.Return = ts.Return.Add(ret)
				rep.Win.Wins++
				rep.Win.Return = rep.Win.Return.Add(ret)
			}
		}

		// B. box bets over the distinct top/danger/value numbers
		var numbers []string
		for _, p := range []*PickRow{top, danger, second} {
			if p != nil {
				numbers = append(numbers, p.Number)
			}
		}
		box := wager.BoxSet(numbers...)

		if len(box) >= wager.MinExactaBox {
			rep.Exacta.Opportunities++
			rep.Exacta.Cost = rep.Exacta.Cost.Add(f.exactaCost())
			if wager.InBox(box, race.Winner) && wager.InBox(box, race.Second) {
				rep.Exacta.Hits++
				rep.Exacta.Return = rep.Exacta.Return.Add(
					wager.ExactaReturn(decimal.NewFromFloat(race.ExactaPayout)))
			}
		}

		if len(box) >= wager.MinTrifectaBox {
			rep.Trifecta.Opportunities++
			rep.Trifecta.Cost = rep.Trifecta.Cost.Add(f.trifectaCost())
			if wager.InBox(box, race.Winner) && wager.InBox(box, race.Second) && wager.InBox(box, race.Third) {
				rep.Trifecta.Hits++
				rep.Trifecta.Return = rep.Trifecta.Return.Add(
					wager.TrifectaReturn(decimal.NewFromFloat(race.TrifectaPayout)))
			}
		}

		// C. complete-miss bookkeeping (advisory only)
		if len(race.Picks) > 0 && !anyPickWon(race) {
			rep.Misses.Count++
			missPayout = missPayout.Add(winPayout)
		}
	}

	rep.Win.Net = rep.Win.Return.Sub(rep.Win.Cost)
	rep.Win.ROI = wager.ROI(rep.Win.Net, rep.Win.Cost)
	rep.Exacta.Net = rep.Exacta.Return.Sub(rep.Exacta.Cost)
	rep.Exacta.ROI = wager.ROI(rep.Exacta.Net, rep.Exacta.Cost)
	rep.Trifecta.Net = rep.Trifecta.Return.Sub(rep.Trifecta.Cost)
	rep.Trifecta.ROI = wager.ROI(rep.Trifecta.Net, rep.Trifecta.Cost)

	for _, ts := range trackStats {
		ts.Net = ts.Return.Sub(ts.Cost)
		ts.ROI = wager.ROI(ts.Net, ts.Cost)
		rep.Tracks = append(rep.Tracks, *ts)
	}
	sort.Slice(rep.Tracks, func(i, j int) bool {
		return rep.Tracks[i].Net.GreaterThan(rep.Tracks[j].Net)
	})

	if rep.Misses.Count > 0 {
		rep.Misses.AvgWinPayout = missPayout.Div(decimal.NewFromInt(int64(rep.Misses.Count)))
		switch {
		case rep.Misses.AvgWinPayout.GreaterThan(longshotThreshold):
			rep.Misses.Note = "winners on complete misses are paying long; predictions skew away from long shots"
		case rep.Misses.AvgWinPayout.LessThan(favoriteThreshold):
			rep.Misses.Note = "winners on complete misses are short-priced favorites; check the data inputs"
		default:
			rep.Misses.Note = "complete misses are paying average prices; normal variance"
		}
	}

	return rep
}

func anyPickWon(race GradedRace) bool {
	for _, p := range race.Picks {
		if racekey.SameRunner(p.Number, race.Winner) {
			return true
		}
	}
	return false
}
