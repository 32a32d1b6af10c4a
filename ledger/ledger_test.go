package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cboland/raceledger/models"
	"github.com/cboland/raceledger/normalize"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func eq(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func gulfstreamRace(num int, picks []PickRow) GradedRace {
	return GradedRace{
		RaceKey: "gulfstream_park_2026-08-29_R" + string(rune('0'+num)),
		Track:   "Gulfstream Park",
		Date:    "2026-08-29",
		Number:  num,
		Picks:   picks,
	}
}

// Top pick wins at a stored $9.00 win payout: $2 stake returns $9.00,
// net +$7.00, ROI +350%.
func TestComputeWinHit(t *testing.T) {
	race := gulfstreamRace(1, []PickRow{{Number: "4", Rank: 1, Confidence: normalize.ConfidenceTopPick}})
	race.Winner = "4"
	race.WinPayout = 9.00

	rep := Compute([]GradedRace{race}, Filter{})

	if rep.Win.Bets != 1 || rep.Win.Wins != 1 {
		t.Fatalf("win ledger = %d bets %d wins, want 1/1", rep.Win.Bets, rep.Win.Wins)
	}
	eq(t, "win cost", rep.Win.Cost, "2")
	eq(t, "win return", rep.Win.Return, "9")
	eq(t, "win net", rep.Win.Net, "7")
	eq(t, "win roi", rep.Win.ROI, "350")
}

// A Best of Day pick carries the bigger stake and its return scales with it.
func TestComputePrimeStake(t *testing.T) {
	race := gulfstreamRace(1, []PickRow{{Number: "4", Rank: 1, Confidence: normalize.ConfidenceBestOfDay}})
	race.Winner = "4"
	race.WinPayout = 9.00

	rep := Compute([]GradedRace{race}, Filter{})

	eq(t, "win cost", rep.Win.Cost, "10")
	eq(t, "win return", rep.Win.Return, "45")
	eq(t, "win net", rep.Win.Net, "35")
}

// Exacta box over {4, 7}: $6 cost, winner and second both in the box, stored
// $40 payout pays $20 at the $1 box unit, net +$14.
func TestComputeExactaBoxHit(t *testing.T) {
	race := gulfstreamRace(1, []PickRow{
		{Number: "4", Rank: 1, Confidence: normalize.ConfidenceTopPick},
		{Number: "7", Rank: models.DangerRank, Confidence: normalize.ConfidenceDanger},
	})
	race.Winner = "7"
	race.Second = "4"
	race.Third = "2"
	race.WinPayout = 22.00
	race.ExactaPayout = 40.00

	rep := Compute([]GradedRace{race}, Filter{})

	if rep.Exacta.Opportunities != 1 || rep.Exacta.Hits != 1 {
		t.Fatalf("exacta = %d opps %d hits, want 1/1", rep.Exacta.Opportunities, rep.Exacta.Hits)
	}
	eq(t, "exacta cost", rep.Exacta.Cost, "6")
	eq(t, "exacta return", rep.Exacta.Return, "20")
	eq(t, "exacta net", rep.Exacta.Net, "14")

	// Only two numbers: no trifecta box.
	if rep.Trifecta.Opportunities != 0 {
		t.Errorf("trifecta opportunities = %d, want 0", rep.Trifecta.Opportunities)
	}
	// The flat win bet on the top pick lost.
	eq(t, "win return", rep.Win.Return, "0")
}

// Order within the box never matters; a third finisher outside it kills the
// trifecta but not the exacta.
func TestComputeTrifectaBox(t *testing.T) {
	picks := []PickRow{
		{Number: "4", Rank: 1, Confidence: normalize.ConfidenceTopPick},
		{Number: "7", Rank: 2, Confidence: normalize.ConfidenceContender},
		{Number: "9", Rank: models.DangerRank, Confidence: normalize.ConfidenceDanger},
	}

	hit := gulfstreamRace(1, picks)
	hit.Winner, hit.Second, hit.Third = "9", "4", "7"
	hit.WinPayout = 30.00
	hit.ExactaPayout = 80.00
	hit.TrifectaPayout = 120.40

	miss := gulfstreamRace(2, picks)
	miss.Winner, miss.Second, miss.Third = "9", "4", "2"
	miss.WinPayout = 30.00
	miss.ExactaPayout = 80.00
	miss.TrifectaPayout = 500.00

	rep := Compute([]GradedRace{hit, miss}, Filter{})

	if rep.Trifecta.Opportunities != 2 || rep.Trifecta.Hits != 1 {
		t.Fatalf("trifecta = %d opps %d hits, want 2/1", rep.Trifecta.Opportunities, rep.Trifecta.Hits)
	}
	eq(t, "trifecta cost", rep.Trifecta.Cost, "6")
	eq(t, "trifecta return", rep.Trifecta.Return, "30.10")
	if rep.Exacta.Hits != 2 {
		t.Errorf("exacta hits = %d, want 2", rep.Exacta.Hits)
	}
}

func TestComputeSkipsCancelled(t *testing.T) {
	picks := []PickRow{{Number: "4", Rank: 1, Confidence: normalize.ConfidenceTopPick}}
	races := []GradedRace{}
	for i, winner := range []string{"CANCELLED", "00", ""} {
		r := gulfstreamRace(i+1, picks)
		r.Winner = winner
		races = append(races, r)
	}

	rep := Compute(races, Filter{})
	if rep.Races != 0 || rep.Win.Bets != 0 {
		t.Errorf("cancelled races simulated: %d races, %d bets", rep.Races, rep.Win.Bets)
	}
}

func TestComputeMissDiagnosis(t *testing.T) {
	tests := []struct {
		name      string
		payouts   []float64
		wantAvg   string
		wantLong  bool
		wantShort bool
	}{
		{"longshot skew", []float64{44.00, 22.00}, "33", true, false},
		{"missing favorites", []float64{5.20, 4.80}, "5", false, true},
		{"normal variance", []float64{12.00, 14.00}, "13", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picks := []PickRow{{Number: "4", Rank: 1, Confidence: normalize.ConfidenceTopPick}}
			races := []GradedRace{}
			for i, p := range tt.payouts {
				r := gulfstreamRace(i+1, picks)
				r.Winner = "8" // never picked
				r.WinPayout = p
				races = append(races, r)
			}

			rep := Compute(races, Filter{})
			if rep.Misses.Count != len(tt.payouts) {
				t.Fatalf("miss count = %d, want %d", rep.Misses.Count, len(tt.payouts))
			}
			eq(t, "avg win payout", rep.Misses.AvgWinPayout, tt.wantAvg)

			long := rep.Misses.Note != "" && rep.Misses.AvgWinPayout.GreaterThan(longshotThreshold)
			short := rep.Misses.Note != "" && rep.Misses.AvgWinPayout.LessThan(favoriteThreshold)
			if long != tt.wantLong || short != tt.wantShort {
				t.Errorf("note %q misclassifies avg %s", rep.Misses.Note, rep.Misses.AvgWinPayout)
			}
		})
	}
}

func TestComputeTrackBreakdown(t *testing.T) {
	win := gulfstreamRace(1, []PickRow{{Number: "4", Rank: 1, Confidence: normalize.ConfidenceTopPick}})
	win.Winner = "4"
	win.WinPayout = 9.00

	lose := GradedRace{
		RaceKey: "saratoga_2026-08-29_R1",
		Track:   "Saratoga",
		Date:    "2026-08-29",
		Number:  1,
		Picks:   []PickRow{{Number: "2", Rank: 1, Confidence: normalize.ConfidenceTopPick}},
		Winner:  "6",
	}

	rep := Compute([]GradedRace{win, lose}, Filter{})
	if len(rep.Tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(rep.Tracks))
	}
	// Sorted by net descending: the winning track first.
	if rep.Tracks[0].Track != "Gulfstream Park" {
		t.Errorf("first track = %q, want the profitable one", rep.Tracks[0].Track)
	}
	eq(t, "gulfstream net", rep.Tracks[0].Net, "7")
	eq(t, "saratoga net", rep.Tracks[1].Net, "-2")
}

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name  string
		f     Filter
		track string
		date  string
		want  bool
	}{
		{"no filter", Filter{}, "Saratoga", "2026-08-29", true},
		{"track substring", Filter{Tracks: []string{"gulfstream"}}, "Gulfstream Park", "2026-08-29", true},
		{"track spelling variants", Filter{Tracks: []string{"Gulfstream_Park"}}, "gulfstream park", "2026-08-29", true},
		{"track mismatch", Filter{Tracks: []string{"saratoga"}}, "Gulfstream Park", "2026-08-29", false},
		{"inside window", Filter{From: "2026-08-01", To: "2026-08-31"}, "Saratoga", "2026-08-29", true},
		{"before window", Filter{From: "2026-09-01"}, "Saratoga", "2026-08-29", false},
		{"after window", Filter{To: "2026-08-28"}, "Saratoga", "2026-08-29", false},
		{"boundary inclusive", Filter{From: "2026-08-29", To: "2026-08-29"}, "Saratoga", "2026-08-29", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Match(tt.track, tt.date); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.track, tt.date, got, tt.want)
			}
		})
	}
}

func TestGroupByRace(t *testing.T) {
	rows := []gradedRow{
		{RaceKey: "a_2026-08-29_R1", Track: "A", Date: "2026-08-29", Number: 1, HorseNumber: "4", Rank: 1, Winner: "4", WinPayout: 9},
		{RaceKey: "a_2026-08-29_R1", Track: "A", Date: "2026-08-29", Number: 1, HorseNumber: "9", Rank: 99, Winner: "4", WinPayout: 9},
		{RaceKey: "a_2026-08-29_R2", Track: "A", Date: "2026-08-29", Number: 2, HorseNumber: "1", Rank: 1, Winner: "3", WinPayout: 6},
	}

	races := groupByRace(rows)
	if len(races) != 2 {
		t.Fatalf("got %d races, want 2", len(races))
	}
	if len(races[0].Picks) != 2 || len(races[1].Picks) != 1 {
		t.Errorf("pick grouping wrong: %d and %d", len(races[0].Picks), len(races[1].Picks))
	}
	if races[0].RaceKey != "a_2026-08-29_R1" {
		t.Errorf("row order not preserved: first race %s", races[0].RaceKey)
	}
}
