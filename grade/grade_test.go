package grade

import "testing"

func TestOutcomeResultRescaling(t *testing.T) {
	o := Outcome{
		Winner: " 4 ",
		Second: "7",
		Third:  "1",

		WinPayout:      9.00,
		ExactaPayout:   24.40,
		TrifectaPayout: 30.10,
		WinBase:        0,   // already $2
		ExactaBase:     1,   // quoted at $1
		TrifectaBase:   0.5, // quoted at $0.50
	}

	res := o.result("gulfstream_park_2026-08-29_R7")

	if res.WinnerNumber != "4" || res.SecondNumber != "7" || res.ThirdNumber != "1" {
		t.Errorf("finishers not trimmed: %q %q %q", res.WinnerNumber, res.SecondNumber, res.ThirdNumber)
	}
	if res.WinPayout != 9.00 {
		t.Errorf("win payout = %v, want 9.00 unchanged", res.WinPayout)
	}
	if res.ExactaPayout != 48.80 {
		t.Errorf("exacta payout = %v, want 48.80 at the $2 base", res.ExactaPayout)
	}
	if res.TrifectaPayout != 120.40 {
		t.Errorf("trifecta payout = %v, want 120.40 at the $2 base", res.TrifectaPayout)
	}
}

func TestOutcomeResultTwoDollarBaseUnchanged(t *testing.T) {
	o := Outcome{Winner: "4", WinPayout: 5.40, WinBase: 2, ExactaPayout: 12.00, ExactaBase: 2}
	res := o.result("k")
	if res.WinPayout != 5.40 || res.ExactaPayout != 12.00 {
		t.Errorf("payouts at the $2 base must pass through: %v %v", res.WinPayout, res.ExactaPayout)
	}
}
