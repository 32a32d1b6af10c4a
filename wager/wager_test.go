package wager

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRescaleToBase(t *testing.T) {
	tests := []struct {
		name   string
		payout string
		base   string
		want   string
	}{
		{"already two dollar", "9.00", "2", "9.00"},
		{"zero base means two dollar", "9.00", "0", "9.00"},
		{"one dollar exacta doubles", "24.40", "1", "48.80"},
		{"fifty cent trifecta quadruples", "30.10", "0.5", "120.40"},
		{"negative base unchanged", "9.00", "-1", "9.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RescaleToBase(dec(tt.payout), dec(tt.base))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("RescaleToBase(%s, %s) = %s, want %s", tt.payout, tt.base, got, tt.want)
			}
		})
	}
}

// A payout quoted at $1 and rescaled in must come back out at its $1 value.
func TestRescaleRoundTrip(t *testing.T) {
	quoted := dec("24.40")
	stored := RescaleToBase(quoted, decimal.NewFromInt(1))
	if got := ExactaReturn(stored); !got.Equal(quoted) {
		t.Errorf("round trip: quoted %s, stored %s, returned %s", quoted, stored, got)
	}
}

func TestWinReturn(t *testing.T) {
	tests := []struct {
		payout string
		stake  string
		want   string
	}{
		{"9.00", "2", "9.00"},
		{"9.00", "10", "45.00"},
		{"5.40", "2", "5.40"},
	}
	for _, tt := range tests {
		got := WinReturn(dec(tt.payout), dec(tt.stake))
		if !got.Equal(dec(tt.want)) {
			t.Errorf("WinReturn(%s, %s) = %s, want %s", tt.payout, tt.stake, got, tt.want)
		}
	}
}

func TestBoxReturns(t *testing.T) {
	if got := ExactaReturn(dec("40.00")); !got.Equal(dec("20.00")) {
		t.Errorf("ExactaReturn(40.00) = %s, want 20.00", got)
	}
	if got := TrifectaReturn(dec("120.40")); !got.Equal(dec("30.10")) {
		t.Errorf("TrifectaReturn(120.40) = %s, want 30.10", got)
	}
}

func TestBoxSet(t *testing.T) {
	set := BoxSet("4", " 7 ", "4", "", "9")
	if len(set) != 3 {
		t.Fatalf("BoxSet size = %d, want 3", len(set))
	}
	for _, n := range []string{"4", "7", "9", " 9 "} {
		if !InBox(set, n) {
			t.Errorf("InBox(%q) = false, want true", n)
		}
	}
	if InBox(set, "5") {
		t.Error("InBox(5) = true, want false")
	}
}

func TestROI(t *testing.T) {
	tests := []struct {
		net  string
		cost string
		want string
	}{
		{"7.00", "2", "350"},
		{"-6.00", "6", "-100"},
		{"14.00", "6", "233.3333333333333333"},
		{"5.00", "0", "0"},
	}
	for _, tt := range tests {
		got := ROI(dec(tt.net), dec(tt.cost))
		if !got.Round(10).Equal(dec(tt.want).Round(10)) {
			t.Errorf("ROI(%s, %s) = %s, want %s", tt.net, tt.cost, got, tt.want)
		}
	}
}
