// Package wager owns every parimutuel scaling constant and the box-bet
// arithmetic. The $2 storage base and the box unit sizes live here and only
// here: if a results source ever changes its quoted base stake, this file is
// the single point of change.
package wager

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BaseStake is the canonical base every stored payout is expressed at.
var BaseStake = decimal.NewFromInt(2)

// Default stakes and box costs. A box of three picks is six ordered
// combinations, so the $1 exacta box costs $6 and the $0.50 trifecta box
// costs $3.
var (
	DefaultWinStake     = decimal.NewFromInt(2)
	DefaultPrimeStake   = decimal.NewFromInt(10)
	DefaultExactaCost   = decimal.NewFromInt(6)
	DefaultTrifectaCost = decimal.NewFromInt(3)
)

// Box-set eligibility thresholds.
const (
	MinExactaBox   = 2
	MinTrifectaBox = 3
)

// RescaleToBase converts a payout quoted at sourceBase dollars to the $2
// storage base. A zero or negative sourceBase means the payout is already
// $2-based and is returned unchanged.
func RescaleToBase(payout, sourceBase decimal.Decimal) decimal.Decimal {
	if sourceBase.LessThanOrEqual(decimal.Zero) || sourceBase.Equal(BaseStake) {
		return payout
	}
	return payout.Div(sourceBase).Mul(BaseStake)
}

// WinReturn scales a stored $2-base win payout to the stake actually placed.
func WinReturn(storedPayout, stake decimal.Decimal) decimal.Decimal {
	return storedPayout.Div(BaseStake).Mul(stake)
}

// ExactaReturn converts a stored $2-base exacta payout to the $1 box unit.
func ExactaReturn(storedPayout decimal.Decimal) decimal.Decimal {
	return storedPayout.Div(decimal.NewFromInt(2))
}

// TrifectaReturn converts a stored $2-base trifecta payout to the $0.50 box
// unit.
func TrifectaReturn(storedPayout decimal.Decimal) decimal.Decimal {
	return storedPayout.Div(decimal.NewFromInt(4))
}

// BoxSet builds the distinct set of program numbers covered by a box wager.
// Blank entries are dropped; duplicates collapse.
func BoxSet(numbers ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// InBox reports membership of a trimmed program number in a box set.
func InBox(set map[string]struct{}, number string) bool {
	_, ok := set[strings.TrimSpace(number)]
	return ok
}

// ROI returns net/cost as a percentage, zero when nothing was staked.
func ROI(net, cost decimal.Decimal) decimal.Decimal {
	if cost.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return net.Div(cost).Mul(decimal.NewFromInt(100))
}
