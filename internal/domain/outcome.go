package domain

import (
	"github.com/shopspring/decimal"
)

// OutcomeClass is one probabilistic result with a fixed payout multiplier.
// Weight is relative probability mass; Multiplier is applied to the stake
// (0 for the loss class, above 1 when the stake comes back with profit).
type OutcomeClass struct {
	Label      string
	Weight     int64
	Multiplier decimal.Decimal
}

// IsWin reports whether the class pays anything out.
func (c OutcomeClass) IsWin() bool {
	return c.Multiplier.IsPositive()
}

// Payout computes stake × multiplier in cents, truncated toward zero.
// Stake is integer cents, so the product is exact up to the truncation.
func (c OutcomeClass) Payout(stake int64) int64 {
	return decimal.NewFromInt(stake).Mul(c.Multiplier).IntPart()
}

// OutcomeTable is the ordered set of classes for a game. The classes
// partition probability space: each class's long-run frequency is
// weight / TotalWeight.
type OutcomeTable struct {
	GameID  string
	Classes []OutcomeClass
}

// TotalWeight sums the class weights.
func (t OutcomeTable) TotalWeight() int64 {
	var total int64
	for _, c := range t.Classes {
		total += c.Weight
	}
	return total
}

// Validate fails fast at configuration time: a draw must never observe an
// empty table, a non-positive weight or a duplicated label.
func (t OutcomeTable) Validate() error {
	if len(t.Classes) == 0 {
		return ErrEmptyOutcomeTable
	}
	seen := make(map[string]bool, len(t.Classes))
	for _, c := range t.Classes {
		if c.Label == "" || seen[c.Label] {
			return ErrDuplicateOutcome
		}
		seen[c.Label] = true
		if c.Weight <= 0 {
			return ErrInvalidWeight
		}
		if c.Multiplier.IsNegative() {
			return ErrInvalidMultiplier
		}
	}
	if t.TotalWeight() <= 0 {
		return ErrInvalidWeight
	}
	return nil
}

// ClassByLabel looks a class up by label.
func (t OutcomeTable) ClassByLabel(label string) (OutcomeClass, bool) {
	for _, c := range t.Classes {
		if c.Label == label {
			return c, true
		}
	}
	return OutcomeClass{}, false
}
