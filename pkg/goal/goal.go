// Package goal tracks a session-scoped revenue target. The target lives
// only in the running process; it is not persisted.
package goal

import (
	"github.com/shopspring/decimal"

	"github.com/counterline/till/pkg/ledger"
)

// InvalidGoalError reports a goal input that is not a positive amount.
// Any previously set target is left unchanged.
type InvalidGoalError struct {
	Input  string
	Reason string
}

func (e *InvalidGoalError) Error() string {
	return "invalid goal " + e.Input + ": " + e.Reason
}

// Tracker holds the target amount and computes progress against a ledger
// total. The zero value is a tracker with no goal set.
type Tracker struct {
	target decimal.Decimal
	set    bool
}

// Set parses and stores a new target amount. The input follows the same
// rules as prices (either fractional separator, optional currency symbol)
// but must be strictly positive. On failure the prior target, if any,
// stays in effect.
func (t *Tracker) Set(input string) error {
	amount, err := ledger.ParsePrice(input)
	if err != nil {
		return &InvalidGoalError{Input: input, Reason: "not a number"}
	}
	if !amount.IsPositive() {
		return &InvalidGoalError{Input: input, Reason: "must be positive"}
	}
	t.target = amount
	t.set = true
	return nil
}

// Target returns the configured amount; ok is false when no goal is set.
func (t *Tracker) Target() (amount decimal.Decimal, ok bool) {
	return t.target, t.set
}

// Progress returns total/target as a percentage. ok is false when no goal
// is set — an explicit signaled state, never a division by zero.
func (t *Tracker) Progress(total decimal.Decimal) (percent float64, ok bool) {
	if !t.set {
		return 0, false
	}
	percent, _ = total.Div(t.target).Mul(decimal.NewFromInt(100)).Float64()
	return percent, true
}
