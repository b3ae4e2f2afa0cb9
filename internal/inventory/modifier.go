package inventory

import (
	"errors"
	"fmt"
)

// ErrNegativeDaysLeft is returned when a modifier threshold is below zero.
var ErrNegativeDaysLeft = errors.New("the amount of days left before an item expires can not be negative")

// QualityModifier is an immutable (threshold, magnitude) pair used by tiered rules.
//
// DaysLeft is the inclusive upper bound of the day range the modifier covers.
// Amount is always non-negative; the rule applying it decides the direction.
type QualityModifier struct {
	DaysLeft int `json:"days_left" yaml:"days_left" toml:"days_left"`
	Amount   int `json:"amount" yaml:"amount" toml:"amount"`
}

// NewQualityModifier validates daysLeft and stores the absolute amount.
func NewQualityModifier(daysLeft, amount int) (QualityModifier, error) {
	if daysLeft < 0 {
		return QualityModifier{}, fmt.Errorf("modifier days_left=%d: %w", daysLeft, ErrNegativeDaysLeft)
	}
	if amount < 0 {
		amount = -amount
	}
	return QualityModifier{DaysLeft: daysLeft, Amount: amount}, nil
}

// MustQualityModifier is NewQualityModifier for constant tables.
// Panics on a negative threshold.
func MustQualityModifier(daysLeft, amount int) QualityModifier {
	m, err := NewQualityModifier(daysLeft, amount)
	if err != nil {
		panic(err)
	}
	return m
}

// String renders the modifier for diagnostics.
func (m QualityModifier) String() string {
	return fmt.Sprintf("QualityModifier[days_left=%d, amount=%d]", m.DaysLeft, m.Amount)
}
