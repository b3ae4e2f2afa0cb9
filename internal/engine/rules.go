package engine

import "github.com/roach88/gildedrose/internal/inventory"

// QualityRule adjusts the quality of a single item in place.
//
// Rules never touch SellIn; the engine ages items after the rule ran, so a
// rule always sees the days remaining before today's tick. A nil item is
// treated as an empty slot and left alone.
type QualityRule interface {
	// Name identifies the rule in reports and logs.
	Name() string

	// Apply mutates item.Quality.
	Apply(item *inventory.Item) error
}

// DecayRule lowers quality by Amount per day, twice that once the sell-by
// date is reached. Quality never drops below LowerBound.
//
// Default and conjured items share this rule with different amounts.
type DecayRule struct {
	Label      string
	Amount     int
	LowerBound int
}

// NewDecayRule builds a decay rule; the amount is taken as a magnitude.
func NewDecayRule(label string, amount, lowerBound int) DecayRule {
	return DecayRule{Label: label, Amount: abs(amount), LowerBound: lowerBound}
}

// Name implements QualityRule.
func (r DecayRule) Name() string {
	return r.Label
}

// Apply implements QualityRule.
func (r DecayRule) Apply(item *inventory.Item) error {
	if item == nil {
		return nil
	}

	delta := r.Amount
	if item.SellIn <= 0 {
		delta *= 2
	}

	item.Quality = max(item.Quality-delta, r.LowerBound)
	return nil
}

// GrowthRule raises quality by Amount per day, twice that once the sell-by
// date is reached. Quality never rises above UpperBound.
type GrowthRule struct {
	Amount     int
	UpperBound int
}

// NewGrowthRule builds a growth rule; the amount is taken as a magnitude.
func NewGrowthRule(amount, upperBound int) GrowthRule {
	return GrowthRule{Amount: abs(amount), UpperBound: upperBound}
}

// Name implements QualityRule.
func (r GrowthRule) Name() string {
	return "growth"
}

// Apply implements QualityRule.
func (r GrowthRule) Apply(item *inventory.Item) error {
	if item == nil {
		return nil
	}

	delta := r.Amount
	if item.SellIn <= 0 {
		delta *= 2
	}

	item.Quality = min(item.Quality+delta, r.UpperBound)
	return nil
}

// InvariantRule leaves legendary items untouched and verifies they still
// carry the legendary quality.
type InvariantRule struct {
	Quality int
}

// Name implements QualityRule.
func (r InvariantRule) Name() string {
	return "invariant"
}

// Apply implements QualityRule. A legendary item with any other quality is
// corrupted state and is reported, never corrected.
func (r InvariantRule) Apply(item *inventory.Item) error {
	if item == nil {
		return nil
	}
	if item.Quality != r.Quality {
		return NewInvariantError(item.Name, item.Quality, r.Quality)
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
