package engine

import (
	"cmp"
	"slices"

	"github.com/roach88/gildedrose/internal/inventory"
)

// expiredDaysLeft is the threshold of the closing modifier.
const expiredDaysLeft = 0

// TieredRule raises quality at a rate that depends on how many days are
// left, and drops quality to LowerBound once the item expires.
//
// The modifier list is sorted once at construction (descending by
// DaysLeft, stable so equal thresholds keep insertion order) and closed with
// a {0, LowerBound} modifier, so every positive sellIn maps to an amount.
type TieredRule struct {
	NormalAmount int
	LowerBound   int
	UpperBound   int

	modifiers []inventory.QualityModifier
}

// NewTieredRule builds a tiered rule from an unordered modifier list.
// modifiers may be nil or empty. The list is copied.
func NewTieredRule(normalAmount, lowerBound, upperBound int, modifiers []inventory.QualityModifier) *TieredRule {
	sorted := make([]inventory.QualityModifier, 0, len(modifiers)+1)
	sorted = append(sorted, modifiers...)
	slices.SortStableFunc(sorted, func(a, b inventory.QualityModifier) int {
		return cmp.Compare(b.DaysLeft, a.DaysLeft)
	})
	sorted = append(sorted, inventory.QualityModifier{DaysLeft: expiredDaysLeft, Amount: abs(lowerBound)})

	return &TieredRule{
		NormalAmount: abs(normalAmount),
		LowerBound:   lowerBound,
		UpperBound:   upperBound,
		modifiers:    sorted,
	}
}

// Name implements QualityRule.
func (r *TieredRule) Name() string {
	return "tiered"
}

// Modifiers returns a copy of the sorted modifier list, closing modifier
// included.
func (r *TieredRule) Modifiers() []inventory.QualityModifier {
	return slices.Clone(r.modifiers)
}

// Amount returns the daily increase for an item with sellIn days left.
//
// The applicable modifier is the one with the smallest threshold that is
// still >= sellIn; among equal thresholds the first inserted wins. A sellIn
// above every threshold gets NormalAmount.
func (r *TieredRule) Amount(sellIn int) int {
	var best *inventory.QualityModifier
	for i := range r.modifiers {
		m := &r.modifiers[i]
		if m.DaysLeft < sellIn {
			// Sorted descending: nothing further can match.
			break
		}
		if best == nil || m.DaysLeft < best.DaysLeft {
			best = m
		}
	}
	if best == nil {
		return r.NormalAmount
	}
	return best.Amount
}

// Apply implements QualityRule.
func (r *TieredRule) Apply(item *inventory.Item) error {
	if item == nil {
		return nil
	}

	// Expired passes are worthless: a hard reset, not a delta.
	if item.SellIn <= 0 {
		item.Quality = r.LowerBound
		return nil
	}

	quality := item.Quality + r.Amount(item.SellIn)
	item.Quality = min(max(quality, r.LowerBound), r.UpperBound)
	return nil
}
