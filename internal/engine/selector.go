package engine

import (
	"fmt"

	"github.com/roach88/gildedrose/internal/inventory"
)

// Selector maps an item's category to the rule applied to it.
//
// The rules are built once from the Config; Select itself is cheap and is
// called for every item on every tick.
type Selector struct {
	decay     DecayRule
	conjured  DecayRule
	growth    GrowthRule
	tiered    *TieredRule
	invariant InvariantRule
}

// NewSelector validates cfg and builds one rule per category.
func NewSelector(cfg inventory.Config) (*Selector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, NewConfigError(err)
	}

	return &Selector{
		decay:     NewDecayRule("decay", cfg.NormalModifier, cfg.MinimumQuality),
		conjured:  NewDecayRule("conjured", cfg.ConjuredModifier, cfg.MinimumQuality),
		growth:    NewGrowthRule(cfg.NormalModifier, cfg.MaximumQuality),
		tiered:    NewTieredRule(cfg.NormalModifier, cfg.MinimumQuality, cfg.MaximumQuality, cfg.TieredModifiers),
		invariant: InvariantRule{Quality: cfg.LegendaryQuality},
	}, nil
}

// Select returns the rule for a classified item.
// A nil item is invalid input and fails fast.
func (s *Selector) Select(item *inventory.Item) (QualityRule, error) {
	if item == nil {
		return nil, NewInvalidItemError("a rule can only be selected for a non-nil item")
	}

	rule, err := s.RuleFor(item.Category)
	if err != nil {
		return nil, &RuntimeError{
			Code:    ErrCodeInvalidItem,
			Message: err.Error(),
			Item:    item.Name,
		}
	}
	return rule, nil
}

// RuleFor returns the rule for a category.
func (s *Selector) RuleFor(category inventory.Category) (QualityRule, error) {
	switch category {
	case inventory.CategoryDecay:
		return s.decay, nil
	case inventory.CategoryConjured:
		return s.conjured, nil
	case inventory.CategoryGrowth:
		return s.growth, nil
	case inventory.CategoryTiered:
		return s.tiered, nil
	case inventory.CategoryInvariant:
		return s.invariant, nil
	case inventory.CategoryUnclassified:
		return nil, fmt.Errorf("item has not been classified")
	default:
		return nil, fmt.Errorf("no rule for %s", category)
	}
}
