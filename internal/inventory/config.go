package inventory

import (
	"errors"
	"fmt"
	"slices"
)

// Default quality bounds and modifiers.
const (
	// DefaultMinimumQuality: the quality of an item is never negative.
	DefaultMinimumQuality = 0

	// DefaultMaximumQuality: quality never exceeds 50, legendary items excepted.
	DefaultMaximumQuality = 50

	// DefaultLegendaryQuality is the fixed quality of legendary items.
	DefaultLegendaryQuality = 80

	// DefaultNormalModifier is the daily quality change of ordinary items.
	DefaultNormalModifier = 1

	// DefaultConjuredModifier: conjured items degrade twice as fast.
	DefaultConjuredModifier = DefaultNormalModifier * 2
)

// DefaultTieredModifiers returns the backstage pass tiers: +2 at 10 days or
// less, +3 at 5 days or less.
func DefaultTieredModifiers() []QualityModifier {
	return []QualityModifier{
		MustQualityModifier(10, 2),
		MustQualityModifier(5, 3),
	}
}

// Config holds the global bounds and per-category modifiers.
//
// A Config is built once and shared read-only by every rule evaluation.
// TieredModifiers is kept in insertion order; rules sort their own copy.
type Config struct {
	MinimumQuality   int               `json:"minimum_quality" yaml:"minimum_quality"`
	MaximumQuality   int               `json:"maximum_quality" yaml:"maximum_quality"`
	LegendaryQuality int               `json:"legendary_quality" yaml:"legendary_quality"`
	NormalModifier   int               `json:"normal_modifier" yaml:"normal_modifier"`
	ConjuredModifier int               `json:"conjured_modifier" yaml:"conjured_modifier"`
	TieredModifiers  []QualityModifier `json:"tiered_modifiers" yaml:"tiered_modifiers"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		MinimumQuality:   DefaultMinimumQuality,
		MaximumQuality:   DefaultMaximumQuality,
		LegendaryQuality: DefaultLegendaryQuality,
		NormalModifier:   DefaultNormalModifier,
		ConjuredModifier: DefaultConjuredModifier,
		TieredModifiers:  DefaultTieredModifiers(),
	}
}

// Clone returns a deep copy so callers cannot mutate a shared modifier list.
func (c Config) Clone() Config {
	c.TieredModifiers = slices.Clone(c.TieredModifiers)
	return c
}

// Validate checks the configuration invariants and returns every violation.
func (c Config) Validate() error {
	var errs []error
	if c.MinimumQuality > c.MaximumQuality {
		errs = append(errs, fmt.Errorf("minimum_quality %d exceeds maximum_quality %d", c.MinimumQuality, c.MaximumQuality))
	}
	if c.NormalModifier < 0 {
		errs = append(errs, fmt.Errorf("normal_modifier must be non-negative, got %d", c.NormalModifier))
	}
	if c.ConjuredModifier < 0 {
		errs = append(errs, fmt.Errorf("conjured_modifier must be non-negative, got %d", c.ConjuredModifier))
	}
	for i, m := range c.TieredModifiers {
		if m.DaysLeft < 0 {
			errs = append(errs, fmt.Errorf("tiered_modifiers[%d]: %w", i, ErrNegativeDaysLeft))
		}
		if m.Amount < 0 {
			errs = append(errs, fmt.Errorf("tiered_modifiers[%d]: amount must be non-negative, got %d", i, m.Amount))
		}
	}
	return errors.Join(errs...)
}
