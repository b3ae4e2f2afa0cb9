package compiler

import (
	"fmt"

	"github.com/roach88/gildedrose/internal/inventory"
)

// Validation error codes (E100-E199)
const (
	// Bounds errors (E101-E102)
	ErrQualityBoundsInverted = "E101" // minimum_quality exceeds maximum_quality
	ErrLegendaryInRange      = "E102" // legendary quality reachable by ordinary items

	// Modifier errors (E103-E106)
	ErrNegativeModifier  = "E103" // negative normal/conjured modifier
	ErrNegativeThreshold = "E104" // tier days_left below zero
	ErrUnreachableTier   = "E105" // tier shadowed by an earlier equal threshold
	ErrTierExceedsRange  = "E106" // tier amount larger than the quality range

	// Catalog errors (E110-E119)
	ErrEmptyStrictCatalog = "E110" // strict catalog with no names
	ErrNoInvariantItem    = "E111" // legendary quality configured, no invariant item
)

// ValidationError represents a rules validation finding.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"` // source line, when known
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks compiled rules and returns every finding
// (does not fail-fast).
//
// Compile already rejects rules the engine cannot run; Validate also reports
// rules that run but are almost certainly a mistake, such as a tier that can
// never be selected.
func Validate(r *Rules) []ValidationError {
	var errs []ValidationError
	cfg := r.Config

	// E101: bounds must form a range
	if cfg.MinimumQuality > cfg.MaximumQuality {
		errs = append(errs, ValidationError{
			Field:   "minimum_quality",
			Message: fmt.Sprintf("minimum_quality %d exceeds maximum_quality %d", cfg.MinimumQuality, cfg.MaximumQuality),
			Code:    ErrQualityBoundsInverted,
		})
	}

	// E102: legendary items must be distinguishable from ordinary ones
	if cfg.LegendaryQuality >= cfg.MinimumQuality && cfg.LegendaryQuality <= cfg.MaximumQuality {
		errs = append(errs, ValidationError{
			Field:   "legendary_quality",
			Message: fmt.Sprintf("legendary_quality %d lies inside [%d, %d]", cfg.LegendaryQuality, cfg.MinimumQuality, cfg.MaximumQuality),
			Code:    ErrLegendaryInRange,
		})
	}

	// E103: modifiers are magnitudes
	if cfg.NormalModifier < 0 {
		errs = append(errs, ValidationError{
			Field:   "normal_modifier",
			Message: "normal_modifier must be non-negative",
			Code:    ErrNegativeModifier,
		})
	}
	if cfg.ConjuredModifier < 0 {
		errs = append(errs, ValidationError{
			Field:   "conjured_modifier",
			Message: "conjured_modifier must be non-negative",
			Code:    ErrNegativeModifier,
		})
	}

	span := cfg.MaximumQuality - cfg.MinimumQuality
	seen := make(map[int]int)
	for i, m := range cfg.TieredModifiers {
		field := fmt.Sprintf("tiered_modifiers[%d]", i)

		// E104: thresholds are day counts
		if m.DaysLeft < 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("days_left %d is negative", m.DaysLeft),
				Code:    ErrNegativeThreshold,
			})
		}

		// E105: equal thresholds resolve to the first inserted
		if first, ok := seen[m.DaysLeft]; ok {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("days_left %d already used by tiered_modifiers[%d]; this tier is never selected", m.DaysLeft, first),
				Code:    ErrUnreachableTier,
			})
		} else {
			seen[m.DaysLeft] = i
		}

		// E106: a single day would cross the whole range
		if span >= 0 && m.Amount > span {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("amount %d exceeds the quality range %d", m.Amount, span),
				Code:    ErrTierExceedsRange,
			})
		}
	}

	if r.Catalog == nil {
		return errs
	}

	// E110: a strict catalog without names rejects every item
	if r.Catalog.Strict && r.Catalog.Len() == 0 {
		errs = append(errs, ValidationError{
			Field:   "items",
			Message: "strict catalog has no items; every item would be rejected",
			Code:    ErrEmptyStrictCatalog,
		})
	}

	// E111: a non-empty catalog should name at least one legendary item
	if r.Catalog.Len() > 0 && !hasCategory(r.Catalog, inventory.CategoryInvariant) {
		errs = append(errs, ValidationError{
			Field:   "items",
			Message: "no item is classified as invariant; legendary_quality is unused",
			Code:    ErrNoInvariantItem,
		})
	}

	return errs
}

func hasCategory(c *inventory.Catalog, category inventory.Category) bool {
	for _, e := range c.Entries() {
		if e.Category == category {
			return true
		}
	}
	return false
}
