package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/gildedrose/internal/inventory"
)

// AssertionContext carries what assertions need beyond the result.
type AssertionContext struct {
	// Config provides the quality bounds for within_bounds.
	Config inventory.Config
}

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	// Header with assertion type
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)

	// Expected vs Actual (most important info)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) == 0 {
		return buf.String()
	}

	// Full trace for context
	fmt.Fprintf(&buf, "\nFull trace:\n")
	for i, event := range e.Trace {
		switch event.Type {
		case EventTick:
			fmt.Fprintf(&buf, "  [%d] day %d: %d change(s)\n", i+1, event.Day, len(event.Changes))
		case EventError:
			fmt.Fprintf(&buf, "  [%d] day %d: %s\n", i+1, event.Day, event.Code)
		}
	}

	return buf.String()
}

// assertItemState checks the first item with the given name.
func assertItemState(items []inventory.Item, assertion Assertion) error {
	for _, item := range items {
		if inventory.NormalizeName(item.Name) != inventory.NormalizeName(assertion.Item) {
			continue
		}
		exp := ItemExpectation{
			SellIn:   assertion.SellIn,
			Quality:  assertion.Quality,
			Category: assertion.Category,
		}
		if diffs := matchItem(exp, item); len(diffs) > 0 {
			return &AssertionError{
				Type:     AssertItemState,
				Expected: describeExpectation(assertion),
				Actual:   strings.Join(diffs, "; "),
			}
		}
		return nil
	}

	return &AssertionError{
		Type:     AssertItemState,
		Expected: fmt.Sprintf("item %q in inventory", assertion.Item),
		Actual:   "not found",
	}
}

// assertTraceContains checks that a completed tick changed the item,
// with the given rule when one is set.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, event := range trace {
		if event.Type != EventTick {
			continue
		}
		for _, change := range event.Changes {
			if inventory.NormalizeName(change.Name) != inventory.NormalizeName(assertion.Item) {
				continue
			}
			if assertion.Rule == "" || change.Rule == assertion.Rule {
				return nil // Found matching change
			}
		}
	}

	expected := fmt.Sprintf("item %q advanced", assertion.Item)
	if assertion.Rule != "" {
		expected += fmt.Sprintf(" by rule %s", assertion.Rule)
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: expected,
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceCount checks the number of completed ticks.
func assertTraceCount(result *Result, assertion Assertion) error {
	count := result.CompletedTicks()
	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d completed tick(s)", assertion.Count),
			Actual:   fmt.Sprintf("%d completed tick(s)", count),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertWithinBounds checks every recorded change against the bounds:
// ordinary items within [min, max], invariant items at the legendary quality.
func assertWithinBounds(trace []TraceEvent, cfg inventory.Config) error {
	for _, event := range trace {
		for _, change := range event.Changes {
			q := change.QualityAfter
			if change.Category == inventory.CategoryInvariant {
				if q != cfg.LegendaryQuality {
					return &AssertionError{
						Type:     AssertWithinBounds,
						Expected: fmt.Sprintf("%q at quality %d", change.Name, cfg.LegendaryQuality),
						Actual:   fmt.Sprintf("quality %d on day %d", q, event.Day),
						Trace:    trace,
					}
				}
				continue
			}
			if q < cfg.MinimumQuality || q > cfg.MaximumQuality {
				return &AssertionError{
					Type:     AssertWithinBounds,
					Expected: fmt.Sprintf("%q quality within [%d, %d]", change.Name, cfg.MinimumQuality, cfg.MaximumQuality),
					Actual:   fmt.Sprintf("quality %d on day %d", q, event.Day),
					Trace:    trace,
				}
			}
		}
	}
	return nil
}

func describeExpectation(a Assertion) string {
	parts := []string{fmt.Sprintf("item %q", a.Item)}
	if a.SellIn != nil {
		parts = append(parts, fmt.Sprintf("sell_in %d", *a.SellIn))
	}
	if a.Quality != nil {
		parts = append(parts, fmt.Sprintf("quality %d", *a.Quality))
	}
	if a.Category != "" {
		parts = append(parts, "category "+a.Category)
	}
	return strings.Join(parts, ", ")
}

// EvaluateAssertions runs all assertions and returns their failure messages.
// Every assertion is evaluated (does not fail-fast).
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, assertion := range assertions {
		var err error
		switch assertion.Type {
		case AssertItemState:
			err = assertItemState(result.Items, assertion)
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result, assertion)
		case AssertWithinBounds:
			err = assertWithinBounds(result.Trace, actx.Config)
		default:
			err = fmt.Errorf("unknown assertion type %q", assertion.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return errs
}
