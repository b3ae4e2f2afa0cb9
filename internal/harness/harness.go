package harness

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/roach88/gildedrose/internal/compiler"
	"github.com/roach88/gildedrose/internal/engine"
	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/testutil"
)

// Harness is the test execution engine.
// It runs one scenario against a fresh engine with a fixed run ID.
type Harness struct {
	rules  *compiler.Rules
	runIDs *testutil.FixedRunIDGenerator
	logger zerolog.Logger
}

// Run executes a test scenario and returns the result.
// Logs are discarded; see RunWithLogger.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, zerolog.Nop())
}

// RunWithLogger executes a test scenario and returns the result.
//
// Each scenario runs on its own copy of the inventory.
//
// Execution flow:
// 1. Compile the scenario's rules (or take the reference rules)
// 2. Build the engine; a construction failure is the first tick's outcome
// 3. Tick, recording each report or error and checking expect clauses
// 4. Evaluate assertions against the trace and final inventory
//
// The returned error is reserved for problems with the scenario itself,
// such as a rules file that does not compile. Engine failures are part of
// the Result.
func RunWithLogger(scenario *Scenario, logger zerolog.Logger) (*Result, error) {
	rules := compiler.Default()
	if scenario.Rules != "" {
		compiled, err := compiler.CompileFile(scenario.Rules)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rules: %w", err)
		}
		rules = compiled
	}

	h := &Harness{
		rules:  rules,
		runIDs: testutil.NewFixedRunIDGenerator(scenario.RunID),
		logger: logger.With().Str("scenario", scenario.Name).Logger(),
	}

	result := h.execute(scenario)

	actx := &AssertionContext{Config: rules.Config}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// execute runs the tick steps.
func (h *Harness) execute(scenario *Scenario) *Result {
	result := NewResult()
	items := slices.Clone(scenario.Items)
	if items == nil {
		items = []inventory.Item{}
	}
	result.Items = items
	result.Day = scenario.StartDay

	eng, err := engine.New(items,
		engine.WithConfig(h.rules.Config),
		engine.WithCatalog(h.rules.Catalog),
		engine.WithRunIDGenerator(h.runIDs),
		engine.WithClock(engine.NewClockAt(scenario.StartDay)),
		engine.WithLogger(h.logger),
	)

	steps := expandTicks(scenario.Ticks)
	for i, step := range steps {
		label := fmt.Sprintf("tick %d", i+1)
		day := scenario.StartDay + int64(i) + 1

		var report *engine.Report
		if err == nil {
			report, err = eng.TickReport()
		}
		if err != nil {
			result.AddErrorTrace(day, err)
			h.checkFailure(result, label, step.Expect, err)
			if remaining := len(steps) - 1 - i; remaining > 0 {
				result.AddError(fmt.Sprintf("%s: %d remaining tick(s) not executed after error", label, remaining))
			}
			break
		}

		result.AddTickTrace(report)
		result.Day = report.Day
		h.checkSuccess(result, label, step.Expect)

		h.logger.Debug().
			Int("step", i+1).
			Int64("day", report.Day).
			Int("changes", len(report.Changes)).
			Msg("tick step completed")
	}

	return result
}

// checkFailure validates a failed tick against its expect clause.
func (h *Harness) checkFailure(result *Result, label string, expect *ExpectClause, err error) {
	if expect == nil || expect.Error == "" {
		result.AddError(fmt.Sprintf("%s: unexpected error: %v", label, err))
		return
	}

	if got := string(engine.CodeOf(err)); got != expect.Error {
		result.AddError(fmt.Sprintf("%s: expected error %s, got %q (%v)", label, expect.Error, got, err))
		return
	}

	// The inventory is not rolled back; the state after the abort is checkable.
	checkItems(result, label, expect.Items)
}

// checkSuccess validates a completed tick against its expect clause.
func (h *Harness) checkSuccess(result *Result, label string, expect *ExpectClause) {
	if expect == nil {
		return
	}
	if expect.Error != "" {
		result.AddError(fmt.Sprintf("%s: expected error %s, tick succeeded", label, expect.Error))
		return
	}
	checkItems(result, label, expect.Items)
}

// checkItems compares the inventory against positional expectations.
func checkItems(result *Result, label string, expected []ItemExpectation) {
	if len(expected) == 0 {
		return
	}
	if len(expected) != len(result.Items) {
		result.AddError(fmt.Sprintf("%s: expected %d items, inventory has %d", label, len(expected), len(result.Items)))
		return
	}
	for i, exp := range expected {
		for _, msg := range matchItem(exp, result.Items[i]) {
			result.AddError(fmt.Sprintf("%s: items[%d]: %s", label, i, msg))
		}
	}
}

// matchItem reports every field of item that differs from exp.
func matchItem(exp ItemExpectation, item inventory.Item) []string {
	var diffs []string
	if exp.Name != "" && inventory.NormalizeName(exp.Name) != inventory.NormalizeName(item.Name) {
		diffs = append(diffs, fmt.Sprintf("expected name %q, got %q", exp.Name, item.Name))
	}
	if exp.SellIn != nil && *exp.SellIn != item.SellIn {
		diffs = append(diffs, fmt.Sprintf("%q: expected sell_in %d, got %d", item.Name, *exp.SellIn, item.SellIn))
	}
	if exp.Quality != nil && *exp.Quality != item.Quality {
		diffs = append(diffs, fmt.Sprintf("%q: expected quality %d, got %d", item.Name, *exp.Quality, item.Quality))
	}
	if exp.Category != "" && exp.Category != item.Category.String() {
		diffs = append(diffs, fmt.Sprintf("%q: expected category %s, got %s", item.Name, exp.Category, item.Category))
	}
	return diffs
}
