package harness

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/engine"
	"github.com/roach88/gildedrose/internal/inventory"
)

func intPtr(v int) *int { return &v }

func TestRun_SingleTickExpectation(t *testing.T) {
	scenario := &Scenario{
		Name:        "single",
		Description: "One decay tick",
		RunID:       "run-single",
		Items: []inventory.Item{
			{Name: "+5 Dexterity Vest", SellIn: 10, Quality: 20},
		},
		Ticks: []TickStep{
			{Expect: &ExpectClause{Items: []ItemExpectation{
				{Name: "+5 Dexterity Vest", SellIn: intPtr(9), Quality: intPtr(19), Category: "decay"},
			}}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, int64(1), result.Day)

	require.Len(t, result.Trace, 1)
	event := result.Trace[0]
	assert.Equal(t, EventTick, event.Type)
	assert.Equal(t, int64(1), event.Day)
	assert.Equal(t, "run-single", event.RunID)
	require.Len(t, event.Changes, 1)
	assert.Equal(t, "decay", event.Changes[0].Rule)
	assert.Equal(t, -1, event.Changes[0].QualityDelta())
}

func TestRun_DoesNotMutateScenarioItems(t *testing.T) {
	scenario := &Scenario{
		Name:        "copy",
		Description: "Scenario items are copied",
		Items:       []inventory.Item{{Name: "Aged Brie", SellIn: 2, Quality: 0}},
		Ticks:       []TickStep{{Repeat: 2}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)

	assert.Equal(t, inventory.Item{Name: "Aged Brie", SellIn: 2, Quality: 0}, scenario.Items[0])
	assert.Equal(t, 0, result.Items[0].SellIn)
	assert.Equal(t, 2, result.Items[0].Quality)
}

func TestRun_ExpectationMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "Wrong expected quality",
		Items:       []inventory.Item{{Name: "Aged Brie", SellIn: 2, Quality: 0}},
		Ticks: []TickStep{
			{Expect: &ExpectClause{Items: []ItemExpectation{
				{Quality: intPtr(5), Category: "tiered"},
			}}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "tick 1: items[0]")
	assert.Contains(t, result.Errors[0], "expected quality 5, got 1")
	assert.Contains(t, result.Errors[1], "expected category tiered, got growth")
}

func TestRun_ExpectationItemCount(t *testing.T) {
	scenario := &Scenario{
		Name:        "count",
		Description: "Expectations must cover the inventory",
		Items: []inventory.Item{
			{Name: "Aged Brie", SellIn: 2, Quality: 0},
			{Name: "Elixir of the Mongoose", SellIn: 5, Quality: 7},
		},
		Ticks: []TickStep{
			{Expect: &ExpectClause{Items: []ItemExpectation{{Quality: intPtr(1)}}}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected 1 items, inventory has 2")
}

func TestRun_ExpectedErrorMatches(t *testing.T) {
	scenario := &Scenario{
		Name:        "violation",
		Description: "Corrupted legendary item",
		Items: []inventory.Item{
			{Name: "Sulfuras, Hand of Ragnaros", SellIn: 0, Quality: 79},
		},
		Ticks: []TickStep{
			{Expect: &ExpectClause{
				Error: string(engine.ErrCodeInvariantViolation),
				Items: []ItemExpectation{{SellIn: intPtr(0), Quality: intPtr(79)}},
			}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, int64(0), result.Day)

	require.Len(t, result.Trace, 1)
	event := result.Trace[0]
	assert.Equal(t, EventError, event.Type)
	assert.Equal(t, int64(1), event.Day)
	assert.Equal(t, "INVARIANT_VIOLATION", event.Code)
	assert.Contains(t, event.Message, "tick day 1")
	assert.Empty(t, event.Changes)
}

func TestRun_WrongErrorCode(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong_code",
		Description: "Expects a different error",
		Items: []inventory.Item{
			{Name: "Sulfuras, Hand of Ragnaros", SellIn: 0, Quality: 79},
		},
		Ticks: []TickStep{
			{Expect: &ExpectClause{Error: string(engine.ErrCodeUnknownItem)}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected error UNKNOWN_ITEM")
	assert.Contains(t, result.Errors[0], "INVARIANT_VIOLATION")
}

func TestRun_UnexpectedErrorStopsExecution(t *testing.T) {
	scenario := &Scenario{
		Name:        "unexpected",
		Description: "Error without expectation",
		Items: []inventory.Item{
			{Name: "Sulfuras, Hand of Ragnaros", SellIn: 0, Quality: 80},
			{Name: "Sulfuras, Hand of Ragnaros", SellIn: 0, Quality: 81},
		},
		Ticks: []TickStep{{Repeat: 3}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "tick 1: unexpected error")
	assert.Contains(t, result.Errors[1], "2 remaining tick(s) not executed after error")
	assert.Len(t, result.Trace, 1)
}

func TestRun_ExpectedErrorButTickSucceeded(t *testing.T) {
	scenario := &Scenario{
		Name:        "no_error",
		Description: "Expected an error that never came",
		Items:       []inventory.Item{{Name: "Aged Brie", SellIn: 2, Quality: 0}},
		Ticks: []TickStep{
			{Expect: &ExpectClause{Error: string(engine.ErrCodeInvariantViolation)}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected error INVARIANT_VIOLATION, tick succeeded")
}

func TestRun_RepeatChecksLastTickOnly(t *testing.T) {
	scenario := &Scenario{
		Name:        "repeat",
		Description: "Repeat advances several days",
		StartDay:    10,
		Items: []inventory.Item{
			{Name: "Backstage passes to a TAFKAL80ETC concert", SellIn: 11, Quality: 20},
		},
		Ticks: []TickStep{
			{Repeat: 2, Expect: &ExpectClause{Items: []ItemExpectation{
				{SellIn: intPtr(9), Quality: intPtr(23)},
			}}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, int64(12), result.Day)
	require.Len(t, result.Trace, 2)
	assert.Equal(t, int64(11), result.Trace[0].Day)
	assert.Equal(t, int64(12), result.Trace[1].Day)
	assert.Equal(t, 2, result.CompletedTicks())
}

func TestRun_ConstructionErrorIsFirstTick(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "strict.cue")
	require.NoError(t, os.WriteFile(rules, []byte(`strict: true
items: {
	"Aged Brie":                  "growth"
	"Sulfuras, Hand of Ragnaros": "invariant"
}
`), 0644))

	scenario := &Scenario{
		Name:        "strict",
		Description: "Strict catalog rejects unknown names",
		Rules:       rules,
		Items: []inventory.Item{
			{Name: "Aged Brie", SellIn: 2, Quality: 0},
			{Name: "Aged Brei", SellIn: 2, Quality: 0},
		},
		Ticks: []TickStep{
			{Expect: &ExpectClause{Error: string(engine.ErrCodeUnknownItem)}},
			{Repeat: 1},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "1 remaining tick(s) not executed after error")

	require.Len(t, result.Trace, 1)
	assert.Equal(t, "UNKNOWN_ITEM", result.Trace[0].Code)
	assert.NotContains(t, result.Trace[0].Message, "tick day")
	assert.Contains(t, result.Trace[0].Message, `did you mean "Aged Brie"`)
}

func TestRun_RulesDoNotCompile(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "bad.cue")
	require.NoError(t, os.WriteFile(rules, []byte("minimum_quality: \"zero\"\n"), 0644))

	scenario := &Scenario{
		Name:        "bad_rules",
		Description: "Rules file with a type error",
		Rules:       rules,
		Ticks:       []TickStep{{}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile rules")
}

func TestRun_EmptyInventory(t *testing.T) {
	scenario := &Scenario{
		Name:        "empty",
		Description: "No items",
		Ticks:       []TickStep{{Repeat: 2}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, 2, result.CompletedTicks())
}

func TestRunWithLogger_TagsScenario(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	scenario := &Scenario{
		Name:        "logged",
		Description: "Logs carry the scenario name",
		Items:       []inventory.Item{{Name: "Aged Brie", SellIn: 2, Quality: 0}},
		Ticks:       []TickStep{{}},
	}

	result, err := RunWithLogger(scenario, logger)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Contains(t, buf.String(), `"scenario":"logged"`)
	assert.Contains(t, buf.String(), "tick step completed")
}

func TestRun_AssertionsFailResult(t *testing.T) {
	scenario := &Scenario{
		Name:        "assertions",
		Description: "Failing assertions mark the result",
		Items:       []inventory.Item{{Name: "Aged Brie", SellIn: 2, Quality: 0}},
		Ticks:       []TickStep{{}},
		Assertions: []Assertion{
			{Type: AssertTraceCount, Count: 3},
			{Type: AssertTraceContains, Item: "Aged Brie", Rule: "growth"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "assertion 0")
	assert.Contains(t, result.Errors[0], "3 completed tick(s)")
}
