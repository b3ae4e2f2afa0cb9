package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gildedrose/internal/engine"
	"github.com/roach88/gildedrose/internal/inventory"
)

// Scenario defines an inventory test scenario.
// Scenarios advance a starting inventory tick by tick and assert on the
// resulting trace and final inventory.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Rules is an optional CUE rules file. Empty means the reference rules.
	// Relative paths are resolved against the scenario file location.
	Rules string `yaml:"rules,omitempty"`

	// RunID is an optional fixed run ID for deterministic traces.
	// If empty, defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`

	// StartDay is the day number the inventory starts at.
	StartDay int64 `yaml:"start_day,omitempty"`

	// Items is the starting inventory. Categories may be left out; the
	// engine classifies items against the catalog.
	Items []inventory.Item `yaml:"items"`

	// Ticks is the sequence of days to advance.
	Ticks []TickStep `yaml:"ticks"`

	// Assertions validate the final trace and inventory.
	// Supported types: item_state, trace_contains, trace_count, within_bounds
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// TickStep advances the inventory and optionally checks the outcome.
type TickStep struct {
	// Repeat runs the step this many times (default 1). Expect is checked
	// after the last repetition only.
	Repeat int `yaml:"repeat,omitempty"`

	// Expect specifies the expected outcome.
	// If nil, the tick is only required to succeed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a tick.
type ExpectClause struct {
	// Error is the expected runtime error code (e.g. "INVARIANT_VIOLATION").
	// Empty means the tick must succeed.
	Error string `yaml:"error,omitempty"`

	// Items are the expected items after the tick, by position.
	// When present, the list must cover the whole inventory.
	Items []ItemExpectation `yaml:"items,omitempty"`
}

// ItemExpectation is a subset match on one item: only the fields that are
// set are compared.
type ItemExpectation struct {
	Name     string `yaml:"name,omitempty"`
	SellIn   *int   `yaml:"sell_in,omitempty"`
	Quality  *int   `yaml:"quality,omitempty"`
	Category string `yaml:"category,omitempty"`
}

// Assertion validates the trace or the final inventory.
type Assertion struct {
	// Type specifies the assertion type:
	// - "item_state": the first item named Item has the given values
	// - "trace_contains": a completed tick changed Item (with Rule, if set)
	// - "trace_count": exactly Count ticks completed
	// - "within_bounds": every change kept quality within the bounds
	Type string `yaml:"type"`

	// Item is the item name (used by item_state, trace_contains).
	Item string `yaml:"item,omitempty"`

	// Rule is the expected rule name (used by trace_contains).
	Rule string `yaml:"rule,omitempty"`

	// SellIn, Quality and Category are the expected values (used by item_state).
	SellIn   *int   `yaml:"sell_in,omitempty"`
	Quality  *int   `yaml:"quality,omitempty"`
	Category string `yaml:"category,omitempty"`

	// Count is the expected number of completed ticks (used by trace_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertItemState     = "item_state"
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
	AssertWithinBounds  = "within_bounds"
)

var knownErrorCodes = map[string]bool{
	string(engine.ErrCodeInvalidItem):        true,
	string(engine.ErrCodeInvariantViolation): true,
	string(engine.ErrCodeUnknownItem):        true,
	string(engine.ErrCodeOutOfBounds):        true,
	string(engine.ErrCodeInvalidConfig):      true,
}

// LoadScenario reads and parses a scenario YAML file.
// A relative rules path is resolved against the scenario's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the rules path relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "tick:" vs "ticks:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the rules path BEFORE validation
	if scenario.Rules != "" && !filepath.IsAbs(scenario.Rules) && basePath != "" {
		scenario.Rules = filepath.Join(basePath, scenario.Rules)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Ticks) == 0 {
		return fmt.Errorf("ticks list is required and must be non-empty")
	}

	if s.Rules != "" {
		if _, err := os.Stat(s.Rules); os.IsNotExist(err) {
			return fmt.Errorf("rules file not found: %s", s.Rules)
		}
	}

	for i, item := range s.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("items[%d]: name is required", i)
		}
	}

	for i, step := range s.Ticks {
		if step.Repeat < 0 {
			return fmt.Errorf("ticks[%d]: repeat must be non-negative", i)
		}
		if step.Expect != nil && step.Expect.Error != "" && !knownErrorCodes[step.Expect.Error] {
			return fmt.Errorf("ticks[%d].expect: unknown error code %q", i, step.Expect.Error)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertItemState:
		if a.Item == "" {
			return fmt.Errorf("assertions[%d]: item is required for item_state", index)
		}
		if a.SellIn == nil && a.Quality == nil && a.Category == "" {
			return fmt.Errorf("assertions[%d]: item_state needs sell_in, quality or category", index)
		}
	case AssertTraceContains:
		if a.Item == "" {
			return fmt.Errorf("assertions[%d]: item is required for trace_contains", index)
		}
	case AssertTraceCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertWithinBounds:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

// expandTicks unrolls repeated steps. Only the last copy of a repeated step
// keeps its expectation.
func expandTicks(steps []TickStep) []TickStep {
	var out []TickStep
	for _, step := range steps {
		n := max(step.Repeat, 1)
		for i := 0; i < n-1; i++ {
			out = append(out, TickStep{})
		}
		out = append(out, TickStep{Expect: step.Expect})
	}
	return out
}
