package harness

import (
	"github.com/roach88/gildedrose/internal/engine"
	"github.com/roach88/gildedrose/internal/inventory"
)

// Trace event types.
const (
	EventTick  = "tick"
	EventError = "error"
)

// TraceEvent records one tick: its report, or the error that stopped it.
type TraceEvent struct {
	Type    string          `json:"type"` // "tick" or "error"
	Day     int64           `json:"day"`
	RunID   string          `json:"run_id,omitempty"`
	Changes []engine.Change `json:"changes,omitempty"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses and assertions match.
	Pass bool `json:"pass"`

	// Trace contains one event per attempted tick, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Items is the inventory after the last attempted tick.
	Items []inventory.Item `json:"items"`

	// Day is the number of the last completed day.
	Day int64 `json:"day"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Items:  []inventory.Item{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTickTrace adds a completed tick to the trace.
func (r *Result) AddTickTrace(report *engine.Report) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:    EventTick,
		Day:     report.Day,
		RunID:   report.RunID,
		Changes: report.Changes,
	})
}

// AddErrorTrace adds a failed tick to the trace.
func (r *Result) AddErrorTrace(day int64, err error) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:    EventError,
		Day:     day,
		Code:    string(engine.CodeOf(err)),
		Message: err.Error(),
	})
}

// CompletedTicks returns the number of tick events in the trace.
func (r *Result) CompletedTicks() int {
	n := 0
	for _, event := range r.Trace {
		if event.Type == EventTick {
			n++
		}
	}
	return n
}
