// Package harness runs YAML inventory scenarios against the tick engine.
//
// A scenario lists a starting inventory, a sequence of ticks with optional
// per-tick expectations, and final assertions. The harness drives the real
// engine (no stubs), records a trace of every tick report or failure, and can
// compare that trace with a golden snapshot.
//
// # Scenario Format
//
//	name: tiered_thresholds
//	description: "Backstage passes gain faster as the concert nears"
//	rules: rules/strict.cue        # optional, relative to the scenario file
//	run_id: test-run-tiered        # optional, fixed run ID for golden traces
//	start_day: 0                   # optional
//	items:
//	  - name: Backstage passes to a TAFKAL80ETC concert
//	    sell_in: 10
//	    quality: 20
//	ticks:
//	  - expect:
//	      items:
//	        - name: Backstage passes to a TAFKAL80ETC concert
//	          sell_in: 9
//	          quality: 22
//	  - repeat: 3                  # expectations are checked after the last repeat
//	  - expect:
//	      error: INVARIANT_VIOLATION
//	assertions:
//	  - type: item_state
//	    item: Backstage passes to a TAFKAL80ETC concert
//	    quality: 30
//	  - type: trace_contains
//	    item: Backstage passes to a TAFKAL80ETC concert
//	    rule: tiered
//	  - type: trace_count
//	    count: 4
//	  - type: within_bounds
//
// # Assertion Types
//
//   - item_state: the first item with the given name has the given values
//   - trace_contains: some completed tick changed the item (with the rule)
//   - trace_count: exactly N ticks completed
//   - within_bounds: every change left quality inside the configured bounds
//
// # Deterministic Testing
//
// Every tick of a scenario is stamped with the same fixed run ID
// (testutil.FixedRunIDGenerator), so the same scenario always produces a
// byte-identical trace.
//
// A tick that fails stops the scenario: the engine does not roll back, so
// later ticks would run on a partially advanced inventory. Expected failures
// are declared with expect.error and the item state after the abort can still
// be checked.
package harness
