// Package engine implements the daily quality tick for an inventory.
//
// The engine is the heart of the system - it classifies items into behavior
// categories, selects a quality rule for each item, applies it, and then
// ages the item by one day.
//
// ARCHITECTURE:
//
// Single Pass Per Tick:
// One call to Tick walks the item collection once, in order. This ensures:
// - Predictable rule evaluation order
// - No item's update reads or writes another item's state
// - Bounded work proportional to the collection size
//
// Tick Processing Flow:
// 1. Every item is classified by exact name and a rule is selected
// 2. Each rule adjusts quality in place, using the pre-tick sellIn
// 3. sellIn is decremented for every item that is not invariant
// 4. The logical day clock advances
//
// Classification and selection happen for every item before any item is
// mutated, so invalid input aborts the tick with the collection untouched,
// categories included. A category an item already carries is checked against
// the catalog, never trusted in its place. An invariant
// violation found while applying rules aborts the rest of the tick; items
// already processed keep their new values.
//
// Rules are stateless values built once from the Config at construction and
// reused across ticks. The Config and Catalog are read-only and may be shared
// by engines that own disjoint item collections.
package engine
