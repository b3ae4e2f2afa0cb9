package engine

import "sync/atomic"

// Clock counts completed ticks: the logical day of an inventory.
//
// The day only advances after a tick finishes without error, so a failed tick
// can be inspected and retried at the same day number.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
// The engine itself only calls Next() from Tick.
type Clock struct {
	day atomic.Int64
}

// NewClock creates a new clock starting at day 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific day.
// Used to resume an inventory whose history is tracked elsewhere.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.day.Store(start)
	return c
}

// Next advances the clock by one day and returns the new day.
func (c *Clock) Next() int64 {
	return c.day.Add(1)
}

// Current returns the current day without advancing.
func (c *Clock) Current() int64 {
	return c.day.Load()
}
