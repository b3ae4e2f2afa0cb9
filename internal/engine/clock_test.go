package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_StartsAtDayZero(t *testing.T) {
	c := NewClock()
	assert.Equal(t, int64(0), c.Current(), "new clock should start at day 0")
}

func TestClock_NewClockAt(t *testing.T) {
	c := NewClockAt(30)
	assert.Equal(t, int64(30), c.Current())
	assert.Equal(t, int64(31), c.Next())
}

func TestClock_NextAdvancesOneDay(t *testing.T) {
	c := NewClock()

	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current(), "Current must not advance")
}

func TestClock_ThreadSafe(t *testing.T) {
	c := NewClock()
	const goroutines = 50
	const callsPerGoroutine = 20

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				c.Next()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines*callsPerGoroutine), c.Current())
}
