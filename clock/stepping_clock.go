package clock

import (
	"sync"
	"time"
)

// SteppingClock is a Clock that returns a given series of times, one at a
// time, then repeats the last one. Useful in a test that makes several
// calls and expects each one to see a different "now".
type SteppingClock struct {
	mutex    sync.Mutex
	nextTime int
	times    []time.Time
}

var _ Clock = (*SteppingClock)(nil)

// NewSteppingClock creates a SteppingClock that yields the given times in
// order.
func NewSteppingClock(times []time.Time) *SteppingClock {
	return &SteppingClock{times: times}
}

// Now returns the next time in the series, or the last one if the series
// is exhausted, or the Unix epoch if the series is empty.
func (c *SteppingClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if len(c.times) == 0 {
		return time.Unix(0, 0).UTC()
	}

	if c.nextTime >= len(c.times) {
		return c.times[len(c.times)-1]
	}

	result := c.times[c.nextTime]
	c.nextTime++
	return result
}
