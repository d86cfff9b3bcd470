package clock

import "time"

// StoppedClock is a Clock that always returns the same time. Useful for
// tests that exercise the sanitiser's "fill in the missing date/time"
// rule and need a predictable result.
type StoppedClock struct {
	time time.Time
}

var _ Clock = (*StoppedClock)(nil)

// NewStoppedClock creates a StoppedClock fixed at the given instant.
func NewStoppedClock(year int, month time.Month, day, hour, minute, second, nanosecond int, location *time.Location) *StoppedClock {
	return &StoppedClock{time: time.Date(year, month, day, hour, minute, second, nanosecond, location)}
}

// SetTime changes the fixed time the clock returns.
func (c *StoppedClock) SetTime(t time.Time) {
	c.time = t
}

// Now always returns the fixed time.
func (c *StoppedClock) Now() time.Time {
	return c.time
}
