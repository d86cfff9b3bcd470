package clock

import "time"

// SystemClock satisfies Clock by returning the real system time.
type SystemClock struct{}

var _ Clock = SystemClock{}

// NewSystemClock creates a clock backed by time.Now.
func NewSystemClock() Clock {
	return SystemClock{}
}

// Now returns the system time, in UTC.
func (c SystemClock) Now() time.Time {
	return time.Now().UTC()
}
