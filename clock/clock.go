// Package clock provides a clock service as an alternative to calling the
// standard time package directly, so that code which depends on the
// current wall clock (such as info.Sanitise filling in a missing UTC date
// or time) can be tested with a fixed or stepped notion of "now" instead
// of the real clock.
package clock

import "time"

// Clock yields the current time. Production code uses SystemClock; tests
// can use StoppedClock or SteppingClock instead.
type Clock interface {
	Now() time.Time
}
