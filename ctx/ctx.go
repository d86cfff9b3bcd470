// Package ctx carries the two optional diagnostic sinks (trace and error)
// and the buffer-size knob that the rest of this module uses to report
// what it's doing without ever returning a Go error from the hot path.
//
// The shape follows the teacher's handler.RTCM, which threads a
// *log.Logger through the decoder rather than calling the stdlib log
// package directly (see rtcm/handler/handler.go, handler.makeLogEntry).
// Here the sinks are plain functions instead of a *log.Logger so that a
// caller can plug in any logging library without this package importing
// one.
package ctx

import (
	"fmt"
	"sync/atomic"
)

// MinBufferSize is the smallest allowed trace/error formatting buffer.
const MinBufferSize = 256

// DefaultBufferSize is used when no explicit size is configured.
const DefaultBufferSize = 1024

// Sink receives a fully formatted trace or error line.
type Sink func(line string)

// Context bundles the optional trace/error sinks and the formatting
// buffer-size knob described in spec §4.8. A nil *Context is valid and
// behaves like a Context with both sinks disabled.
type Context struct {
	trace      Sink
	error      Sink
	bufferSize int
}

// New creates a Context. Either sink may be nil to disable it. bufferSize
// is clamped to MinBufferSize; zero selects DefaultBufferSize.
func New(trace, error Sink, bufferSize int) *Context {
	if bufferSize == 0 {
		bufferSize = DefaultBufferSize
	}
	if bufferSize < MinBufferSize {
		bufferSize = MinBufferSize
	}
	return &Context{trace: trace, error: error, bufferSize: bufferSize}
}

// BufferSize returns the configured formatting buffer size.
func (c *Context) BufferSize() int {
	if c == nil {
		return DefaultBufferSize
	}
	return c.bufferSize
}

// Trace emits a trace line if a trace sink is configured.
func (c *Context) Trace(line string) {
	if c == nil || c.trace == nil {
		return
	}
	c.trace(truncate(line, c.bufferSize))
}

// Tracef formats and emits a trace line.
func (c *Context) Tracef(format string, args ...interface{}) {
	if c == nil || c.trace == nil {
		return
	}
	c.trace(truncate(fmt.Sprintf(format, args...), c.bufferSize))
}

// Error emits an error line if an error sink is configured.
func (c *Context) Error(line string) {
	if c == nil || c.error == nil {
		return
	}
	c.error(truncate(line, c.bufferSize))
}

// Errorf formats and emits an error line.
func (c *Context) Errorf(format string, args ...interface{}) {
	if c == nil || c.error == nil {
		return
	}
	c.error(truncate(fmt.Sprintf(format, args...), c.bufferSize))
}

// --- process-wide compatibility shim ---
//
// spec §9 allows a thread-safe global as a compatibility shim for callers
// that cannot thread a *Context through every call. It is not intended to
// change while sentences are being parsed concurrently with a read of it.

var defaultContext atomic.Pointer[Context]

func init() {
	defaultContext.Store(New(nil, nil, DefaultBufferSize))
}

// SetDefault replaces the process-wide default Context used by Background.
func SetDefault(c *Context) {
	if c == nil {
		c = New(nil, nil, DefaultBufferSize)
	}
	defaultContext.Store(c)
}

// Background returns the current process-wide default Context.
func Background() *Context {
	return defaultContext.Load()
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
