// Package config provides support for reading a JSON configuration file
// for programs built on this module, following the same
// read-from-file-into-struct convention the teacher's jsonconfig
// package uses for its NTRIP tools.
//
// An example config file:
//
//	{
//		"frameBufferSize": 8192,
//		"traceBufferSize": 512,
//		"metric": true,
//		"traceToStderr": false
//	}
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goblimey/go-nmea/ctx"
	"github.com/goblimey/go-nmea/frame"
)

// Config holds the values that tune the frame parser and diagnostic
// context this module builds.
type Config struct {
	// FrameBufferSize caps how many bytes a single sentence frame may
	// accumulate before frame.Parser abandons it. Zero selects
	// frame.DefaultBufferSize.
	FrameBufferSize int `json:"frameBufferSize"`

	// TraceBufferSize caps how long a single trace/error line may be.
	// Zero selects ctx.DefaultBufferSize.
	TraceBufferSize int `json:"traceBufferSize"`

	// Metric selects whether decoded Info values should be converted to
	// decimal degrees/meters (see info.ToMetric) rather than left in
	// NDEG/dimensionless DOP form.
	Metric bool `json:"metric"`

	// TraceToStderr, if set, wires the Context built by NewContext to
	// write trace and error lines to os.Stderr.
	TraceToStderr bool `json:"traceToStderr"`
}

// FromFile reads and parses a JSON config file.
func FromFile(name string) (*Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromReader(f)
}

// FromReader parses a JSON config from r.
func FromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: cannot read JSON: %w", err)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: cannot parse JSON: %w", err)
	}
	return &c, nil
}

// NewContext builds a ctx.Context from c: if TraceToStderr is set, both
// the trace and error sinks write a line to os.Stderr, otherwise both
// are disabled.
func (c *Config) NewContext() *ctx.Context {
	var trace, errSink ctx.Sink
	if c.TraceToStderr {
		trace = func(line string) { fmt.Fprintln(os.Stderr, "trace:", line) }
		errSink = func(line string) { fmt.Fprintln(os.Stderr, "error:", line) }
	}
	return ctx.New(trace, errSink, c.TraceBufferSize)
}

// NewFrameParser builds a frame.Parser using c's FrameBufferSize and
// Context.
func (c *Config) NewFrameParser() *frame.Parser {
	return frame.NewSized(c.NewContext(), c.FrameBufferSize)
}
