package config

import (
	"strings"
	"testing"

	"github.com/goblimey/go-nmea/info"
)

func TestFromReaderParsesAllFields(t *testing.T) {
	r := strings.NewReader(`{
		"frameBufferSize": 8192,
		"traceBufferSize": 512,
		"metric": true,
		"traceToStderr": false
	}`)

	c, err := FromReader(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.FrameBufferSize != 8192 || c.TraceBufferSize != 512 || !c.Metric || c.TraceToStderr {
		t.Errorf("want the parsed fields to match the input, got %+v", c)
	}
}

func TestFromReaderRejectsInvalidJSON(t *testing.T) {
	if _, err := FromReader(strings.NewReader("not json")); err == nil {
		t.Fatal("want an error for invalid JSON")
	}
}

func TestNewContextDisabledWithoutTraceToStderr(t *testing.T) {
	c := &Config{}
	ctxt := c.NewContext()
	// Neither sink is configured, so Trace/Error are no-ops; this should
	// not panic.
	ctxt.Trace("hello")
	ctxt.Error("world")
}

func TestNewFrameParserUsesConfiguredBufferSize(t *testing.T) {
	c := &Config{FrameBufferSize: 8}
	p := c.NewFrameParser()
	var i info.Info

	// Feed more than 8 bytes of frame body before its terminator: the
	// frame should be abandoned rather than silently grown past the
	// configured cap.
	n := p.Parse([]byte("$123456789,more*00\r\n"), &i)
	if n != 0 {
		t.Errorf("want the oversized frame dropped, got %d frames", n)
	}
}
