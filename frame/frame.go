// Package frame extracts individual NMEA sentence frames
// ("$...,...,...*HH\r\n") out of a raw byte stream, the way a GNSS
// receiver's serial output actually arrives: as one long run of bytes
// with no guarantee that a single Write lines up with a single
// sentence, and merges each completed frame straight into an info.Info.
//
// Grounded on the teacher's rtcm/handler.go
// (RTCM.ReadNextRTCM3MessageFrame): a state machine fed incrementally
// with Parse, generalized from "scan for the 0xd3 start byte, then read
// a length-prefixed binary frame" to "scan for '$', then read bytes
// until the terminating CRLF, verifying the checksum along the way".
package frame

import (
	nmea "github.com/goblimey/go-nmea"
	"github.com/goblimey/go-nmea/ctx"
	"github.com/goblimey/go-nmea/info"
	"github.com/goblimey/go-nmea/tok"
)

// DefaultBufferSize is the Parser's default internal buffer capacity.
const DefaultBufferSize = 4096

type state int

const (
	skipUntilStart state = iota
	readBody
	readChecksum
	readEOL
)

// Parser extracts NMEA frames from a byte stream fed to it
// incrementally via Parse. It is not safe for concurrent use.
type Parser struct {
	c *ctx.Context

	state state
	body  []byte // accumulated bytes of the current frame, excluding '$' and the checksum/EOL

	checksumDigits [2]byte
	checksumCount  int
	haveChecksum   bool

	maxBodySize int

	// Frames collects completed frame bodies whose checksum, if one was
	// supplied, matched
	// (without '$', '*HH' or the trailing CRLF) since the last call to
	// Take.
	Frames [][]byte
}

// New returns a Parser ready to consume bytes, with its body buffer
// capped at DefaultBufferSize.
func New(c *ctx.Context) *Parser {
	return NewSized(c, DefaultBufferSize)
}

// NewSized is like New but caps a single frame's body at maxBodySize
// bytes; a non-positive maxBodySize selects DefaultBufferSize.
func NewSized(c *ctx.Context, maxBodySize int) *Parser {
	if maxBodySize <= 0 {
		maxBodySize = DefaultBufferSize
	}
	return &Parser{c: c, body: make([]byte, 0, maxBodySize), maxBodySize: maxBodySize}
}

// Parse feeds data into the parser. Every frame it completes is
// appended to p.Frames and, if recognised, merged into i via
// nmea.SentenceToInfo. It returns the number of frames successfully
// merged into i by this call (an unrecognised prefix or a decode error
// doesn't count, even though the frame is still kept in p.Frames).
func (p *Parser) Parse(data []byte, i *info.Info) int {
	start := len(p.Frames)

	for _, b := range data {
		switch p.state {
		case skipUntilStart:
			if b == '$' {
				p.body = p.body[:0]
				p.checksumCount = 0
				p.haveChecksum = false
				p.state = readBody
			}

		case readBody:
			switch b {
			case '*':
				p.state = readChecksum
			case '$':
				// A new frame started before this one terminated; drop
				// what we had and restart, matching a receiver that
				// resynchronises on the most recent '$'.
				p.body = p.body[:0]
				p.checksumCount = 0
			case '\r', '\n':
				// No checksum at all: the checksum is optional, so the
				// frame is accepted unverified.
				p.haveChecksum = false
				p.completeFrame()
				p.state = skipUntilStart
			default:
				if len(p.body) < p.maxBodySize {
					p.body = append(p.body, b)
				} else {
					// Overlong frame: abandon it and resynchronise.
					p.c.Tracef("frame: body exceeded %d bytes, dropping", p.maxBodySize)
					p.state = skipUntilStart
				}
			}

		case readChecksum:
			switch {
			case isHexDigit(b):
				p.checksumDigits[p.checksumCount] = b
				p.checksumCount++
				if p.checksumCount == 2 {
					p.haveChecksum = true
					p.state = readEOL
				}
			case (b == '\r' || b == '\n') && p.checksumCount == 0:
				// Bare '*' with no hex digits: accepted as "no checksum
				// supplied" per the preserved original_source behaviour.
				p.haveChecksum = false
				p.completeFrame()
				p.state = skipUntilStart
			default:
				p.c.Tracef("frame: invalid checksum digit %q, dropping frame", b)
				p.state = skipUntilStart
			}

		case readEOL:
			if b == '\r' || b == '\n' {
				p.completeFrame()
				p.state = skipUntilStart
			}
			// Any other byte here is unexpected trailing garbage before
			// the CRLF; stay in readEOL and ignore it rather than abandon
			// a frame that already checksummed correctly.
		}
	}

	merged := 0
	for _, body := range p.Frames[start:] {
		if nmea.SentenceKind(body) == nmea.Unknown {
			continue
		}
		if err := nmea.SentenceToInfo(p.c, body, i); err != nil {
			p.c.Tracef("frame: merge error: %v", err)
			continue
		}
		merged++
	}
	return merged
}

func (p *Parser) completeFrame() {
	if p.haveChecksum {
		want := tok.CRC(p.body)
		got, ok := parseHexByte(p.checksumDigits[0], p.checksumDigits[1])
		if !ok || got != want {
			p.c.Tracef("frame: checksum mismatch, dropping frame")
			return
		}
	}
	frame := make([]byte, len(p.body))
	copy(frame, p.body)
	p.Frames = append(p.Frames, frame)
}

// Take returns the frames accumulated so far and clears the buffer.
func (p *Parser) Take() [][]byte {
	frames := p.Frames
	p.Frames = nil
	return frames
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'F') || (b >= 'a' && b <= 'f')
}

func parseHexByte(hi, lo byte) (byte, bool) {
	h, ok := hexVal(hi)
	if !ok {
		return 0, false
	}
	l, ok := hexVal(lo)
	if !ok {
		return 0, false
	}
	return h<<4 | l, true
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	default:
		return 0, false
	}
}
