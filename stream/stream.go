// Package stream drives a frame.Parser from an io.Reader, the way the
// teacher's ntrip-server wraps its input device in a
// contextio.Reader before pulling messages from it (see
// ntrip-server/main.go, findInputDevice): reads cancel cleanly when the
// caller's context is done, instead of blocking forever on a serial
// port or socket that never produces another byte.
package stream

import (
	"context"
	"io"

	"github.com/dolmen-go/contextio"

	nmea "github.com/goblimey/go-nmea"
	"github.com/goblimey/go-nmea/ctx"
	"github.com/goblimey/go-nmea/frame"
	"github.com/goblimey/go-nmea/info"
)

// readChunkSize is how much is read from the wrapped reader per Read
// call.
const readChunkSize = 4096

// ParseReader reads from r until EOF or ctx is done, merging every
// sentence it decodes into i via frame.Parser.Parse, and calls epoch (if
// non-nil) once per GGA frame extracted (whether or not it decoded), on
// the assumption that GGA starts a new epoch in the five-sentence-per-fix
// sequence most receivers emit. Because frame.Parser.Parse merges all of
// a chunk's frames before ParseReader looks at them, epoch fires after
// that GGA's fields, and those of any later sentence in the same chunk,
// have already landed in i, not before; callers that need a pristine pre-GGA
// snapshot should keep their own copy of i across calls.
//
// Sanitise is not called automatically; the caller decides when an
// epoch is complete and calls info.Sanitise(i) itself.
func ParseReader(goCtx context.Context, c *ctx.Context, r io.Reader, i *info.Info, epoch func()) error {
	reader := contextio.NewReader(goCtx, r)
	parser := frame.New(c)

	buf := make([]byte, readChunkSize)
	for {
		n, readErr := reader.Read(buf)
		if n > 0 {
			parser.Parse(buf[:n], i)
			if epoch != nil {
				for _, body := range parser.Take() {
					if nmea.SentenceKind(body) == nmea.GGA {
						epoch()
					}
				}
			} else {
				parser.Take()
			}
		}

		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
