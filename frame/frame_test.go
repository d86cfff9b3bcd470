package frame

import (
	"testing"

	"github.com/goblimey/go-nmea/ctx"
	"github.com/goblimey/go-nmea/info"
)

const refSentence = "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47\r\n"

func TestParseExtractsAndMergesWellFormedFrame(t *testing.T) {
	p := New(ctx.Background())
	var i info.Info

	n := p.Parse([]byte(refSentence), &i)
	if n != 1 {
		t.Fatalf("want 1 merged frame, got %d", n)
	}
	frames := p.Take()
	if len(frames) != 1 {
		t.Fatalf("want 1 frame in Take, got %d", len(frames))
	}
	want := "GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"
	if string(frames[0]) != want {
		t.Errorf("want body %q, got %q", want, frames[0])
	}
	if !i.Present.Fields.Has(info.LAT) {
		t.Error("want LAT merged into info after a successful parse")
	}
}

func TestParseSplitAcrossMultipleCalls(t *testing.T) {
	p := New(ctx.Background())
	var i info.Info
	full := []byte(refSentence)

	total := 0
	for idx := 0; idx < len(full); idx += 7 {
		end := idx + 7
		if end > len(full) {
			end = len(full)
		}
		total += p.Parse(full[idx:end], &i)
	}
	if total != 1 {
		t.Fatalf("want 1 frame merged across chunks, got %d", total)
	}
}

func TestParseDropsFrameOnChecksumMismatch(t *testing.T) {
	p := New(ctx.Background())
	var i info.Info
	bad := "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*00\r\n"
	n := p.Parse([]byte(bad), &i)
	if n != 0 {
		t.Fatalf("want 0 merged frames for a bad checksum, got %d", n)
	}
	if len(p.Take()) != 0 {
		t.Error("want no frame extracted at all when the checksum is wrong")
	}
}

func TestParseExtractsButDoesNotMergeAnUnparseableBody(t *testing.T) {
	p := New(ctx.Background())
	var i info.Info

	// A bare '*' with no hex digits is accepted as "no checksum
	// supplied", so the frame is extracted, but this GGA body is short
	// of its required 14 fields, so the dispatcher fails to merge it.
	n := p.Parse([]byte("$GPGGA,1,2,3*\r\n"), &i)
	if n != 0 {
		t.Fatalf("want 0 merged frames for an unparseable body, got %d", n)
	}
	frames := p.Take()
	if len(frames) != 1 {
		t.Fatalf("want the frame still extracted despite the merge failure, got %d", len(frames))
	}
	if string(frames[0]) != "GPGGA,1,2,3" {
		t.Errorf("want body %q, got %q", "GPGGA,1,2,3", frames[0])
	}
}

func TestParseResynchronisesOnNewDollar(t *testing.T) {
	p := New(ctx.Background())
	var i info.Info
	n := p.Parse([]byte("$GPGGA,incomplete"+refSentence), &i)
	if n != 1 {
		t.Fatalf("want the abandoned frame dropped and the next one merged, got %d", n)
	}
}

func TestParseAbandonsOverlongFrame(t *testing.T) {
	// The cap fits the 61-byte reference body but not the 100-byte run of
	// 'A's before it.
	p := NewSized(ctx.Background(), 64)
	var i info.Info
	huge := make([]byte, 0, 32)
	huge = append(huge, '$')
	for idx := 0; idx < 100; idx++ {
		huge = append(huge, 'A')
	}
	huge = append(huge, []byte(refSentence)...)

	n := p.Parse(huge, &i)
	if n != 1 {
		t.Fatalf("want the overlong frame dropped and the next well-formed one merged, got %d", n)
	}
}

func TestParseAcceptsFrameWithNoChecksum(t *testing.T) {
	p := New(ctx.Background())
	var i info.Info
	body := "GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"
	n := p.Parse([]byte("$"+body+"\r\n"), &i)
	if n != 1 {
		t.Fatalf("want the frame merged when the body hits CR/LF with no checksum, got %d", n)
	}
	if frames := p.Take(); len(frames) != 1 || string(frames[0]) != body {
		t.Errorf("want one frame extracted with body %q, got %q", body, frames)
	}
}
