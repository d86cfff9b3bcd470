// Package nmea decodes and encodes NMEA 0183 positional telemetry
// sentences (GGA, GSA, GSV, RMC, VTG) and merges them into a single
// aggregate fix, the way a GNSS receiver's five-sentence-per-epoch
// output is normally consumed.
//
// A typical consumer feeds raw bytes to a frame.Parser (package frame),
// which extracts individual "$...*HH\r\n" frames and hands each one to
// SentenceToInfo, accumulating state in one info.Info across an epoch.
//
// Grounded on original_source/src/sentence.c (nmeaPrefixToType) for the
// prefix dispatch, and on the teacher's rtcm3 top-level package for the
// general shape of "one exported entry point per wire message family".
package nmea

import (
	"fmt"

	"github.com/goblimey/go-nmea/ctx"
	"github.com/goblimey/go-nmea/info"
	"github.com/goblimey/go-nmea/sentence/gga"
	"github.com/goblimey/go-nmea/sentence/gsa"
	"github.com/goblimey/go-nmea/sentence/gsv"
	"github.com/goblimey/go-nmea/sentence/rmc"
	"github.com/goblimey/go-nmea/sentence/vtg"
)

// Kind identifies which of the five supported sentences a frame body
// holds.
type Kind int

// Supported sentence kinds, plus Unknown for anything this module
// doesn't decode.
const (
	Unknown Kind = iota
	GGA
	GSA
	GSV
	RMC
	VTG
)

func (k Kind) String() string {
	switch k {
	case GGA:
		return "GPGGA"
	case GSA:
		return "GPGSA"
	case GSV:
		return "GPGSV"
	case RMC:
		return "GPRMC"
	case VTG:
		return "GPVTG"
	default:
		return "UNKNOWN"
	}
}

// SentenceKind inspects a frame body (with any leading '$' and trailing
// "*HH" already stripped) and reports which kind of sentence it is,
// without fully parsing it.
func SentenceKind(body []byte) Kind {
	b := body
	if len(b) > 0 && b[0] == '$' {
		b = b[1:]
	}
	if len(b) < 6 || b[5] != ',' {
		return Unknown
	}
	switch string(b[:5]) {
	case gga.Prefix:
		return GGA
	case gsa.Prefix:
		return GSA
	case gsv.Prefix:
		return GSV
	case rmc.Prefix:
		return RMC
	case vtg.Prefix:
		return VTG
	default:
		return Unknown
	}
}

// SentenceToInfo decodes one sentence body and merges it into i. Kinds
// this module doesn't recognise are silently ignored, matching
// nmealib's own "unknown sentences are skipped" dispatch behaviour.
// After a batch of sentences covering one epoch has been merged, call
// info.Sanitise(i) to normalise the result. A checksum trailer ("*",
// "*HH" or "*HH\r\n") is accepted and ignored; its digits are not
// checked here.
func SentenceToInfo(c *ctx.Context, body []byte, i *info.Info) error {
	for n, b := range body {
		if b == '*' {
			body = body[:n]
			break
		}
	}
	switch SentenceKind(body) {
	case GGA:
		p, err := gga.Parse(c, body)
		if err != nil {
			return err
		}
		info.GGAToInfo(info.GGAFields{
			Present: p.Present, UTC: p.UTC, Lat: p.Lat, NS: p.NS, Lon: p.Lon, EW: p.EW,
			Sig: p.Sig, SatInUseCount: p.SatInUseCount, HDOP: p.HDOP, Elv: p.Elv,
		}, i)
		return nil

	case GSA:
		p, err := gsa.Parse(c, body)
		if err != nil {
			return err
		}
		info.GSAToInfo(info.GSAFields{
			Present: p.Present, Selection: byte(p.Selection), Fix: p.Fix, InUse: p.InUse,
			PDOP: p.PDOP, HDOP: p.HDOP, VDOP: p.VDOP,
		}, i)
		return nil

	case GSV:
		p, err := gsv.Parse(c, body)
		if err != nil {
			return err
		}
		info.GSVToInfo(info.GSVFields{
			Present: p.Present, Sentences: p.Sentences, Sentence: p.Sentence,
			Satellites: p.Satellites, Sats: p.Sats,
		}, i)
		return nil

	case RMC:
		p, err := rmc.Parse(c, body)
		if err != nil {
			return err
		}
		info.RMCToInfo(info.RMCFields{
			Present: p.Present, UTC: p.UTC, Status: p.Status, Mode: p.Mode,
			Lat: p.Lat, NS: p.NS, Lon: p.Lon, EW: p.EW, Speed: p.Speed, Track: p.Track,
			MagVar: p.MagVar, MagVarEW: p.MagVarEW,
		}, i)
		return nil

	case VTG:
		p, err := vtg.Parse(c, body)
		if err != nil {
			return err
		}
		info.VTGToInfo(info.VTGFields{
			Present: p.Present, Track: p.Track, MTrack: p.MTrack,
			SpeedKnots: p.SpeedKnots, SpeedKPH: p.SpeedKPH,
		}, i)
		return nil

	default:
		return nil
	}
}

// SentenceFromInfo renders one sentence of kind, derived from i, onto
// buf. gsvIndex selects which GSV sentence to emit (0-based) when kind
// is GSV; it is ignored for every other kind. Returns an error for a
// kind this module can't generate (Unknown) or an out-of-range gsvIndex.
func SentenceFromInfo(i *info.Info, kind Kind, gsvIndex int, buf []byte) ([]byte, error) {
	switch kind {
	case GGA:
		p := gga.Packet{UTC: i.UTC, Sig: i.Sig, SatInUseCount: i.Sats.InUseCount, HDOP: i.HDOP, Elv: i.Elv}
		if i.Present.Fields.Has(info.UTCTIME) {
			p.Present = p.Present.Set(info.UTCTIME)
		}
		if i.Present.Fields.Has(info.LAT) {
			p.Lat, p.NS = abs2(i.Lat), hemisphere(i.Lat, 'N', 'S')
			p.Present = p.Present.Set(info.LAT)
		}
		if i.Present.Fields.Has(info.LON) {
			p.Lon, p.EW = abs2(i.Lon), hemisphere(i.Lon, 'E', 'W')
			p.Present = p.Present.Set(info.LON)
		}
		if i.Present.Fields.Has(info.SIG) {
			p.Present = p.Present.Set(info.SIG)
		}
		if i.Present.Fields.Has(info.SATINUSECOUNT) {
			p.Present = p.Present.Set(info.SATINUSECOUNT)
		}
		if i.Present.Fields.Has(info.HDOP) {
			p.Present = p.Present.Set(info.HDOP)
		}
		if i.Present.Fields.Has(info.ELV) {
			p.Present = p.Present.Set(info.ELV)
		}
		return gga.Generate(p, buf), nil

	case GSA:
		p := gsa.Packet{Fix: i.Fix, InUse: [gsa.MaxInUse]uint{}, PDOP: i.PDOP, HDOP: i.HDOP, VDOP: i.VDOP}
		if i.Present.Fields.Has(info.SIG) {
			if i.Sig == info.SigManual {
				p.Selection = gsa.Selection('M')
			} else {
				p.Selection = gsa.Selection('A')
			}
			p.Present = p.Present.Set(info.SIG)
		}
		if i.Present.Fields.Has(info.FIX) {
			p.Present = p.Present.Set(info.FIX)
		}
		if i.Present.Fields.Has(info.SATINUSE) {
			n := 0
			for _, prn := range i.Sats.InUse {
				if prn != 0 && n < gsa.MaxInUse {
					p.InUse[n] = prn
					n++
				}
			}
			p.Present = p.Present.Set(info.SATINUSE)
		}
		if i.Present.Fields.Has(info.PDOP) {
			p.Present = p.Present.Set(info.PDOP)
		}
		if i.Present.Fields.Has(info.HDOP) {
			p.Present = p.Present.Set(info.HDOP)
		}
		if i.Present.Fields.Has(info.VDOP) {
			p.Present = p.Present.Set(info.VDOP)
		}
		return gsa.Generate(p, buf), nil

	case GSV:
		sentences := gsv.SentencesFor(i.Sats.InViewCount)
		if gsvIndex < 0 || gsvIndex >= sentences {
			return nil, fmt.Errorf("GSV sentence index %d out of range [0, %d)", gsvIndex, sentences)
		}
		p := gsv.Packet{
			Sentences:  sentences,
			Sentence:   gsvIndex + 1,
			Satellites: i.Sats.InViewCount,
		}
		p.Present = p.Present.Set(info.SATINVIEWCOUNT)
		if i.Present.Fields.Has(info.SATINVIEW) {
			base := gsvIndex * 4
			for offset := 0; offset < 4 && base+offset < info.MaxSatellites; offset++ {
				p.Sats[offset] = i.Sats.InView[base+offset]
			}
			p.Present = p.Present.Set(info.SATINVIEW)
		}
		return gsv.Generate(p, buf), nil

	case RMC:
		p := rmc.Packet{UTC: i.UTC, Speed: i.Speed / info.KnotsToKPH, Track: i.Track}
		if i.Present.Fields.Has(info.UTCTIME) {
			p.Present = p.Present.Set(info.UTCTIME)
		}
		if i.Present.Fields.Has(info.SIG) {
			if i.Sig != info.SigInvalid {
				p.Status = 'A'
			} else {
				p.Status = 'V'
			}
			p.Mode = i.Sig.Char()
			p.Present = p.Present.Set(info.SIG)
		}
		if i.Present.Fields.Has(info.LAT) {
			p.Lat, p.NS = abs2(i.Lat), hemisphere(i.Lat, 'N', 'S')
			p.Present = p.Present.Set(info.LAT)
		}
		if i.Present.Fields.Has(info.LON) {
			p.Lon, p.EW = abs2(i.Lon), hemisphere(i.Lon, 'E', 'W')
			p.Present = p.Present.Set(info.LON)
		}
		if i.Present.Fields.Has(info.SPEED) {
			p.Present = p.Present.Set(info.SPEED)
		}
		if i.Present.Fields.Has(info.TRACK) {
			p.Present = p.Present.Set(info.TRACK)
		}
		if i.Present.Fields.Has(info.UTCDATE) {
			p.Present = p.Present.Set(info.UTCDATE)
		}
		if i.Present.Fields.Has(info.MAGVAR) {
			p.MagVar, p.MagVarEW = abs2(i.MagVar), hemisphere(i.MagVar, 'E', 'W')
			p.Present = p.Present.Set(info.MAGVAR)
		}
		return rmc.Generate(p, buf), nil

	case VTG:
		p := vtg.Packet{Track: i.Track, MTrack: i.MTrack, SpeedKPH: i.Speed, SpeedKnots: i.Speed / info.KnotsToKPH}
		if i.Present.Fields.Has(info.TRACK) {
			p.Present = p.Present.Set(info.TRACK)
		}
		if i.Present.Fields.Has(info.MTRACK) {
			p.Present = p.Present.Set(info.MTRACK)
		}
		if i.Present.Fields.Has(info.SPEED) {
			p.Present = p.Present.Set(info.SPEED)
		}
		return vtg.Generate(p, buf), nil

	default:
		return nil, fmt.Errorf("nmea: unsupported sentence kind %v", kind)
	}
}

func abs2(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func hemisphere(v float64, positive, negative byte) byte {
	if v >= 0 {
		return positive
	}
	return negative
}
