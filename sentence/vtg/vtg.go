// Package vtg decodes and encodes GPVTG sentences: course over ground
// (true and magnetic) and ground speed (knots and kph).
//
// Grounded on original_source/src/gpvtg.c (nmeaGPVTGparse,
// nmeaGPVTGToInfo, nmeaGPVTGFromInfo, nmeaGPVTGgenerate).
package vtg

import (
	"fmt"

	"github.com/goblimey/go-nmea/ctx"
	"github.com/goblimey/go-nmea/info"
	"github.com/goblimey/go-nmea/sentence"
	"github.com/goblimey/go-nmea/tok"
	"github.com/goblimey/go-nmea/validate"
)

// Prefix is the 5-character sentence prefix this package handles.
const Prefix = "GPVTG"

// fieldCount mirrors nmealib's "%f,%c,%f,%c,%f,%c,%f,%c" format: track,
// track unit, mtrack, mtrack unit, speed(knots), knots unit,
// speed(kph), kph unit.
const fieldCount = 8

// KnotsToKPH is the knot-to-kilometres-per-hour conversion factor used
// to fill in whichever speed unit the sentence omitted.
const KnotsToKPH = 1.852

// Packet is the decoded content of one GPVTG sentence.
type Packet struct {
	Present info.Presence

	Track  float64 // degrees true
	MTrack float64 // degrees magnetic

	SpeedKnots float64
	SpeedKPH   float64
}

// Parse decodes a GPVTG sentence body.
func Parse(c *ctx.Context, body []byte) (Packet, error) {
	rest, ok := sentence.StripPrefix(body, Prefix)
	if !ok {
		return Packet{}, fmt.Errorf("%s parse error: missing prefix", Prefix)
	}

	fields := tok.Fields(rest, ',')
	if len(fields) != fieldCount {
		return Packet{}, validate.Errorf(Prefix, "need %d tokens, got %d", fieldCount, len(fields))
	}

	var p Packet

	trackField := tok.Field(fields, 0)
	trackUnit := tok.Field(fields, 1)
	if track, ok := tok.ParseFloat(c, trackField); ok && len(trackUnit) > 0 {
		unit, _ := tok.ParseUpperChar(trackUnit)
		if unit != 'T' {
			return Packet{}, validate.Errorf(Prefix, "invalid track unit '%c', expected 'T'", unit)
		}
		p.Track = absFloat(track)
		p.Present = p.Present.Set(info.TRACK)
	}

	mtrackField := tok.Field(fields, 2)
	mtrackUnit := tok.Field(fields, 3)
	if mtrack, ok := tok.ParseFloat(c, mtrackField); ok && len(mtrackUnit) > 0 {
		unit, _ := tok.ParseUpperChar(mtrackUnit)
		if unit != 'M' {
			return Packet{}, validate.Errorf(Prefix, "invalid mtrack unit '%c', expected 'M'", unit)
		}
		p.MTrack = absFloat(mtrack)
		p.Present = p.Present.Set(info.MTRACK)
	}

	var haveKnots, haveKPH bool

	knotsField := tok.Field(fields, 4)
	knotsUnit := tok.Field(fields, 5)
	if sp, ok := tok.ParseFloat(c, knotsField); ok && len(knotsUnit) > 0 {
		unit, _ := tok.ParseUpperChar(knotsUnit)
		if unit != 'N' {
			return Packet{}, validate.Errorf(Prefix, "invalid knots speed unit '%c', expected 'N'", unit)
		}
		p.SpeedKnots = absFloat(sp)
		haveKnots = true
		p.Present = p.Present.Set(info.SPEED)
	}

	kphField := tok.Field(fields, 6)
	kphUnit := tok.Field(fields, 7)
	if sp, ok := tok.ParseFloat(c, kphField); ok && len(kphUnit) > 0 {
		unit, _ := tok.ParseUpperChar(kphUnit)
		if unit != 'K' {
			return Packet{}, validate.Errorf(Prefix, "invalid kph speed unit '%c', expected 'K'", unit)
		}
		p.SpeedKPH = absFloat(sp)
		haveKPH = true
		p.Present = p.Present.Set(info.SPEED)
	}

	switch {
	case haveKPH && !haveKnots:
		p.SpeedKnots = p.SpeedKPH / KnotsToKPH
	case haveKnots && !haveKPH:
		p.SpeedKPH = p.SpeedKnots * KnotsToKPH
	}

	return p, nil
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Generate appends the wire form of p to buf.
func Generate(p Packet, buf []byte) []byte {
	var f [fieldCount]string

	if p.Present.Has(info.TRACK) {
		f[0] = fmt.Sprintf("%03.1f", p.Track)
		f[1] = "T"
	}
	if p.Present.Has(info.MTRACK) {
		f[2] = fmt.Sprintf("%03.1f", p.MTrack)
		f[3] = "M"
	}
	if p.Present.Has(info.SPEED) {
		f[4] = fmt.Sprintf("%03.1f", p.SpeedKnots)
		f[5] = "N"
		f[6] = fmt.Sprintf("%03.1f", p.SpeedKPH)
		f[7] = "K"
	}

	return sentence.Render(buf, Prefix, f[:])
}
