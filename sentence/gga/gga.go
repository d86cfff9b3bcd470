// Package gga decodes and encodes GPGGA sentences: the essential fix
// (time, position, signal quality, satellite count, HDOP, altitude).
//
// Grounded on original_source/src/gpgga.c (nmeaGPGGAparse,
// nmeaGPGGAToInfo, nmeaGPGGAFromInfo).
package gga

import (
	"fmt"

	"github.com/goblimey/go-nmea/ctx"
	"github.com/goblimey/go-nmea/info"
	"github.com/goblimey/go-nmea/sentence"
	"github.com/goblimey/go-nmea/tok"
	"github.com/goblimey/go-nmea/validate"
)

// Prefix is the 5-character sentence prefix this package handles.
const Prefix = "GPGGA"

// fieldCount is the number of comma-separated fields nmealib's format
// string "$GPGGA,%s,%f,%c,%f,%c,%d,%d,%f,%f,%c,%f,%c,%f,%d" expects.
const fieldCount = 14

// Packet is the decoded content of one GPGGA sentence. Present records
// which fields were actually carried by the sentence; GeoidHeight,
// DGPSAge and DGPSSid are parsed and range-checked but, matching
// nmealib's own behaviour, never merged into an aggregate info.Info (see
// SPEC_FULL.md §3).
type Packet struct {
	Present info.Presence

	UTC info.Time
	Lat float64 // NDEG, unsigned; sign carried by NS
	NS  byte
	Lon float64 // NDEG, unsigned; sign carried by EW
	EW  byte
	Sig info.Sig

	SatInUseCount int
	HDOP          float64
	Elv           float64 // meters above MSL

	GeoidHeight float64 // meters; parsed, not merged
	DGPSAge     float64 // seconds; parsed, not merged
	DGPSSid     int     // parsed, not merged
}

// Parse decodes a GPGGA sentence body (everything from "$GPGGA," or
// "GPGGA," to the end, with any trailing "*HH" already stripped by the
// caller). On failure it returns an error and the zero Packet.
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

	if timeField := tok.Field(fields, 0); len(timeField) > 0 {
		raw, ok := tok.ParseFloat(c, timeField)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid time %q", timeField)
		}
		p.UTC = sentence.ParseTimeField(raw)
		if !validate.Time(p.UTC.Hour, p.UTC.Minute, p.UTC.Second, p.UTC.Hundredths) {
			return Packet{}, validate.Errorf(Prefix, "invalid time '%02d:%02d:%02d.%02d'",
				p.UTC.Hour, p.UTC.Minute, p.UTC.Second, p.UTC.Hundredths)
		}
		p.Present = p.Present.Set(info.UTCTIME)
	}

	latField := tok.Field(fields, 1)
	nsField := tok.Field(fields, 2)
	if lat, ok := tok.ParseAbsFloat(c, latField); ok && len(nsField) > 0 {
		ns, okChar := tok.ParseUpperChar(nsField)
		if !okChar {
			return Packet{}, validate.Errorf(Prefix, "invalid North/South field")
		}
		if _, okNS := validate.NS(ns); !okNS {
			return Packet{}, validate.Errorf(Prefix, "invalid North/South '%c'", ns)
		}
		p.Lat, p.NS = lat, ns
		p.Present = p.Present.Set(info.LAT)
	}

	lonField := tok.Field(fields, 3)
	ewField := tok.Field(fields, 4)
	if lon, ok := tok.ParseAbsFloat(c, lonField); ok && len(ewField) > 0 {
		ew, okChar := tok.ParseUpperChar(ewField)
		if !okChar {
			return Packet{}, validate.Errorf(Prefix, "invalid East/West field")
		}
		if _, okEW := validate.EW(ew); !okEW {
			return Packet{}, validate.Errorf(Prefix, "invalid East/West '%c'", ew)
		}
		p.Lon, p.EW = lon, ew
		p.Present = p.Present.Set(info.LON)
	}

	if sigField := tok.Field(fields, 5); len(sigField) > 0 {
		sig, ok := tok.ParseInt(c, sigField, 10)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid signal quality %q", sigField)
		}
		if !validate.Sig(sig) {
			return Packet{}, validate.Errorf(Prefix, "invalid signal %d, expected [0, 8]", sig)
		}
		p.Sig = info.Sig(sig)
		p.Present = p.Present.Set(info.SIG)
	} else {
		p.Sig = info.SigInvalid
	}

	if satField := tok.Field(fields, 6); len(satField) > 0 {
		n, ok := tok.ParseInt(c, satField, 10)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid satellite count %q", satField)
		}
		if n < 0 {
			n = -n
		}
		p.SatInUseCount = n
		p.Present = p.Present.Set(info.SATINUSECOUNT)
	}

	if hdopField := tok.Field(fields, 7); len(hdopField) > 0 {
		hdop, ok := tok.ParseAbsFloat(c, hdopField)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid HDOP %q", hdopField)
		}
		p.HDOP = hdop
		p.Present = p.Present.Set(info.HDOP)
	}

	elvField := tok.Field(fields, 8)
	elvUnits := tok.Field(fields, 9)
	if elv, ok := tok.ParseFloat(c, elvField); ok && len(elvUnits) > 0 {
		units, _ := tok.ParseUpperChar(elvUnits)
		if units != 'M' {
			return Packet{}, validate.Errorf(Prefix, "invalid elevation unit '%c'", units)
		}
		p.Elv = elv
		p.Present = p.Present.Set(info.ELV)
	}

	geoidField := tok.Field(fields, 10)
	geoidUnits := tok.Field(fields, 11)
	if geoid, ok := tok.ParseFloat(c, geoidField); ok && len(geoidUnits) > 0 {
		units, _ := tok.ParseUpperChar(geoidUnits)
		if units != 'M' {
			return Packet{}, validate.Errorf(Prefix, "invalid height unit '%c'", units)
		}
		p.GeoidHeight = geoid
	}

	if ageField := tok.Field(fields, 12); len(ageField) > 0 {
		age, ok := tok.ParseAbsFloat(c, ageField)
		if ok {
			p.DGPSAge = age
		}
	}

	if sidField := tok.Field(fields, 13); len(sidField) > 0 {
		sid, ok := tok.ParseInt(c, sidField, 10)
		if ok {
			if sid < 0 {
				sid = -sid
			}
			p.DGPSSid = sid
		}
	}

	return p, nil
}

// Generate appends the wire form of p, including the trailing "*HH\r\n"
// checksum, to buf and returns the extended slice. Fields whose presence
// bit is unset are emitted empty, as spec §4.4 requires.
func Generate(p Packet, buf []byte) []byte {
	var f [14]string

	if p.Present.Has(info.UTCTIME) {
		f[0] = sentence.FormatTimeField(p.UTC)
	}
	if p.Present.Has(info.LAT) {
		f[1] = fmt.Sprintf("%09.4f", p.Lat)
		f[2] = string(p.NS)
	}
	if p.Present.Has(info.LON) {
		f[3] = fmt.Sprintf("%010.4f", p.Lon)
		f[4] = string(p.EW)
	}
	if p.Present.Has(info.SIG) {
		f[5] = fmt.Sprintf("%d", int(p.Sig))
	}
	if p.Present.Has(info.SATINUSECOUNT) {
		f[6] = fmt.Sprintf("%02d", p.SatInUseCount)
	}
	if p.Present.Has(info.HDOP) {
		f[7] = fmt.Sprintf("%03.1f", p.HDOP)
	}
	if p.Present.Has(info.ELV) {
		f[8] = fmt.Sprintf("%.1f", p.Elv)
		f[9] = "M"
	}
	// Geoid height / DGPS age / DGPS station ID (fields 10-13) are not
	// tracked in the aggregate, so they are always emitted empty.

	return sentence.Render(buf, Prefix, f[:])
}
