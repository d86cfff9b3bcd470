// Package rmc decodes and encodes GPRMC sentences: the recommended
// minimum fix — time, status, position, speed, track, date and
// magnetic variation.
//
// Grounded on original_source/src/gprmc.c (nmeaGPRMCparse,
// nmeaGPRMCToInfo, nmeaGPRMCFromInfo, nmeaGPRMCgenerate).
package rmc

import (
	"fmt"

	"github.com/goblimey/go-nmea/ctx"
	"github.com/goblimey/go-nmea/info"
	"github.com/goblimey/go-nmea/sentence"
	"github.com/goblimey/go-nmea/tok"
	"github.com/goblimey/go-nmea/validate"
)

// Prefix is the 5-character sentence prefix this package handles.
const Prefix = "GPRMC"

// Packet is the decoded content of one GPRMC sentence. Status is the
// wire status character 'A' (active) or 'V' (void); Mode is the
// optional FAA mode indicator carried by the 12-token form.
type Packet struct {
	Present info.Presence

	UTC info.Time

	Status byte // 'A' or 'V'
	Mode   byte // FAA mode char, or 0 if the sentence had no 12th field

	Lat float64
	NS  byte
	Lon float64
	EW  byte

	Speed float64 // knots
	Track float64 // degrees true

	MagVar   float64
	MagVarEW byte
}

// Parse decodes a GPRMC sentence body. It accepts both the 11-token
// form (no FAA mode indicator) and the 12-token form.
func Parse(c *ctx.Context, body []byte) (Packet, error) {
	rest, ok := sentence.StripPrefix(body, Prefix)
	if !ok {
		return Packet{}, fmt.Errorf("%s parse error: missing prefix", Prefix)
	}

	fields := tok.Fields(rest, ',')
	hasMode := len(fields) == 12
	if len(fields) != 11 && !hasMode {
		return Packet{}, validate.Errorf(Prefix, "need 11 or 12 tokens, got %d", len(fields))
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

	statusField := tok.Field(fields, 1)
	modeField := []byte(nil)
	if hasMode {
		modeField = tok.Field(fields, 11)
	}
	if len(statusField) > 0 && (!hasMode || len(modeField) > 0) {
		status, _ := tok.ParseUpperChar(statusField)
		if status != 'A' && status != 'V' {
			return Packet{}, validate.Errorf(Prefix, "invalid status '%c'", status)
		}
		p.Status = status
		if hasMode {
			mode, _ := tok.ParseUpperChar(modeField)
			if _, okMode := validate.Mode(mode); !okMode {
				return Packet{}, validate.Errorf(Prefix, "invalid mode '%c'", mode)
			}
			p.Mode = mode
		}
		p.Present = p.Present.Set(info.SIG)
	}

	latField := tok.Field(fields, 2)
	nsField := tok.Field(fields, 3)
	if lat, ok := tok.ParseFloat(c, latField); ok && len(nsField) > 0 {
		ns, _ := tok.ParseUpperChar(nsField)
		if _, okNS := validate.NS(ns); !okNS {
			return Packet{}, validate.Errorf(Prefix, "invalid North/South '%c'", ns)
		}
		p.Lat, p.NS = absFloat(lat), ns
		p.Present = p.Present.Set(info.LAT)
	}

	lonField := tok.Field(fields, 4)
	ewField := tok.Field(fields, 5)
	if lon, ok := tok.ParseFloat(c, lonField); ok && len(ewField) > 0 {
		ew, _ := tok.ParseUpperChar(ewField)
		if _, okEW := validate.EW(ew); !okEW {
			return Packet{}, validate.Errorf(Prefix, "invalid East/West '%c'", ew)
		}
		p.Lon, p.EW = absFloat(lon), ew
		p.Present = p.Present.Set(info.LON)
	}

	if speedField := tok.Field(fields, 6); len(speedField) > 0 {
		v, ok := tok.ParseAbsFloat(c, speedField)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid speed %q", speedField)
		}
		p.Speed = v
		p.Present = p.Present.Set(info.SPEED)
	}

	if trackField := tok.Field(fields, 7); len(trackField) > 0 {
		v, ok := tok.ParseAbsFloat(c, trackField)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid track %q", trackField)
		}
		p.Track = v
		p.Present = p.Present.Set(info.TRACK)
	}

	if dateField := tok.Field(fields, 8); len(dateField) > 0 {
		date, ok := tok.ParseInt(c, dateField, 10)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid date %q", dateField)
		}
		sentence.ParseDateField(date, &p.UTC)
		if !validate.Date(p.UTC.Year, p.UTC.Month, p.UTC.Day) {
			return Packet{}, validate.Errorf(Prefix, "invalid date '%04d-%02d-%02d'", p.UTC.Year, p.UTC.Month, p.UTC.Day)
		}
		p.Present = p.Present.Set(info.UTCDATE)
	}

	magvarField := tok.Field(fields, 9)
	magvarEWField := tok.Field(fields, 10)
	if mv, ok := tok.ParseFloat(c, magvarField); ok && len(magvarEWField) > 0 {
		ew, _ := tok.ParseUpperChar(magvarEWField)
		if _, okEW := validate.EW(ew); !okEW {
			return Packet{}, validate.Errorf(Prefix, "invalid magnetic variation direction '%c'", ew)
		}
		p.MagVar, p.MagVarEW = absFloat(mv), ew
		p.Present = p.Present.Set(info.MAGVAR)
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
	var f [12]string

	if p.Present.Has(info.UTCTIME) {
		f[0] = sentence.FormatTimeField(p.UTC)
	}
	if p.Present.Has(info.SIG) {
		f[1] = string(p.Status)
	}
	if p.Present.Has(info.LAT) {
		f[2] = fmt.Sprintf("%09.4f", p.Lat)
		f[3] = string(p.NS)
	}
	if p.Present.Has(info.LON) {
		f[4] = fmt.Sprintf("%010.4f", p.Lon)
		f[5] = string(p.EW)
	}
	if p.Present.Has(info.SPEED) {
		f[6] = fmt.Sprintf("%03.1f", p.Speed)
	}
	if p.Present.Has(info.TRACK) {
		f[7] = fmt.Sprintf("%03.1f", p.Track)
	}
	if p.Present.Has(info.UTCDATE) {
		f[8] = sentence.FormatDateField(p.UTC)
	}
	if p.Present.Has(info.MAGVAR) {
		f[9] = fmt.Sprintf("%03.1f", p.MagVar)
		f[10] = string(p.MagVarEW)
	}
	n := len(f)
	if p.Present.Has(info.SIG) && p.Mode != 0 {
		f[11] = string(p.Mode)
	} else {
		// No mode to carry: emit the 11-token form.
		n = 11
	}

	return sentence.Render(buf, Prefix, f[:n])
}
