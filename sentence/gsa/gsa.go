// Package gsa decodes and encodes GPGSA sentences: receiver operating
// mode, satellites used for navigation, and the three DOP values.
//
// Grounded on original_source/src/gpgsa.c (nmeaGPGSAParse,
// nmeaGPGSAToInfo, nmeaGPGSAFromInfo, nmeaGPGSAGenerate).
package gsa

import (
	"fmt"
	"sort"

	"github.com/goblimey/go-nmea/ctx"
	"github.com/goblimey/go-nmea/info"
	"github.com/goblimey/go-nmea/sentence"
	"github.com/goblimey/go-nmea/tok"
	"github.com/goblimey/go-nmea/validate"
)

// Prefix is the 5-character sentence prefix this package handles.
const Prefix = "GPGSA"

// MaxInUse is the number of satellite PRN slots a GSA sentence carries.
const MaxInUse = 12

// fieldCount mirrors nmealib's "%c,%d,%d*12,%f,%f,%f" format: selection
// mode, fix, 12 PRN slots, PDOP, HDOP, VDOP.
const fieldCount = 17

// Selection is the GSA "selection mode" character: 'A' automatic,
// 'M' manual. A zero value means the field was absent.
type Selection byte

// Packet is the decoded content of one GPGSA sentence.
type Packet struct {
	Present info.Presence

	Selection Selection
	Fix       info.Fix
	InUse     [MaxInUse]uint // sorted ascending, zeros pushed to the end

	PDOP float64
	HDOP float64
	VDOP float64
}

// Parse decodes a GPGSA sentence body.
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

	if selField := tok.Field(fields, 0); len(selField) > 0 {
		sel, _ := tok.ParseUpperChar(selField)
		if sel != 'A' && sel != 'M' {
			return Packet{}, validate.Errorf(Prefix, "invalid selection mode '%c'", sel)
		}
		p.Selection = Selection(sel)
		p.Present = p.Present.Set(info.SIG)
	}

	if fixField := tok.Field(fields, 1); len(fixField) > 0 {
		fix, ok := tok.ParseInt(c, fixField, 10)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid fix %q", fixField)
		}
		if !validate.Fix(fix) {
			return Packet{}, validate.Errorf(Prefix, "invalid fix %d, expected [1, 3]", fix)
		}
		p.Fix = info.Fix(fix)
		p.Present = p.Present.Set(info.FIX)
	} else {
		p.Fix = info.FixBad
	}

	anyPRN := false
	for i := 0; i < MaxInUse; i++ {
		field := tok.Field(fields, 2+i)
		if len(field) == 0 {
			continue
		}
		prn, ok := tok.ParseUint(c, field, 10)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid PRN %q", field)
		}
		if prn != 0 {
			anyPRN = true
		}
		p.InUse[i] = prn
	}
	if anyPRN {
		sortPRNs(&p.InUse)
		p.Present = p.Present.Set(info.SATINUSE)
	} else {
		p.InUse = [MaxInUse]uint{}
	}

	if pdopField := tok.Field(fields, 14); len(pdopField) > 0 {
		v, ok := tok.ParseAbsFloat(c, pdopField)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid PDOP %q", pdopField)
		}
		p.PDOP = v
		p.Present = p.Present.Set(info.PDOP)
	}

	if hdopField := tok.Field(fields, 15); len(hdopField) > 0 {
		v, ok := tok.ParseAbsFloat(c, hdopField)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid HDOP %q", hdopField)
		}
		p.HDOP = v
		p.Present = p.Present.Set(info.HDOP)
	}

	if vdopField := tok.Field(fields, 16); len(vdopField) > 0 {
		v, ok := tok.ParseAbsFloat(c, vdopField)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid VDOP %q", vdopField)
		}
		p.VDOP = v
		p.Present = p.Present.Set(info.VDOP)
	}

	return p, nil
}

// sortPRNs sorts prns ascending, with zero ("empty slot") pushed past
// every real PRN - a stable partition by prn != 0 followed by an
// ascending sort, equivalent to nmealib's qsort-with-zero-bias
// comparator (spec §9).
func sortPRNs(prns *[MaxInUse]uint) {
	sort.Slice(prns[:], func(i, j int) bool {
		a, b := prns[i], prns[j]
		if a == 0 || b == 0 {
			return b == 0 && a != 0
		}
		return a < b
	})
}

// Generate appends the wire form of p to buf.
func Generate(p Packet, buf []byte) []byte {
	var f [fieldCount]string

	if p.Present.Has(info.SIG) {
		f[0] = string(p.Selection)
	}
	if p.Present.Has(info.FIX) {
		f[1] = fmt.Sprintf("%d", int(p.Fix))
	}

	satInUse := p.Present.Has(info.SATINUSE)
	for i := 0; i < MaxInUse; i++ {
		if satInUse && p.InUse[i] != 0 {
			f[2+i] = fmt.Sprintf("%d", p.InUse[i])
		}
	}

	if p.Present.Has(info.PDOP) {
		f[14] = fmt.Sprintf("%03.1f", p.PDOP)
	}
	if p.Present.Has(info.HDOP) {
		f[15] = fmt.Sprintf("%03.1f", p.HDOP)
	}
	if p.Present.Has(info.VDOP) {
		f[16] = fmt.Sprintf("%03.1f", p.VDOP)
	}

	return sentence.Render(buf, Prefix, f[:])
}
