// Package gsv decodes and encodes GPGSV sentences: the satellites
// currently in view, sent as a fan-out of several sentences since only
// four satellites fit per sentence.
//
// Grounded on original_source/src/gpgsv.c (nmeaGPGSVParse,
// nmeaGPGSVToInfo, nmeaGPGSVFromInfo, nmeaGPGSVGenerate).
package gsv

import (
	"fmt"

	"github.com/goblimey/go-nmea/ctx"
	"github.com/goblimey/go-nmea/info"
	"github.com/goblimey/go-nmea/sentence"
	"github.com/goblimey/go-nmea/tok"
	"github.com/goblimey/go-nmea/validate"
)

// Prefix is the 5-character sentence prefix this package handles.
const Prefix = "GPGSV"

// MaxSatsPerSentence is the number of satellite blocks a GSV sentence
// carries (spec §4.4: "exactly 4 satellite blocks per sentence").
const MaxSatsPerSentence = 4

// MaxSentences is the largest legal sentence count: ceil(72/4).
const MaxSentences = (info.MaxSatellites + MaxSatsPerSentence - 1) / MaxSatsPerSentence

// Packet is the decoded content of one GPGSV sentence: one window of up
// to four satellites out of the total currently in view.
type Packet struct {
	Present info.Presence

	Sentences  int // total sentences in this fan-out
	Sentence   int // 1-based index of this sentence within the fan-out
	Satellites int // total satellites in view, across all sentences

	Sats [MaxSatsPerSentence]info.Satellite
}

// SentencesFor returns the number of GSV sentences needed to carry the
// given number of satellites in view: ceil(satellites/4), or 1 when
// satellites is zero (spec §4.5: "GSV emits ceil(inViewCount/4) sentences (≥1)").
func SentencesFor(satellites int) int {
	if satellites <= 0 {
		return 1
	}
	return (satellites + MaxSatsPerSentence - 1) / MaxSatsPerSentence
}

// Parse decodes a GPGSV sentence body.
func Parse(c *ctx.Context, body []byte) (Packet, error) {
	rest, ok := sentence.StripPrefix(body, Prefix)
	if !ok {
		return Packet{}, fmt.Errorf("%s parse error: missing prefix", Prefix)
	}

	fields := tok.Fields(rest, ',')

	sentencesField := tok.Field(fields, 0)
	sentenceField := tok.Field(fields, 1)
	satellitesField := tok.Field(fields, 2)
	if len(sentencesField) == 0 || len(sentenceField) == 0 || len(satellitesField) == 0 {
		return Packet{}, validate.Errorf(Prefix, "sentences, sentence and satellites fields are mandatory")
	}

	var p Packet

	sentences, ok := tok.ParseInt(c, sentencesField, 10)
	if !ok {
		return Packet{}, validate.Errorf(Prefix, "invalid sentences count %q", sentencesField)
	}
	sentenceIdx, ok := tok.ParseInt(c, sentenceField, 10)
	if !ok {
		return Packet{}, validate.Errorf(Prefix, "invalid sentence index %q", sentenceField)
	}
	satellites, ok := tok.ParseInt(c, satellitesField, 10)
	if !ok {
		return Packet{}, validate.Errorf(Prefix, "invalid satellite count %q", satellitesField)
	}

	if satellites < 0 || satellites > info.MaxSatellites {
		return Packet{}, validate.Errorf(Prefix, "can't handle %d satellites (maximum is %d)", satellites, info.MaxSatellites)
	}
	if sentences < 1 || sentences > MaxSentences {
		return Packet{}, validate.Errorf(Prefix, "sentences count %d is invalid", sentences)
	}
	if sentences != SentencesFor(satellites) {
		return Packet{}, validate.Errorf(Prefix, "sentences count %d does not correspond to satellite count %d", sentences, satellites)
	}
	if sentenceIdx < 1 || sentenceIdx > sentences {
		return Packet{}, validate.Errorf(Prefix, "sentence index %d is beyond the number of sentences (%d)", sentenceIdx, sentences)
	}

	p.Sentences, p.Sentence, p.Satellites = sentences, sentenceIdx, satellites

	// Each satellite occupies 4 fields: prn, elevation, azimuth, snr.
	satCount := 0
	for i := 0; i < MaxSatsPerSentence; i++ {
		base := 3 + 4*i
		prnField := tok.Field(fields, base)
		if len(prnField) == 0 {
			continue
		}
		prn, ok := tok.ParseUint(c, prnField, 10)
		if !ok {
			return Packet{}, validate.Errorf(Prefix, "invalid PRN %q", prnField)
		}
		if prn == 0 {
			continue
		}

		var sat info.Satellite
		sat.PRN = prn
		if f := tok.Field(fields, base+1); len(f) > 0 {
			if v, ok := tok.ParseFloat(c, f); ok {
				sat.Elevation = v
			}
		}
		if f := tok.Field(fields, base+2); len(f) > 0 {
			if v, ok := tok.ParseFloat(c, f); ok {
				sat.Azimuth = v
			}
		}
		if f := tok.Field(fields, base+3); len(f) > 0 {
			if v, ok := tok.ParseFloat(c, f); ok {
				sat.SNR = v
			}
		}
		p.Sats[i] = sat
		satCount++
	}

	if satCount == 0 {
		return Packet{}, validate.Errorf(Prefix, "no satellites decoded")
	}

	p.Present = p.Present.Set(info.SATINVIEWCOUNT).Set(info.SATINVIEW)
	return p, nil
}

// Generate appends the wire form of p to buf.
func Generate(p Packet, buf []byte) []byte {
	fields := make([]string, 0, 3+4*MaxSatsPerSentence)

	if p.Present.Has(info.SATINVIEWCOUNT) {
		fields = append(fields, fmt.Sprintf("%d", p.Sentences), fmt.Sprintf("%d", p.Sentence), fmt.Sprintf("%d", p.Satellites))
	} else {
		fields = append(fields, "", "", "")
	}

	if p.Present.Has(info.SATINVIEW) {
		for i := 0; i < MaxSatsPerSentence; i++ {
			sat := p.Sats[i]
			if sat.PRN == 0 {
				fields = append(fields, "", "", "", "")
				continue
			}
			fields = append(fields,
				fmt.Sprintf("%d", sat.PRN),
				fmt.Sprintf("%d", int(sat.Elevation)),
				fmt.Sprintf("%d", int(sat.Azimuth)),
				fmt.Sprintf("%d", int(sat.SNR)))
		}
	} else {
		for i := 0; i < MaxSatsPerSentence; i++ {
			fields = append(fields, "", "", "", "")
		}
	}

	return sentence.Render(buf, Prefix, fields)
}
