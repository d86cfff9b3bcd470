// Package sentence holds the helpers shared by the five per-kind parser/
// generator packages (gga, gsa, gsv, rmc, vtg): splitting the prefix off
// a frame body, and decoding/encoding the HHMMSS.hh and DDMMYY sub-fields
// that several sentences embed as a single comma-delimited field.
//
// Grounded on original_source/src/parse.c (nmeaTIMEparseTime,
// nmeaTIMEparseDate) for the numeric decomposition, generalized from
// "decompose the rounded millisecond count" into a straightforward digit
// split since Go gives us proper string/float handling that the C code's
// va_arg-based scanner didn't.
package sentence

import (
	"fmt"
	"math"

	"github.com/goblimey/go-nmea/info"
	"github.com/goblimey/go-nmea/tok"
)

// StripPrefix checks that body starts with "$PPPPP," or "PPPPP," (where
// PPPPP is the 5-character sentence prefix) and returns the remainder,
// the comma-separated field list. ok is false if the prefix doesn't
// match, in which case the caller must not consult the returned slice.
func StripPrefix(body []byte, prefix string) (rest []byte, ok bool) {
	b := body
	if len(b) > 0 && b[0] == '$' {
		b = b[1:]
	}
	if len(b) < len(prefix)+1 || string(b[:len(prefix)]) != prefix || b[len(prefix)] != ',' {
		return nil, false
	}
	return b[len(prefix)+1:], true
}

// ParseTimeField decodes a HHMMSS[.h[h]] numeric field into a Time's
// Hour/Minute/Second/Hundredths (Day/Month/Year are left zero).
func ParseTimeField(raw float64) (t info.Time) {
	// Mirrors nmeaTIMEparseTime: round to the nearest millisecond, then
	// peel off two digits at a time.
	milliseconds := int64(math.Abs(raw)*1000 + 0.5)

	t.Hour = int((milliseconds / 10000000) % 100)
	t.Minute = int((milliseconds / 100000) % 100)
	t.Second = int((milliseconds / 1000) % 100)
	t.Hundredths = int((milliseconds / 10) % 100)

	return t
}

// ParseDateField decodes a DDMMYY field and fills in t's Day/Month/Year
// (the year expanded to a full calendar year via info.ExpandYear).
func ParseDateField(raw int, t *info.Time) {
	t.Day = (raw / 10000) % 100
	t.Month = (raw / 100) % 100
	t.Year = info.ExpandYear(raw % 100)
}

// FormatTimeField renders a Time as the HHMMSS.hh field nmealib's
// generators use.
func FormatTimeField(t info.Time) string {
	return fmt.Sprintf("%02d%02d%02d.%02d", t.Hour, t.Minute, t.Second, t.Hundredths)
}

// FormatDateField renders a Time as the DDMMYY field nmealib's
// generators use: the year folds back to its 2-digit wire form.
func FormatDateField(t info.Time) string {
	return fmt.Sprintf("%02d%02d%02d", t.Day, t.Month, t.Year%100)
}

// Render assembles "$PREFIX,f0,f1,...,fn*HH\r\n" and appends it to buf,
// the way every sentence generator in package sentence/* builds its
// output: a fixed comma-separated skeleton with empty fields standing in
// for anything whose presence bit was unset, per spec §4.4.
func Render(buf []byte, prefix string, fields []string) []byte {
	start := len(buf)
	buf = append(buf, '$')
	buf = append(buf, prefix...)
	for _, field := range fields {
		buf = append(buf, ',')
		buf = append(buf, field...)
	}
	body := buf[start+1:]
	return tok.AppendChecksum(buf, body)
}
