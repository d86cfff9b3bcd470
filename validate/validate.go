// Package validate holds the pure, side-effect-free predicates the
// sentence parsers use to check a decoded field's range or enumeration
// before it is trusted: valid characters, time/date ranges, the N/S and
// E/W hemisphere letters, the Fix and Sig enumerations and the mode
// letter used by RMC/VTG in NMEA 2.3+.
//
// Grounded on original_source/src/validate.c (nmeaValidate*); the C
// source's free-standing InvalidNMEACharacter diagnostic struct is
// flattened here into a bool return plus a reason string, since nothing
// in this module needs to hand the caller a pointer into a static table.
package validate

import "fmt"

// Char reports whether c is an NMEA-legal sentence character: printable
// ASCII (32-126) minus the characters that the wire format reserves for
// framing ('$', '*') or that nmealib additionally excludes ('!', '\\',
// '^', '~').
func Char(c byte) bool {
	if c < 32 || c > 126 {
		return false
	}
	switch c {
	case '$', '*', '!', '\\', '^', '~':
		return false
	default:
		return true
	}
}

// CharReason is like Char but also returns a human-readable reason for a
// rejected character, for use in trace/error messages.
func CharReason(c byte) (ok bool, reason string) {
	if c < 32 || c > 126 {
		return false, "non-ascii character"
	}
	switch c {
	case '$':
		return false, "sentence delimiter"
	case '*':
		return false, "checksum field delimiter"
	case '!':
		return false, "exclamation mark"
	case '\\':
		return false, "backslash"
	case '^':
		return false, "power"
	case '~':
		return false, "tilde"
	default:
		return true, ""
	}
}

// Time reports whether the given hour/minute/second/hundredths form a
// valid time-of-day: hour in [0,23], minute in [0,59], second in [0,60]
// (60 allows a leap second), hundredths in [0,99].
func Time(hour, minute, second, hundredths int) bool {
	return hour >= 0 && hour <= 23 &&
		minute >= 0 && minute <= 59 &&
		second >= 0 && second <= 60 &&
		hundredths >= 0 && hundredths <= 99
}

// Date reports whether the given full calendar year/month/day form a
// valid date: year in [1990,2089], month in [1,12], day in [1,31].
func Date(year, month, day int) bool {
	return year >= 1990 && year <= 2089 &&
		month >= 1 && month <= 12 &&
		day >= 1 && day <= 31
}

// NS upper-cases c and reports whether it is 'N' or 'S'.
func NS(c byte) (upper byte, ok bool) {
	u := toUpper(c)
	return u, u == 'N' || u == 'S'
}

// EW upper-cases c and reports whether it is 'E' or 'W'.
func EW(c byte) (upper byte, ok bool) {
	u := toUpper(c)
	return u, u == 'E' || u == 'W'
}

// Fix reports whether f is a valid Fix enumerant (Bad=1..Fix3D=3).
func Fix(f int) bool {
	return f >= 1 && f <= 3
}

// Sig reports whether s is a valid Sig enumerant (Invalid=0..Simulation=8).
func Sig(s int) bool {
	return s >= 0 && s <= 8
}

// Mode upper-cases c and reports whether it is one of the NMEA 2.3+ mode
// letters: N, A, D, P, R, F, E, M, S.
func Mode(c byte) (upper byte, ok bool) {
	u := toUpper(c)
	switch u {
	case 'N', 'A', 'D', 'P', 'R', 'F', 'E', 'M', 'S':
		return u, true
	default:
		return u, false
	}
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Errorf is a small helper the sentence parsers use to build a
// consistent "<prefix> parse error: ..." message, matching the style of
// nmealib's own error strings (e.g. "$GPGGA parse error: invalid time").
func Errorf(prefix, format string, args ...interface{}) error {
	return fmt.Errorf("%s parse error: %s", prefix, fmt.Sprintf(format, args...))
}
