// Package info holds the aggregate navigation record (Info) that the
// dispatcher in package nmea merges decoded sentence packets into, plus
// the presence/sentence bit masks, the merge rules, the sanitiser that
// enforces the aggregate's invariants, and the NDEG/metric unit
// conversion.
//
// Grounded on original_source/src/info.c (nmeaInfo, nmeaInfoClear,
// nmeaInfoSanitise, nmeaInfoUnitConversion) and, for the general shape of
// an aggregate record merged piecemeal from several wire messages, on the
// teacher's rtcm/header package.
package info

import "github.com/goblimey/go-nmea/clock"

// Presence is a bit-mask over the field universe described in spec §3: a
// field is meaningful in an Info (or a sentence Packet) iff its bit is
// set. Reading a field whose bit is unset is undefined; Sanitise forces
// such fields back to their zero value so "undefined" in practice reads
// as zero, except that Fix becomes FixBad and a missing UTC date or time
// is filled in from the clock.
type Presence uint32

// Presence bits, one per field in the closed universe from spec §3.
const (
	SMASK Presence = 1 << iota
	UTCDATE
	UTCTIME
	SIG
	FIX
	PDOP
	HDOP
	VDOP
	LAT
	LON
	ELV
	HEIGHT
	SPEED
	TRACK
	MTRACK
	MAGVAR
	SATINUSECOUNT
	SATINUSE
	SATINVIEWCOUNT
	SATINVIEW
	DGPSAGE
	DGPSSID
)

// Has reports whether all bits of want are set in p.
func (p Presence) Has(want Presence) bool { return p&want == want }

// Set returns p with bits added.
func (p Presence) Set(bits Presence) Presence { return p | bits }

// Clear returns p with bits removed.
func (p Presence) Clear(bits Presence) Presence { return p &^ bits }

// SentenceMask is a bit-mask over the sentence kinds that have
// contributed to an Info.
type SentenceMask uint8

// SentenceMask bits.
const (
	GPGGA SentenceMask = 1 << iota
	GPGSA
	GPGSV
	GPRMC
	GPVTG
)

// Has reports whether all bits of want are set in m.
func (m SentenceMask) Has(want SentenceMask) bool { return m&want == want }

// Set returns m with bits added.
func (m SentenceMask) Set(bits SentenceMask) SentenceMask { return m | bits }

// AllKinds lists every supported sentence kind's mask bit, in the
// canonical generation order from spec §4.5: GGA, GSA, GSV, RMC, VTG.
var AllKinds = []SentenceMask{GPGGA, GPGSA, GPGSV, GPRMC, GPVTG}

// Time is a calendar date and time of day, stored as full fields (no
// 2-digit year). Matches spec §3's Time struct.
type Time struct {
	Year       int // full calendar year, e.g. 2026
	Month      int // 1-12
	Day        int // 1-31
	Hour       int // 0-23
	Minute     int // 0-59
	Second     int // 0-60 (60 allows a leap second)
	Hundredths int // 0-99
}

// ExpandYear maps a 2-digit wire year to a full calendar year: years
// below 90 are assumed to be in the 21st century, the rest the 20th, per
// spec §3.
func ExpandYear(y int) int {
	if y < 90 {
		return 2000 + y
	}
	return 1900 + y
}

// Sig is the GNSS signal quality/fix-method enumeration from spec §3.
type Sig int

// Sig values and their GGA/RMC wire-character encodings.
const (
	SigInvalid Sig = iota
	SigFix
	SigDifferential
	SigSensitive
	SigRTKIN
	SigFloatRTK
	SigEstimated
	SigManual
	SigSimulation
)

var sigChars = [...]byte{'N', 'A', 'D', 'P', 'R', 'F', 'E', 'M', 'S'}

// Char returns the wire character for s, or 'N' if s is out of range.
func (s Sig) Char() byte {
	if s < SigInvalid || int(s) >= len(sigChars) {
		return 'N'
	}
	return sigChars[s]
}

// SigFromChar maps a wire character to a Sig, folding unknown characters
// to SigInvalid as spec §3 requires.
func SigFromChar(c byte) Sig {
	c = upper(c)
	for i, ch := range sigChars {
		if ch == c {
			return Sig(i)
		}
	}
	return SigInvalid
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Fix is the navigation solution dimensionality from spec §3.
type Fix int

// Fix values.
const (
	FixBad Fix = iota + 1
	Fix2D
	Fix3D
)

// MaxSatellites bounds the satellite arrays, per spec §3 (N = 72).
const MaxSatellites = 72

// Satellite describes one GNSS satellite, per spec §3. PRN zero means
// "empty slot".
type Satellite struct {
	PRN       uint
	Elevation float64 // degrees, 0-90
	Azimuth   float64 // degrees, 0-359
	SNR       float64 // dB, 0-99
}

// Satellites is the satellite-related block of an Info, per spec §3.
type Satellites struct {
	InUseCount   int
	InUse        [MaxSatellites]uint
	InViewCount  int
	InView       [MaxSatellites]Satellite
}

// Info is the aggregate navigation record that sentence packets are
// merged into. Lat/Lon are stored in NDEG (DDMM.mmmm, signed N/E
// positive) while Metric is false, and in decimal degrees with DOPs
// expressed as meters while Metric is true; see ToMetric and ToNDEG.
type Info struct {
	Present SentenceMaskAndPresence

	UTC   Time
	Sig   Sig
	Fix   Fix
	PDOP  float64
	HDOP  float64
	VDOP  float64
	Lat   float64
	Lon   float64
	Elv   float64
	Height float64
	Speed  float64 // kph
	Track  float64 // degrees true
	MTrack float64 // degrees magnetic
	MagVar float64 // degrees

	DGPSAge float64
	DGPSSid int

	Sats Satellites

	Metric        bool
	GSVInProgress bool

	// Clock supplies "now" for Sanitise's missing-date/time fill rule.
	// Defaults to clock.NewSystemClock() the first time it's needed; set
	// it explicitly (e.g. to a clock.StoppedClock) for deterministic
	// tests.
	Clock clock.Clock
}

// SentenceMaskAndPresence bundles the two bit-masks an Info carries: which
// fields are meaningful (Fields) and which sentence kinds contributed
// (Sentences). Kept as one struct, rather than two loose fields on Info,
// so that Clear can reset both with one assignment.
type SentenceMaskAndPresence struct {
	Fields    Presence
	Sentences SentenceMask
}

// Clear resets i to the empty state: no fields present, no sentences
// seen, Metric false (NDEG/dimensionless representation), and detaches
// any configured Clock.
func Clear(i *Info) {
	*i = Info{}
}

func (i *Info) clockOrSystem() clock.Clock {
	if i.Clock == nil {
		i.Clock = clock.NewSystemClock()
	}
	return i.Clock
}
