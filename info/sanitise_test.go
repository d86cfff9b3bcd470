package info

import (
	"testing"
	"time"

	"github.com/goblimey/go-nmea/clock"
)

func TestSanitiseFillsMissingDateTime(t *testing.T) {
	stopped := clock.NewStoppedClock(2026, time.July, 31, 12, 30, 45, 0, time.UTC)

	var i Info
	i.Clock = stopped

	Sanitise(&i)

	if i.UTC.Year != 2026 || i.UTC.Month != 7 || i.UTC.Day != 31 {
		t.Errorf("want the clock's date, got %+v", i.UTC)
	}
	if i.UTC.Hour != 12 || i.UTC.Minute != 30 || i.UTC.Second != 45 {
		t.Errorf("want the clock's time, got %+v", i.UTC)
	}
}

func TestSanitiseLeavesPresentDateTime(t *testing.T) {
	var i Info
	i.Clock = clock.NewStoppedClock(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	i.UTC = Time{Year: 2026, Month: 7, Day: 31, Hour: 1, Minute: 2, Second: 3}
	i.Present.Fields = i.Present.Fields.Set(UTCDATE).Set(UTCTIME)

	Sanitise(&i)

	if i.UTC.Year != 2026 || i.UTC.Hour != 1 {
		t.Errorf("Sanitise should not overwrite present date/time fields, got %+v", i.UTC)
	}
}

func TestSanitiseFoldsSigAndFix(t *testing.T) {
	var i Info
	i.Clock = clock.NewSystemClock()
	i.Sig = Sig(99)
	i.Present.Fields = i.Present.Fields.Set(SIG)
	i.Fix = Fix(99)
	i.Present.Fields = i.Present.Fields.Set(FIX)

	Sanitise(&i)

	if i.Sig != SigInvalid {
		t.Errorf("want SigInvalid for an out-of-range sig, got %d", i.Sig)
	}
	if i.Fix != FixBad {
		t.Errorf("want FixBad for an out-of-range fix, got %d", i.Fix)
	}
}

func TestSanitiseAbsorbsNegativeSpeedIntoTrack(t *testing.T) {
	var i Info
	i.Clock = clock.NewSystemClock()
	i.Speed = -10
	i.Track = 90
	i.Present.Fields = i.Present.Fields.Set(SPEED).Set(TRACK)

	Sanitise(&i)

	if i.Speed != 10 {
		t.Errorf("want speed 10, got %v", i.Speed)
	}
	if i.Track != 270 {
		t.Errorf("want track 270 (90+180), got %v", i.Track)
	}
}

func TestSanitiseFoldsLatPastPole(t *testing.T) {
	var i Info
	i.Clock = clock.NewSystemClock()
	i.Lat = 9500 // past the 9000 (90 degree) pole, in NDEG-ish units
	i.Lon = 0
	i.Present.Fields = i.Present.Fields.Set(LAT).Set(LON)

	Sanitise(&i)

	if i.Lat != 8500 {
		t.Errorf("want lat folded to 8500, got %v", i.Lat)
	}
	if i.Lon != 18000 {
		t.Errorf("want lon flipped by 18000, got %v", i.Lon)
	}
}

func TestSanitiseRebuildsSatelliteCounts(t *testing.T) {
	var i Info
	i.Clock = clock.NewSystemClock()
	i.Sats.InView[0] = Satellite{PRN: 1, Elevation: 10}
	i.Sats.InView[1] = Satellite{PRN: 2, Elevation: 20}
	i.Sats.InUse[0] = 1
	i.Sats.InUse[1] = 99 // not in view - should be pruned
	i.Present.Fields = i.Present.Fields.Set(SATINVIEW).Set(SATINUSE)

	Sanitise(&i)

	if i.Sats.InViewCount != 2 {
		t.Errorf("want InViewCount 2, got %d", i.Sats.InViewCount)
	}
	if i.Sats.InUse[1] != 0 {
		t.Errorf("want the unmatched in-use PRN pruned, got %d", i.Sats.InUse[1])
	}
	if i.Sats.InUseCount != 1 {
		t.Errorf("want InUseCount 1 after pruning, got %d", i.Sats.InUseCount)
	}
}

func TestSanitiseClearsAbsentSatelliteFields(t *testing.T) {
	var i Info
	i.Clock = clock.NewSystemClock()
	i.Sats.InView[0] = Satellite{PRN: 1}
	i.Sats.InUse[0] = 1
	// Present bits deliberately not set for either field.

	Sanitise(&i)

	if i.Sats.InViewCount != 0 || i.Sats.InUseCount != 0 {
		t.Errorf("want both counts zero when neither presence bit is set, got view=%d use=%d",
			i.Sats.InViewCount, i.Sats.InUseCount)
	}
}
