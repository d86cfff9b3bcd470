package nmea

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goblimey/go-nmea/ctx"
	"github.com/goblimey/go-nmea/info"
)

func TestSentenceKind(t *testing.T) {
	var testData = []struct {
		Comment string
		Body    string
		Want    Kind
	}{
		{"GGA with leading $", "$GPGGA,1,2,3", GGA},
		{"GSA without leading $", "GPGSA,1,2,3", GSA},
		{"GSV", "GPGSV,1,2,3", GSV},
		{"RMC", "GPRMC,1,2,3", RMC},
		{"VTG", "GPVTG,1,2,3", VTG},
		{"unrecognised prefix", "GPXYZ,1,2,3", Unknown},
		{"too short to have a prefix", "GP", Unknown},
	}
	for _, td := range testData {
		got := SentenceKind([]byte(td.Body))
		if got != td.Want {
			t.Errorf("%s: want %v, got %v", td.Comment, td.Want, got)
		}
	}
}

func TestSentenceToInfoMergesAFullEpoch(t *testing.T) {
	var i info.Info

	sentences := []string{
		"GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,",
		"GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1",
		"GPGSV,2,1,07,07,79,048,42,02,51,062,43,26,36,256,42,27,27,138,42",
		"GPGSV,2,2,07,09,10,111,30,,,,,,,,",
		"GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W",
		"GPVTG,054.7,T,034.4,M,005.5,N,010.2,K",
	}

	for _, s := range sentences {
		if err := SentenceToInfo(ctx.Background(), []byte(s), &i); err != nil {
			t.Fatalf("unexpected error merging %q: %v", s, err)
		}
	}

	info.Sanitise(&i)

	if i.Sig != info.SigFix {
		t.Errorf("want SigFix after GGA+GSA+RMC merge, got %d", i.Sig)
	}
	if i.Fix != info.Fix3D {
		t.Errorf("want Fix3D, got %d", i.Fix)
	}
	if i.Sats.InViewCount != 5 {
		t.Errorf("want 5 satellites in view across both GSV sentences, got %d", i.Sats.InViewCount)
	}
	if i.Sats.InView[4].PRN != 9 {
		t.Errorf("want the second GSV sentence's satellite in slot 4, got %+v", i.Sats.InView[4])
	}
	if i.GSVInProgress {
		t.Error("want GSVInProgress false once the final GSV sentence has been merged")
	}
	if i.Track != 54.7 {
		t.Errorf("want track 54.7 from the later VTG sentence, got %v", i.Track)
	}
}

func TestSentenceToInfoIgnoresUnknownSentences(t *testing.T) {
	var i info.Info
	if err := SentenceToInfo(ctx.Background(), []byte("GPXYZ,1,2,3"), &i); err != nil {
		t.Errorf("want unknown sentences ignored without error, got %v", err)
	}
}

func TestSentenceFromInfoRoundTripsEachKind(t *testing.T) {
	var i info.Info
	i.Present.Fields = i.Present.Fields.Set(info.UTCTIME).Set(info.LAT).Set(info.LON).
		Set(info.SIG).Set(info.SATINUSECOUNT).Set(info.HDOP).Set(info.ELV).Set(info.FIX).
		Set(info.SATINUSE).Set(info.PDOP).Set(info.VDOP).Set(info.SATINVIEWCOUNT).
		Set(info.SATINVIEW).Set(info.SPEED).Set(info.TRACK).Set(info.MTRACK).Set(info.UTCDATE).Set(info.MAGVAR)
	i.UTC = info.Time{Hour: 12, Minute: 35, Second: 19, Year: 1994, Month: 3, Day: 23}
	i.Lat = 48.117
	i.Lon = 11.517
	i.Sig = info.SigFix
	i.Fix = info.Fix3D
	i.Sats.InUseCount = 1
	i.Sats.InUse[0] = 4
	i.HDOP = 0.9
	i.Elv = 545.4
	i.PDOP = 2.5
	i.VDOP = 2.1
	i.Sats.InViewCount = 1
	i.Sats.InView[0] = info.Satellite{PRN: 7, Elevation: 79, Azimuth: 48, SNR: 42}
	i.Speed = 138.9 // 75 knots: survives both RMC's knots and VTG's kph at one decimal
	i.Track = 54.7
	i.MTrack = 34.4
	i.MagVar = 3.1

	for _, kind := range []Kind{GGA, GSA, GSV, RMC, VTG} {
		out, err := SentenceFromInfo(&i, kind, 0, nil)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", kind, err)
		}
		if SentenceKind(out) != kind {
			t.Errorf("want generated sentence to be recognised as %v, got %v (%q)", kind, SentenceKind(out), out)
		}

		var got info.Info
		if err := SentenceToInfo(ctx.Background(), out, &got); err != nil {
			t.Fatalf("%v: unexpected error re-parsing %q: %v", kind, out, err)
		}

		want, gotSubset := kindSubset(kind, &i), kindSubset(kind, &got)
		if diff := cmp.Diff(want, gotSubset); diff != "" {
			t.Errorf("%v: round trip through %q did not recover the original fields (-want +got):\n%s", kind, out, diff)
		}
	}
}

// kindSubset extracts the fields kind's sentence actually carries, so a
// round trip can be compared without tripping over fields the sentence
// never touches.
func kindSubset(kind Kind, i *info.Info) interface{} {
	switch kind {
	case GGA:
		return struct {
			UTC        info.Time
			Lat, Lon   float64
			Sig        info.Sig
			InUseCount int
			HDOP, Elv  float64
		}{timeOfDay(i.UTC), i.Lat, i.Lon, i.Sig, i.Sats.InUseCount, i.HDOP, i.Elv}

	case GSA:
		return struct {
			Sig              info.Sig
			Fix              info.Fix
			InUse            [info.MaxSatellites]uint
			PDOP, HDOP, VDOP float64
		}{i.Sig, i.Fix, i.Sats.InUse, i.PDOP, i.HDOP, i.VDOP}

	case GSV:
		return struct {
			InViewCount int
			InView      [info.MaxSatellites]info.Satellite
		}{i.Sats.InViewCount, i.Sats.InView}

	case RMC:
		return struct {
			UTC          info.Time
			Sig          info.Sig
			Lat, Lon     float64
			Speed, Track float64
		}{i.UTC, i.Sig, i.Lat, i.Lon, i.Speed, i.Track}

	case VTG:
		return struct {
			Track, MTrack, Speed float64
		}{i.Track, i.MTrack, i.Speed}

	default:
		return nil
	}
}

// timeOfDay keeps only the time-of-day part of t, since GGA carries no
// date.
func timeOfDay(t info.Time) info.Time {
	return info.Time{Hour: t.Hour, Minute: t.Minute, Second: t.Second, Hundredths: t.Hundredths}
}

func TestSentenceFromInfoRejectsGSVIndexOutOfRange(t *testing.T) {
	var i info.Info
	i.Present.Fields = i.Present.Fields.Set(info.SATINVIEWCOUNT)
	i.Sats.InViewCount = 1

	if _, err := SentenceFromInfo(&i, GSV, 5, nil); err == nil {
		t.Fatal("want an error for a GSV index beyond the sentence count")
	}
}

func TestSentenceFromInfoRejectsUnsupportedKind(t *testing.T) {
	var i info.Info
	if _, err := SentenceFromInfo(&i, Unknown, 0, nil); err == nil {
		t.Fatal("want an error for an unsupported kind")
	}
}
