package info

import "testing"

func TestToMetricAndBack(t *testing.T) {
	var i Info
	i.Lat = 4807.038  // NDEG: 48 degrees, 07.038 minutes
	i.Lon = 1131.000
	i.PDOP = 2
	i.Present.Fields = i.Present.Fields.Set(LAT).Set(LON).Set(PDOP)

	ToMetric(&i)

	if !i.Metric {
		t.Fatal("want Metric true after ToMetric")
	}
	wantLat := 48 + 7.038/60
	if diff := i.Lat - wantLat; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("want lat %v, got %v", wantLat, i.Lat)
	}
	if i.PDOP != 10 {
		t.Errorf("want PDOP 10 (2*5), got %v", i.PDOP)
	}

	ToNDEG(&i)
	if i.Metric {
		t.Fatal("want Metric false after ToNDEG")
	}
	if diff := i.Lat - 4807.038; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("want lat restored to 4807.038, got %v", i.Lat)
	}
}

func TestToMetricIsIdempotent(t *testing.T) {
	var i Info
	i.Lat = 4807.038
	i.Present.Fields = i.Present.Fields.Set(LAT)

	ToMetric(&i)
	afterFirst := i.Lat
	ToMetric(&i)
	if i.Lat != afterFirst {
		t.Errorf("calling ToMetric twice changed the value: %v then %v", afterFirst, i.Lat)
	}
}
