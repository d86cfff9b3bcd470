package info

import "math"

// dopToMetersFactor is nmealib's standard DOP-to-meters UERE scaling
// factor (nmea_dop2meters / nmea_meters2dop in original_source/src/gmath.c).
const dopToMetersFactor = 5.0

// ToMetric converts i's position fields from NDEG (DDMM.MMMM) to decimal
// degrees and its DOP fields from dimensionless DOP to meters, in place.
// Calling it on an Info that is already metric is a no-op other than
// flipping the flag back to the same value.
//
// Grounded on original_source/src/info.c (nmea_INFO_unit_conversion).
func ToMetric(i *Info) {
	if i.Metric {
		return
	}

	if i.Present.Fields.Has(PDOP) {
		i.PDOP = dopToMeters(i.PDOP)
	}
	if i.Present.Fields.Has(HDOP) {
		i.HDOP = dopToMeters(i.HDOP)
	}
	if i.Present.Fields.Has(VDOP) {
		i.VDOP = dopToMeters(i.VDOP)
	}
	if i.Present.Fields.Has(LAT) {
		i.Lat = ndegToDegree(i.Lat)
	}
	if i.Present.Fields.Has(LON) {
		i.Lon = ndegToDegree(i.Lon)
	}

	i.Metric = true
}

// ToNDEG converts i back from metric (decimal degrees, DOP in meters) to
// NDEG/dimensionless DOP, the inverse of ToMetric. A no-op if i is
// already in NDEG form.
func ToNDEG(i *Info) {
	if !i.Metric {
		return
	}

	if i.Present.Fields.Has(PDOP) {
		i.PDOP = metersToDOP(i.PDOP)
	}
	if i.Present.Fields.Has(HDOP) {
		i.HDOP = metersToDOP(i.HDOP)
	}
	if i.Present.Fields.Has(VDOP) {
		i.VDOP = metersToDOP(i.VDOP)
	}
	if i.Present.Fields.Has(LAT) {
		i.Lat = degreeToNDEG(i.Lat)
	}
	if i.Present.Fields.Has(LON) {
		i.Lon = degreeToNDEG(i.Lon)
	}

	i.Metric = false
}

func dopToMeters(dop float64) float64 { return dop * dopToMetersFactor }
func metersToDOP(meters float64) float64 { return meters / dopToMetersFactor }

func ndegToDegree(val float64) float64 {
	deg := math.Trunc(val / 100)
	minutes := val - deg*100
	return deg + minutes/60
}

func degreeToNDEG(val float64) float64 {
	intPart, fraction := math.Modf(val)
	return intPart*100 + fraction*60
}
