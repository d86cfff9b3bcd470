package info

// Sanitise enforces the invariants of the closed field universe (spec
// §3): fields whose presence bit is unset are forced back to zero,
// missing UTC date/time is filled in from i.Clock, out-of-range
// enumerations fold to their "invalid"/"bad" value, signed quantities
// fold into their companion angle, angles wrap into their canonical
// range, and the in-use/in-view satellite bookkeeping is rebuilt from
// the slot contents rather than trusted as given.
//
// Grounded on original_source/src/info.c (nmea_INFO_sanitise).
func Sanitise(i *Info) {
	if !i.Present.Fields.Has(SMASK) {
		i.Present.Sentences = 0
	}

	if !i.Present.Fields.Has(UTCDATE) || !i.Present.Fields.Has(UTCTIME) {
		now := i.clockOrSystem().Now()
		if !i.Present.Fields.Has(UTCDATE) {
			i.UTC.Year, i.UTC.Month, i.UTC.Day = now.Year(), int(now.Month()), now.Day()
		}
		if !i.Present.Fields.Has(UTCTIME) {
			i.UTC.Hour, i.UTC.Minute, i.UTC.Second = now.Hour(), now.Minute(), now.Second()
			i.UTC.Hundredths = now.Nanosecond() / 10000000
		}
	}

	if !i.Present.Fields.Has(SIG) {
		i.Sig = SigInvalid
	} else if i.Sig < SigInvalid || i.Sig > SigSimulation {
		i.Sig = SigInvalid
	}

	if !i.Present.Fields.Has(FIX) {
		i.Fix = FixBad
	} else if i.Fix < FixBad || i.Fix > Fix3D {
		i.Fix = FixBad
	}

	if !i.Present.Fields.Has(PDOP) {
		i.PDOP = 0
	} else {
		i.PDOP = abs(i.PDOP)
	}
	if !i.Present.Fields.Has(HDOP) {
		i.HDOP = 0
	} else {
		i.HDOP = abs(i.HDOP)
	}
	if !i.Present.Fields.Has(VDOP) {
		i.VDOP = 0
	} else {
		i.VDOP = abs(i.VDOP)
	}

	if !i.Present.Fields.Has(LAT) {
		i.Lat = 0
	}
	if !i.Present.Fields.Has(LON) {
		i.Lon = 0
	}
	if !i.Present.Fields.Has(ELV) {
		i.Elv = 0
	}
	if !i.Present.Fields.Has(HEIGHT) {
		i.Height = 0
	}
	if !i.Present.Fields.Has(SPEED) {
		i.Speed = 0
	}
	if !i.Present.Fields.Has(TRACK) {
		i.Track = 0
	}
	if !i.Present.Fields.Has(MTRACK) {
		i.MTrack = 0
	}
	if !i.Present.Fields.Has(MAGVAR) {
		i.MagVar = 0
	} else {
		i.MagVar = abs(i.MagVar)
	}

	if !i.Present.Fields.Has(SATINUSECOUNT) {
		i.Sats.InUseCount = 0
	}
	if !i.Present.Fields.Has(SATINUSE) {
		i.Sats.InUse = [MaxSatellites]uint{}
	}
	if !i.Present.Fields.Has(SATINVIEWCOUNT) {
		i.Sats.InViewCount = 0
	}
	if !i.Present.Fields.Has(SATINVIEW) {
		i.Sats.InView = [MaxSatellites]Satellite{}
	}

	i.Lat, i.Lon = foldLatLon(i.Lat, i.Lon)

	if i.Speed < 0 {
		i.Speed = -i.Speed
		i.Track += 180
		i.MTrack += 180
	}

	i.Track = wrap360(i.Track)
	i.MTrack = wrap360(i.MTrack)
	i.MagVar = wrap360(i.MagVar)

	i.Sats.InUseCount = 0
	for _, prn := range i.Sats.InUse {
		if prn != 0 {
			i.Sats.InUseCount++
		}
	}

	i.Sats.InViewCount = 0
	for idx := range i.Sats.InView {
		sat := &i.Sats.InView[idx]
		if sat.PRN == 0 {
			continue
		}
		i.Sats.InViewCount++
		sat.Elevation = foldElevation(sat.Elevation)
		sat.Azimuth = wrap360(sat.Azimuth)
		if sat.SNR < 0 {
			sat.SNR = 0
		}
		if sat.SNR > 99 {
			sat.SNR = 99
		}
	}

	// Prune in-use PRNs that don't correspond to any in-view satellite.
	for idx, prn := range i.Sats.InUse {
		if prn == 0 {
			continue
		}
		found := false
		for _, sat := range i.Sats.InView {
			if sat.PRN == prn {
				found = true
				break
			}
		}
		if !found {
			i.Sats.InUse[idx] = 0
			if i.Sats.InUseCount > 0 {
				i.Sats.InUseCount--
			}
		}
	}
}

// foldLatLon forces lat into [-9000, 9000] NDEG and lon into
// [-18000, 18000], folding one into the other the way a position wraps
// around a pole (spec §4.6).
func foldLatLon(lat, lon float64) (float64, float64) {
	for lat < -18000 {
		lat += 36000
	}
	for lat > 18000 {
		lat -= 36000
	}

	if lat > 9000 {
		lat = 18000 - lat
		lon += 18000
	} else if lat < -9000 {
		lat = -18000 - lat
		lon += 18000
	}

	for lon < -18000 {
		lon += 36000
	}
	for lon > 18000 {
		lon -= 36000
	}

	return lat, lon
}

// foldElevation forces an elevation into [0, 90] degrees the way a
// reading past the zenith wraps back down (spec §4.6).
func foldElevation(elv float64) float64 {
	for elv < -180 {
		elv += 360
	}
	for elv > 180 {
		elv -= 360
	}

	if elv > 90 {
		elv = 180 - elv
	} else if elv < -90 {
		elv = -180 - elv
	}

	if elv < 0 {
		elv = -elv
	}

	return elv
}

func wrap360(v float64) float64 {
	for v < 0 {
		v += 360
	}
	for v >= 360 {
		v -= 360
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
