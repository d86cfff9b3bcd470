package info

// Merge folds a decoded sentence packet into the running aggregate.
// Each XxxToInfo function is grounded on the matching nmeaXxxToInfo in
// original_source (gpgga.c, gpgsa.c, gpgsv.c, gprmc.c, gpvtg.c): it sets
// SMASK plus the packet's own sentence-kind bit, then copies across
// only the fields the packet actually carries.
//
// Packets hold their own field types (sentence/gga.Packet etc.), so
// this file only needs the subset of each packet's shape relevant to
// merging; the sentence/* packages themselves stay free of any
// dependency on how their output is combined.

// GGAFields is the subset of a decoded GGA packet that GGAToInfo needs.
type GGAFields struct {
	Present Presence
	UTC     Time
	Lat     float64
	NS      byte
	Lon     float64
	EW      byte
	Sig     Sig

	SatInUseCount int
	HDOP          float64
	Elv           float64
}

// GGAToInfo merges a decoded GGA packet into i.
func GGAToInfo(p GGAFields, i *Info) {
	i.Present.Fields = i.Present.Fields.Set(SMASK)
	i.Present.Sentences = i.Present.Sentences.Set(GPGGA)

	if p.Present.Has(UTCTIME) {
		i.UTC.Hour, i.UTC.Minute, i.UTC.Second, i.UTC.Hundredths = p.UTC.Hour, p.UTC.Minute, p.UTC.Second, p.UTC.Hundredths
		i.Present.Fields = i.Present.Fields.Set(UTCTIME)
	}
	if p.Present.Has(LAT) {
		i.Lat = signedBy(p.Lat, p.NS == 'N')
		i.Present.Fields = i.Present.Fields.Set(LAT)
	}
	if p.Present.Has(LON) {
		i.Lon = signedBy(p.Lon, p.EW == 'E')
		i.Present.Fields = i.Present.Fields.Set(LON)
	}
	if p.Present.Has(SIG) {
		i.Sig = p.Sig
		i.Present.Fields = i.Present.Fields.Set(SIG)
	}
	if p.Present.Has(SATINUSECOUNT) {
		i.Sats.InUseCount = p.SatInUseCount
		i.Present.Fields = i.Present.Fields.Set(SATINUSECOUNT)
	}
	if p.Present.Has(HDOP) {
		i.HDOP = p.HDOP
		i.Present.Fields = i.Present.Fields.Set(HDOP)
	}
	if p.Present.Has(ELV) {
		i.Elv = p.Elv
		i.Present.Fields = i.Present.Fields.Set(ELV)
	}
	// GeoidHeight/DGPSAge/DGPSSid are parsed but never merged, matching
	// nmealib's own "not supported yet" behaviour (see SPEC_FULL.md §3).
}

// GSAFields is the subset of a decoded GSA packet that GSAToInfo needs.
type GSAFields struct {
	Present   Presence
	Selection byte // 'A' or 'M', 0 if absent
	Fix       Fix
	InUse     [12]uint
	PDOP      float64
	HDOP      float64
	VDOP      float64
}

// GSAToInfo merges a decoded GSA packet into i.
//
// The sig reconciliation is asymmetric by design (spec §4.6, preserving
// original_source/src/gpgsa.c): 'M' always wins and becomes SigManual;
// 'A' means SigFix when the packet also carried a FIX field, otherwise
// SigInvalid, and only ever promotes: a stronger sig already in i is
// kept.
func GSAToInfo(p GSAFields, i *Info) {
	i.Present.Fields = i.Present.Fields.Set(SMASK)
	i.Present.Sentences = i.Present.Sentences.Set(GPGSA)

	if p.Present.Has(SIG) {
		if p.Selection == 'M' {
			i.Sig = SigManual
		} else {
			sig := SigInvalid
			if p.Present.Has(FIX) {
				sig = SigFix
			}
			if !i.Present.Fields.Has(SIG) || sig > i.Sig {
				i.Sig = sig
			}
		}
		i.Present.Fields = i.Present.Fields.Set(SIG)
	}

	if p.Present.Has(FIX) {
		i.Fix = p.Fix
		i.Present.Fields = i.Present.Fields.Set(FIX)
	}

	if p.Present.Has(SATINUSE) {
		i.Sats.InUse = [MaxSatellites]uint{}
		infoIdx := 0
		for _, prn := range p.InUse {
			if prn != 0 && infoIdx < MaxSatellites {
				i.Sats.InUse[infoIdx] = prn
				infoIdx++
			}
		}
		i.Present.Fields = i.Present.Fields.Set(SATINUSE)
	}

	if p.Present.Has(PDOP) {
		i.PDOP = p.PDOP
		i.Present.Fields = i.Present.Fields.Set(PDOP)
	}
	if p.Present.Has(HDOP) {
		i.HDOP = p.HDOP
		i.Present.Fields = i.Present.Fields.Set(HDOP)
	}
	if p.Present.Has(VDOP) {
		i.VDOP = p.VDOP
		i.Present.Fields = i.Present.Fields.Set(VDOP)
	}
}

// GSVFields is the subset of a decoded GSV packet that GSVToInfo needs.
type GSVFields struct {
	Present    Presence
	Sentences  int
	Sentence   int // 1-based
	Satellites int
	Sats       [4]Satellite
}

// GSVToInfo merges one sentence of a GSV fan-out into i: it positions
// this sentence's up-to-four satellites into the [(k-1)*4, k*4) window
// of i.Sats.InView, clearing the whole array first when this is
// sentence 1, and tracks whether more sentences are still expected.
//
// Grounded on original_source/src/gpgsv.c (nmeaGPGSVToInfo).
func GSVToInfo(p GSVFields, i *Info) {
	i.Present.Fields = i.Present.Fields.Set(SMASK)
	i.Present.Sentences = i.Present.Sentences.Set(GPGSV)

	if p.Sentence == 1 {
		i.Sats.InView = [MaxSatellites]Satellite{}
	}

	i.GSVInProgress = p.Sentence != p.Sentences

	if p.Present.Has(SATINVIEWCOUNT) {
		i.Sats.InViewCount = p.Satellites
		i.Present.Fields = i.Present.Fields.Set(SATINVIEWCOUNT)
	}

	if p.Present.Has(SATINVIEW) {
		base := (p.Sentence - 1) * 4
		for offset := 0; offset < 4 && base+offset < MaxSatellites; offset++ {
			i.Sats.InView[base+offset] = p.Sats[offset]
		}
		i.Present.Fields = i.Present.Fields.Set(SATINVIEW)
	}
}

// RMCFields is the subset of a decoded RMC packet that RMCToInfo needs.
type RMCFields struct {
	Present Presence
	UTC     Time
	Status  byte
	Mode    byte
	Lat     float64
	NS      byte
	Lon     float64
	EW      byte
	Speed   float64
	Track   float64
	MagVar  float64
	MagVarEW byte
}

// RMCToInfo merges a decoded RMC packet into i.
func RMCToInfo(p RMCFields, i *Info) {
	i.Present.Fields = i.Present.Fields.Set(SMASK)
	i.Present.Sentences = i.Present.Sentences.Set(GPRMC)

	if p.Present.Has(UTCTIME) {
		i.UTC.Hour, i.UTC.Minute, i.UTC.Second, i.UTC.Hundredths = p.UTC.Hour, p.UTC.Minute, p.UTC.Second, p.UTC.Hundredths
		i.Present.Fields = i.Present.Fields.Set(UTCTIME)
	}

	if p.Present.Has(SIG) {
		switch {
		case p.Status != 'A':
			i.Sig = SigInvalid
		case p.Mode != 0:
			i.Sig = SigFromChar(p.Mode)
		default:
			i.Sig = SigFix
		}
		i.Present.Fields = i.Present.Fields.Set(SIG)
	}

	if p.Present.Has(LAT) {
		i.Lat = signedBy(p.Lat, p.NS == 'N')
		i.Present.Fields = i.Present.Fields.Set(LAT)
	}
	if p.Present.Has(LON) {
		i.Lon = signedBy(p.Lon, p.EW == 'E')
		i.Present.Fields = i.Present.Fields.Set(LON)
	}
	if p.Present.Has(SPEED) {
		i.Speed = p.Speed * KnotsToKPH
		i.Present.Fields = i.Present.Fields.Set(SPEED)
	}
	if p.Present.Has(TRACK) {
		i.Track = p.Track
		i.Present.Fields = i.Present.Fields.Set(TRACK)
	}
	if p.Present.Has(UTCDATE) {
		i.UTC.Year, i.UTC.Month, i.UTC.Day = p.UTC.Year, p.UTC.Month, p.UTC.Day
		i.Present.Fields = i.Present.Fields.Set(UTCDATE)
	}
	if p.Present.Has(MAGVAR) {
		i.MagVar = signedBy(p.MagVar, p.MagVarEW == 'E')
		i.Present.Fields = i.Present.Fields.Set(MAGVAR)
	}
}

// VTGFields is the subset of a decoded VTG packet that VTGToInfo needs.
type VTGFields struct {
	Present    Presence
	Track      float64
	MTrack     float64
	SpeedKnots float64
	SpeedKPH   float64
}

// VTGToInfo merges a decoded VTG packet into i.
func VTGToInfo(p VTGFields, i *Info) {
	i.Present.Fields = i.Present.Fields.Set(SMASK)
	i.Present.Sentences = i.Present.Sentences.Set(GPVTG)

	if p.Present.Has(TRACK) {
		i.Track = p.Track
		i.Present.Fields = i.Present.Fields.Set(TRACK)
	}
	if p.Present.Has(MTRACK) {
		i.MTrack = p.MTrack
		i.Present.Fields = i.Present.Fields.Set(MTRACK)
	}
	if p.Present.Has(SPEED) {
		i.Speed = p.SpeedKPH
		i.Present.Fields = i.Present.Fields.Set(SPEED)
	}
}

// KnotsToKPH is the knot-to-kilometres-per-hour conversion factor
// (nmealib's NMEA_TUD_KNOTS), used wherever a merge needs to bring a
// knots-denominated field into the aggregate's kph SPEED field.
const KnotsToKPH = 1.852

func signedBy(magnitude float64, positive bool) float64 {
	v := abs(magnitude)
	if positive {
		return v
	}
	return -v
}
