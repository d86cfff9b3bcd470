package info

import "testing"

func TestGSAToInfoSigReconciliation(t *testing.T) {
	var testData = []struct {
		Comment   string
		Selection byte
		FixSet    bool
		Want      Sig
	}{
		{"manual always wins", 'M', false, SigManual},
		{"manual wins even with a fix", 'M', true, SigManual},
		{"automatic with fix promotes to SigFix", 'A', true, SigFix},
		{"automatic without fix folds to invalid", 'A', false, SigInvalid},
	}
	for _, td := range testData {
		var i Info
		p := GSAFields{Present: Presence(0).Set(SIG), Selection: td.Selection}
		if td.FixSet {
			p.Present = p.Present.Set(FIX)
		}
		GSAToInfo(p, &i)
		if i.Sig != td.Want {
			t.Errorf("%s: want sig %d, got %d", td.Comment, td.Want, i.Sig)
		}
	}
}

func TestGSVToInfoPositionsSatelliteWindow(t *testing.T) {
	var i Info

	GSVToInfo(GSVFields{
		Present:    Presence(0).Set(SATINVIEWCOUNT).Set(SATINVIEW),
		Sentences:  2,
		Sentence:   1,
		Satellites: 5,
		Sats:       [4]Satellite{{PRN: 1}, {PRN: 2}, {PRN: 3}, {PRN: 4}},
	}, &i)

	if !i.GSVInProgress {
		t.Error("want GSVInProgress true after sentence 1 of 2")
	}
	if i.Sats.InView[0].PRN != 1 || i.Sats.InView[3].PRN != 4 {
		t.Errorf("want satellites 1-4 in slots 0-3, got %+v", i.Sats.InView[:4])
	}

	GSVToInfo(GSVFields{
		Present:    Presence(0).Set(SATINVIEWCOUNT).Set(SATINVIEW),
		Sentences:  2,
		Sentence:   2,
		Satellites: 5,
		Sats:       [4]Satellite{{PRN: 5}},
	}, &i)

	if i.GSVInProgress {
		t.Error("want GSVInProgress false after the final sentence")
	}
	if i.Sats.InView[4].PRN != 5 {
		t.Errorf("want satellite 5 in slot 4, got %+v", i.Sats.InView[4])
	}
	if i.Sats.InView[0].PRN != 1 {
		t.Error("want the first sentence's satellites to survive the second sentence's merge")
	}
}

func TestGSVToInfoClearsOnSentenceOne(t *testing.T) {
	var i Info
	i.Sats.InView[10] = Satellite{PRN: 42}

	GSVToInfo(GSVFields{
		Present:    Presence(0).Set(SATINVIEWCOUNT).Set(SATINVIEW),
		Sentences:  1,
		Sentence:   1,
		Satellites: 1,
		Sats:       [4]Satellite{{PRN: 1}},
	}, &i)

	if i.Sats.InView[10].PRN != 0 {
		t.Error("want a new sentence-1 to clear stale satellites from a previous fan-out")
	}
}

func TestGGAToInfoSignsPosition(t *testing.T) {
	var i Info
	GGAToInfo(GGAFields{
		Present: Presence(0).Set(LAT).Set(LON),
		Lat:     4807.038,
		NS:      'S',
		Lon:     1131.000,
		EW:      'W',
	}, &i)

	if i.Lat >= 0 {
		t.Errorf("want a negative latitude for 'S', got %v", i.Lat)
	}
	if i.Lon >= 0 {
		t.Errorf("want a negative longitude for 'W', got %v", i.Lon)
	}
}

func TestRMCToInfoVoidStatusIsInvalid(t *testing.T) {
	var i Info
	RMCToInfo(RMCFields{
		Present: Presence(0).Set(SIG),
		Status:  'V',
	}, &i)

	if i.Sig != SigInvalid {
		t.Errorf("want SigInvalid for a void fix, got %d", i.Sig)
	}
}

func TestVTGToInfoUsesKPH(t *testing.T) {
	var i Info
	VTGToInfo(VTGFields{
		Present:  Presence(0).Set(SPEED),
		SpeedKPH: 18.52,
	}, &i)

	if i.Speed != 18.52 {
		t.Errorf("want speed 18.52 kph, got %v", i.Speed)
	}
}
