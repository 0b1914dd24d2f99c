package modes

// CPRPosition carries the raw, still-encoded CPR fields out of a BDS05 or
// BDS06 payload. The position reconstructor (internal/cpr) is the only
// consumer that turns these into latitude/longitude.
type CPRPosition struct {
	FFlag uint8 // 0 = even frame, 1 = odd frame
	Lat   uint32
	Lon   uint32
}

// BDS05 is the decoded ME payload of an airborne position message
// (TC 9-18, 20-22).
type BDS05 struct {
	Altitude    int
	HasAltitude bool
	CPR         CPRPosition
}

// BDS06 is the decoded ME payload of a surface position message (TC 5-8).
type BDS06 struct {
	Track       float64
	HasTrack    bool
	GroundSpeed float64
	HasSpeed    bool
	CPR         CPRPosition
}

func decodeCPRRaw(me []byte) CPRPosition {
	return CPRPosition{
		FFlag: uint8(bit(me, 22)),
		Lat:   bits(me, 23, 39),
		Lon:   bits(me, 40, 56),
	}
}

func decodeBDS05(me []byte) BDS05 {
	alt, ok := decodeAC12(me)
	return BDS05{Altitude: alt, HasAltitude: ok, CPR: decodeCPRRaw(me)}
}

// decodeBDS06 decodes a surface position payload. Track and groundspeed are
// only present (movement field != 0) when the aircraft is reporting motion;
// spec.md §4.4 only requires they be populated "from" the message, so a
// stationary surface report simply leaves them unset.
func decodeBDS06(me []byte) BDS06 {
	var b BDS06
	b.CPR = decodeCPRRaw(me)

	if bit(me, 6) != 0 { // status: ground track valid
		b.Track = float64(bits(me, 7, 13)) * 360.0 / 128.0
		b.HasTrack = true
	}

	movement := bits(me, 14, 20)
	if speed, ok := decodeSurfaceMovement(movement); ok {
		b.GroundSpeed = speed
		b.HasSpeed = true
	}
	return b
}

// decodeSurfaceMovement decodes the 7-bit "movement" field of a surface
// position message into knots, per the ICAO Annex 10 piecewise table.
func decodeSurfaceMovement(movement uint32) (knots float64, ok bool) {
	switch {
	case movement == 0:
		return 0, false
	case movement == 1:
		return 0, true // stopped
	case movement <= 8:
		return 0.125 * float64(movement-1), true
	case movement <= 12:
		return 1 + 0.25*float64(movement-9), true
	case movement <= 38:
		return 2 + 0.5*float64(movement-13), true
	case movement <= 93:
		return 15 + float64(movement-39), true
	case movement <= 108:
		return 70 + 2*float64(movement-94), true
	case movement <= 123:
		return 100 + 5*float64(movement-109), true
	default:
		return 175, true // 124 and above: "175 kt or more"
	}
}

// BDS50 is the decoded Comm-B "Track and turn report" candidate.
type BDS50 struct {
	RollAngle   float64
	HasRoll     bool
	Track       float64
	HasTrack    bool
	GroundSpeed float64
	HasSpeed    bool
}

// BDS60 is the decoded Comm-B "Heading and speed report" candidate.
type BDS60 struct {
	Heading  float64
	HasTrack bool
	IAS      int
	HasIAS   bool
	Mach     float64
	HasMach  bool
}

// classifyBDS50 pattern-matches an MB field against the BDS 5,0 static
// layout: the trailing 10 bits are reserved and must be zero for a
// confident match, per spec.md §4.2's "pattern-match required static bits".
func classifyBDS50(mb []byte) (BDS50, bool) {
	if bits(mb, 47, 56) != 0 {
		return BDS50{}, false
	}

	var b BDS50
	if bit(mb, 1) != 0 {
		raw := int32(bits(mb, 3, 13))
		if bit(mb, 2) != 0 {
			raw -= 1 << 11
		}
		b.RollAngle = float64(raw) * 45.0 / 256.0
		b.HasRoll = true
	}
	if bit(mb, 14) != 0 {
		b.Track = float64(bits(mb, 15, 25)) * 90.0 / 512.0
		b.HasTrack = true
	}
	if bit(mb, 37) != 0 {
		b.GroundSpeed = float64(bits(mb, 38, 46)) * 2.0
		b.HasSpeed = true
	}
	return b, true
}

// classifyBDS60 pattern-matches an MB field against the BDS 6,0 static
// layout. BDS 6,0 has no reserved tail to check, so the match instead
// requires every populated field to fall within its physically plausible
// envelope: heading within -180..360 degrees, IAS at most 661 kt and Mach at
// most 4.0.
func classifyBDS60(mb []byte) (BDS60, bool) {
	var b BDS60

	if bit(mb, 1) != 0 {
		raw := int32(bits(mb, 2, 12))
		if raw >= 1<<10 {
			raw -= 1 << 11
		}
		heading := float64(raw) * 90.0 / 512.0
		if heading < -180 || heading > 360 {
			return BDS60{}, false
		}
		if heading < 0 {
			heading += 360
		}
		b.Heading = heading
		b.HasTrack = true
	}

	if bit(mb, 13) != 0 {
		ias := int(bits(mb, 14, 23))
		if ias > 661 {
			return BDS60{}, false
		}
		b.IAS = ias
		b.HasIAS = true
	}

	if bit(mb, 24) != 0 {
		mach := float64(bits(mb, 25, 34)) * 0.004
		if mach > 4.0 {
			return BDS60{}, false
		}
		b.Mach = mach
		b.HasMach = true
	}

	return b, true
}
