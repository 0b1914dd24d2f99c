package modes

import "math"

// BDS09 is the decoded ME payload of a BDS 0,9 (airborne velocity)
// message. Subtype 1/2 carries a ground-speed vector (East-West and
// North-South components); subtype 3/4 carries airspeed and heading
// directly. Subtype 1/2 fills GroundSpeed and Track; subtype 3/4 fills IAS
// with the reported airspeed and Track with the heading. Mach is not decoded.
type BDS09 struct {
	Subtype      int
	GroundSpeed  float64
	Track        float64
	IAS          int
	VerticalRate int
	HasSpeed        bool
	HasTrack        bool
	HasVerticalRate bool
}

// decodeBDS09 decodes the 56-bit ME payload of an airborne velocity
// message, grounded on internal/app/extraction.go's extractVelocity.
func decodeBDS09(me []byte) BDS09 {
	var v BDS09
	v.Subtype = int(bits(me, 6, 8))

	switch v.Subtype {
	case 1, 2:
		ewRaw := bits(me, 15, 24)
		nsRaw := bits(me, 26, 35)
		if ewRaw != 0 && nsRaw != 0 {
			mult := 1 // subtype 1: x1, subtype 2: x4 (supersonic)
			if v.Subtype == 2 {
				mult = 4
			}
			ewVel := int(ewRaw-1) * mult
			if bit(me, 14) != 0 {
				ewVel = -ewVel
			}
			nsVel := int(nsRaw-1) * mult
			if bit(me, 25) != 0 {
				nsVel = -nsVel
			}

			v.GroundSpeed = math.Sqrt(float64(nsVel*nsVel + ewVel*ewVel))
			v.HasSpeed = true

			if v.GroundSpeed > 0 {
				track := math.Atan2(float64(ewVel), float64(nsVel)) * 180.0 / math.Pi
				if track < 0 {
					track += 360
				}
				v.Track = track
				v.HasTrack = true
			}
		}

	case 3, 4:
		if bit(me, 14) != 0 {
			v.Track = float64(bits(me, 15, 24)) * 360.0 / 1024.0
			v.HasTrack = true
		}
		airspeedRaw := bits(me, 26, 35)
		if airspeedRaw != 0 {
			mult := 1 // subtype 3: x1, subtype 4: x4 (supersonic)
			if v.Subtype == 4 {
				mult = 4
			}
			v.IAS = int(airspeedRaw-1) * mult
			v.HasSpeed = true
		}
	}

	vrRaw := bits(me, 38, 46)
	if vrRaw != 0 {
		vr := int(vrRaw-1) * 64
		if bit(me, 37) != 0 {
			vr = -vr
		}
		v.VerticalRate = vr
		v.HasVerticalRate = true
	}

	return v
}
