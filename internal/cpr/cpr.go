// Package cpr reconstructs unambiguous latitude/longitude from the Compact
// Position Reporting encoding carried by ADS-B airborne and surface
// position messages, by the dump1090/ICAO Doc 9871 Appendix A algorithm.
package cpr

import (
	"math"

	"github.com/golang/geo/s2"
)

const cprMax = 131072.0 // 2^17

const (
	airborneRangeNM = 180.0
	surfaceRangeNM  = 45.0
	earthRadiusNM   = 3440.065
)

// Frame is one still-CPR-encoded position report.
type Frame struct {
	LatCPR uint32
	LonCPR uint32
	Ts     float64
}

// Position is a reconstructed, unambiguous geographic position.
type Position struct {
	Lat float64
	Lon float64
}

// Scratch is the per-aircraft CPR working state described by spec.md §3.
// It is created on an aircraft's first position frame, mutated in place,
// and never destroyed for the life of the process. Scratch is owned
// exclusively by the single writer task; it must never be shared or
// accessed concurrently.
type Scratch struct {
	Even         *Frame
	Odd          *Frame
	LastPosition *Position
}

// Reference is the optional, mutable reference position used for local
// decoding. It is updated to the most recent successfully-decoded position,
// global or local, so that later local decodes stay bounded.
type Reference struct {
	Lat  float64
	Lon  float64
	Have bool
}

// Decode reconstructs a position from a single CPR-encoded frame, updating
// scratch and, when provided and a global or local decode succeeds, ref. surface
// selects the halved surface-decoding zone sizes and the 45 nm local-range
// bound (180 nm otherwise).
//
// Returns ok=false with a nil error when no decode was yet possible (the
// CprIncomplete quiescent state of spec.md §7: e.g. only one of the two
// frames seen, or the two frames straddle a latitude zone boundary).
// Returns ErrCprOutOfRange when a local decode landed outside the
// reference's validity radius.
func Decode(scratch *Scratch, ref *Reference, frame Frame, fFlag uint8, surface bool) (Position, bool, error) {
	if fFlag == 0 {
		storeIfNotStale(&scratch.Even, frame)
	} else {
		storeIfNotStale(&scratch.Odd, frame)
	}

	if scratch.Even != nil && scratch.Odd != nil {
		if pos, ok := decodeGlobal(scratch.Even, scratch.Odd, surface); ok {
			scratch.LastPosition = &pos
			if ref != nil {
				ref.Lat, ref.Lon, ref.Have = pos.Lat, pos.Lon, true
			}
			return pos, true, nil
		}
	}

	if ref != nil && ref.Have {
		pos, ok := decodeLocal(frame, fFlag, *ref, surface)
		if ok {
			rangeNM := airborneRangeNM
			if surface {
				rangeNM = surfaceRangeNM
			}
			if distanceNM(pos, Position{Lat: ref.Lat, Lon: ref.Lon}) > rangeNM {
				if fFlag == 0 {
					scratch.Even = nil
				} else {
					scratch.Odd = nil
				}
				return Position{}, false, ErrCprOutOfRange
			}
			scratch.LastPosition = &pos
			// Reference updates unconditionally on any successful decode
			// (global or local), matching upstream jet.rs rather than
			// gating on global-only: see SPEC_FULL.md open question (b).
			ref.Lat, ref.Lon = pos.Lat, pos.Lon
			return pos, true, nil
		}
	}

	return Position{}, false, nil
}

// storeIfNotStale writes frame into *slot, unless doing so would move that
// slot's timestamp backwards, in which case the slot is invalidated (reset
// to unset) instead per spec.md §4.3's out-of-order rule.
func storeIfNotStale(slot **Frame, frame Frame) {
	if *slot != nil && frame.Ts < (*slot).Ts {
		*slot = nil
		return
	}
	f := frame
	*slot = &f
}

func decodeGlobal(even, odd *Frame, surface bool) (Position, bool) {
	if math.Abs(even.Ts-odd.Ts) > 10.0 {
		return Position{}, false
	}

	airDlat0 := 360.0 / 60.0
	airDlat1 := 360.0 / 59.0
	if surface {
		airDlat0 /= 4.0
		airDlat1 /= 4.0
	}

	lat0, lon0 := float64(even.LatCPR), float64(even.LonCPR)
	lat1, lon1 := float64(odd.LatCPR), float64(odd.LonCPR)

	j := int(math.Floor(((59*lat0 - 60*lat1) / cprMax) + 0.5))

	rlat0 := airDlat0 * (float64(modInt(j, 60)) + lat0/cprMax)
	rlat1 := airDlat1 * (float64(modInt(j, 59)) + lat1/cprMax)

	if rlat0 >= 270 {
		rlat0 -= 360
	}
	if rlat1 >= 270 {
		rlat1 -= 360
	}
	if rlat0 < -90 || rlat0 > 90 || rlat1 < -90 || rlat1 > 90 {
		return Position{}, false
	}

	if nlTable(rlat0) != nlTable(rlat1) {
		return Position{}, false
	}

	var rlat, rlon float64
	if odd.Ts >= even.Ts {
		nl := nlTable(rlat1)
		ni := nFunction(rlat1, 1)
		m := int(math.Floor((((lon0 * float64(nl-1)) - (lon1 * float64(nl))) / cprMax) + 0.5))
		dlon := dlonFunction(rlat1, 1)
		if surface {
			dlon /= 4.0
		}
		rlon = dlon * (float64(modInt(m, ni)) + lon1/cprMax)
		rlat = rlat1
	} else {
		nl := nlTable(rlat0)
		ni := nFunction(rlat0, 0)
		m := int(math.Floor((((lon0 * float64(nl-1)) - (lon1 * float64(nl))) / cprMax) + 0.5))
		dlon := dlonFunction(rlat0, 0)
		if surface {
			dlon /= 4.0
		}
		rlon = dlon * (float64(modInt(m, ni)) + lon0/cprMax)
		rlat = rlat0
	}

	rlon -= math.Floor((rlon+180)/360) * 360
	return Position{Lat: rlat, Lon: rlon}, true
}

func decodeLocal(frame Frame, fFlag uint8, ref Reference, surface bool) (Position, bool) {
	airDlat := 360.0 / float64(60-int(fFlag))
	if surface {
		airDlat /= 4.0
	}

	lat := float64(frame.LatCPR)
	lon := float64(frame.LonCPR)

	j := math.Floor(ref.Lat/airDlat) + math.Floor(modFloat(ref.Lat, airDlat)/airDlat-lat/cprMax+0.5)
	rlat := airDlat * (j + lat/cprMax)

	if rlat < -90 || rlat > 90 {
		return Position{}, false
	}

	dlon := dlonFunction(rlat, int(fFlag))
	if surface {
		dlon /= 4.0
	}

	m := math.Floor(ref.Lon/dlon) + math.Floor(modFloat(ref.Lon, dlon)/dlon-lon/cprMax+0.5)
	rlon := dlon * (m + lon/cprMax)

	return Position{Lat: rlat, Lon: rlon}, true
}

func distanceNM(a, b Position) float64 {
	pa := s2.LatLngFromDegrees(a.Lat, a.Lon)
	pb := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return pa.Distance(pb).Radians() * earthRadiusNM
}
