package aggregator

import (
	"sort"
	"sync"

	"jet1090/internal/cpr"
	"jet1090/internal/modes"
)

// Entry is one copied-out row of the state map, as returned by Snapshots.
type Entry struct {
	ICAO     string
	Snapshot Snapshot
}

// StateMap is the keyed map from 24-bit aircraft address to snapshot
// described by spec.md §3/§4.4. It is safe for one writer (Update) and any
// number of concurrent readers (Snapshots) per spec.md §5's concurrency
// model: Update holds the mutex for its entire call so a reader never
// observes a torn mid-update record, and the same lock also serializes
// access to the writer-only CPR scratch map and reference.
type StateMap struct {
	mu        sync.RWMutex
	snapshots map[modes.ICAO]*Snapshot

	scratch map[modes.ICAO]*cpr.Scratch
	ref     *cpr.Reference
}

// NewStateMap constructs an empty state map. ref may be nil (no known
// reference position yet) or a Reference the caller continues to own and
// may pre-populate from a --latlon flag.
func NewStateMap(ref *cpr.Reference) *StateMap {
	if ref == nil {
		ref = &cpr.Reference{}
	}
	return &StateMap{
		snapshots: make(map[modes.ICAO]*Snapshot),
		scratch:   make(map[modes.ICAO]*cpr.Scratch),
		ref:       ref,
	}
}

// Update applies one decoded message to the state map, per the per-DF/per-ME
// rules of spec.md §4.4. ts is the frame's ingress timestamp. The only
// error it can return is cpr.ErrCprOutOfRange, which is non-fatal: the rest
// of the message's fields are still applied. Per spec.md §5, the writer
// holds s.mu for the duration of the whole call, so a concurrent reader
// never observes a snapshot with some of this message's fields applied and
// others not yet written.
func (s *StateMap) Update(msg *modes.Message, ts float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, exists := s.snapshots[msg.ICAO]
	if !exists {
		snap = &Snapshot{FirstTs: ts, LastTs: ts}
		s.snapshots[msg.ICAO] = snap
	}
	if ts > snap.LastTs {
		snap.LastTs = ts
	}

	var cprErr error

	switch msg.DF {
	case modes.DFSurveillanceIdentity:
		snap.Squawk = ip(msg.Squawk)

	case modes.DFSurveillanceAltitude, modes.DFCommBAltitude:
		if msg.HasAltitude {
			snap.Altitude = ip(msg.Altitude)
		}

	case modes.DFShortAirAirSurveillance, modes.DFLongAirAirSurveillance:
		if msg.HasAltitude {
			snap.Altitude = ip(msg.Altitude)
		}
		snap.OnGround = bp(msg.OnGround)

	case modes.DFExtendedSquitterADSB, modes.DFExtendedSquitterTisB:
		cprErr = s.applyME(msg, snap, ts)
	}

	if msg.HasSquawk && (msg.Squawk == 7700 || msg.Squawk == 7600 || msg.Squawk == 7500) {
		snap.Emergency = bp(true)
	}

	if msg.DF == modes.DFCommBAltitude || msg.DF == modes.DFCommBIdentity {
		s.applyCommB(msg, snap)
	}

	return cprErr
}

// applyME dispatches an extended-squitter ME payload, running the CPR
// reconstructor for position-bearing type codes first. The caller must
// already hold s.mu for the duration of the enclosing Update call.
func (s *StateMap) applyME(msg *modes.Message, snap *Snapshot, ts float64) error {
	tc := msg.TypeCode

	switch {
	case tc >= 1 && tc <= 4:
		snap.Callsign = sp(msg.ME.Ident.Callsign)

	case tc >= 5 && tc <= 8:
		surf := msg.ME.Surface
		lat, lon, ok, err := s.decodePosition(msg.ICAO, surf.CPR, ts, true)
		if ok {
			snap.Latitude, snap.Longitude = f64p(lat), f64p(lon)
		}
		if surf.HasTrack {
			snap.Track = f64p(surf.Track)
		}
		if surf.HasSpeed {
			snap.GroundSpeed = f64p(surf.GroundSpeed)
		}
		return err

	case tc == 19:
		v := msg.ME.Velocity
		if v.HasVerticalRate {
			snap.VerticalRate = ip(v.VerticalRate)
		}
		if v.HasSpeed {
			if v.Subtype == 1 || v.Subtype == 2 {
				snap.GroundSpeed = f64p(v.GroundSpeed)
			} else {
				snap.IAS = ip(v.IAS)
			}
		}
		if v.HasTrack {
			snap.Track = f64p(v.Track)
		}

	case (tc >= 9 && tc <= 18) || (tc >= 20 && tc <= 22):
		air := msg.ME.Airborne
		lat, lon, ok, err := s.decodePosition(msg.ICAO, air.CPR, ts, false)
		if ok {
			snap.Latitude, snap.Longitude = f64p(lat), f64p(lon)
		}
		if air.HasAltitude {
			snap.Altitude = ip(air.Altitude)
		}
		return err
	}

	return nil
}

// decodePosition runs the CPR reconstructor for icao. The caller must
// already hold s.mu: the scratch map is writer-exclusive state, not
// separately locked.
func (s *StateMap) decodePosition(icao modes.ICAO, raw modes.CPRPosition, ts float64, surface bool) (lat, lon float64, ok bool, err error) {
	sc, exists := s.scratch[icao]
	if !exists {
		sc = &cpr.Scratch{}
		s.scratch[icao] = sc
	}

	pos, ok, err := cpr.Decode(sc, s.ref, cpr.Frame{LatCPR: raw.Lat, LonCPR: raw.Lon, Ts: ts}, raw.FFlag, surface)
	if !ok {
		return 0, 0, false, err
	}
	return pos.Lat, pos.Lon, true, nil
}

// applyCommB applies the BDS 5,0 / 6,0 ambiguity rule: candidates present on
// both registers in the same message contribute nothing. The caller must
// already hold s.mu for the duration of the enclosing Update call.
func (s *StateMap) applyCommB(msg *modes.Message, snap *Snapshot) {
	if msg.HasBDS50 && msg.HasBDS60 {
		return
	}

	if msg.HasBDS50 {
		b := msg.BDS50
		if b.HasRoll {
			snap.Roll = f64p(b.RollAngle)
		}
		if b.HasTrack {
			snap.Track = f64p(b.Track)
		}
		if b.HasSpeed {
			snap.GroundSpeed = f64p(b.GroundSpeed)
		}
	}

	if msg.HasBDS60 {
		b := msg.BDS60
		if b.HasIAS {
			snap.IAS = ip(b.IAS)
		}
		if b.HasMach {
			snap.Mach = f64p(b.Mach)
		}
		if b.HasTrack {
			snap.Track = f64p(b.Heading)
		}
	}
}

// Snapshots returns a copied-out view of the state map in ICAO-sorted
// order, safe to render without holding the map's lock.
func (s *StateMap) Snapshots() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.snapshots))
	for icao, snap := range s.snapshots {
		entries = append(entries, Entry{ICAO: icao.String(), Snapshot: *snap})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ICAO < entries[j].ICAO })
	return entries
}

// Get returns a copy of icao's snapshot, if tracked.
func (s *StateMap) Get(icao modes.ICAO) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[icao]
	if !ok {
		return Snapshot{}, false
	}
	return *snap, true
}

// Len reports the number of distinct aircraft currently tracked.
func (s *StateMap) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}

// Remove deletes icao's snapshot, for use by an external eviction
// collaborator. Per spec.md §3, the CPR scratch is never destroyed during
// the session even when its snapshot is evicted: a later frame for the
// same aircraft still reconstructs position correctly rather than
// restarting from an empty scratch slot.
func (s *StateMap) Remove(icao modes.ICAO) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, icao)
}
