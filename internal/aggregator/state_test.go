package aggregator

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jet1090/internal/cpr"
	"jet1090/internal/modes"
)

func parseHex(t *testing.T, s string) *modes.Message {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	msg, err := modes.Parse(b)
	require.NoError(t, err)
	return msg
}

func TestSnapshotUpdateCallsignAndPosition(t *testing.T) {
	sm := NewStateMap(&cpr.Reference{Lat: 52.0, Lon: 3.9, Have: true})

	idMsg := parseHex(t, "8D4CA251204994B1C36E60A5343D")
	require.NoError(t, sm.Update(idMsg, 0))

	entries := sm.Snapshots()
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Snapshot.Callsign)
	assert.Equal(t, "EIN05BT", *entries[0].Snapshot.Callsign)

	// Airborne position pair for a second aircraft: odd frame first, then
	// the newer even frame resolves the global position.
	posICAO := modes.ICAOFromUint24(0x40621D)
	odd := &modes.Message{DF: modes.DFExtendedSquitterADSB, ICAO: posICAO, TypeCode: 11,
		ME: modes.ME{Airborne: modes.BDS05{CPR: modes.CPRPosition{FFlag: 1, Lat: 74158, Lon: 50194}}}}
	even := &modes.Message{DF: modes.DFExtendedSquitterADSB, ICAO: posICAO, TypeCode: 11,
		ME: modes.ME{Airborne: modes.BDS05{CPR: modes.CPRPosition{FFlag: 0, Lat: 93000, Lon: 51372}}}}
	require.NoError(t, sm.Update(odd, 0))
	require.NoError(t, sm.Update(even, 10))

	snap, ok := sm.Get(posICAO)
	require.True(t, ok)
	require.NotNil(t, snap.Latitude)
	require.NotNil(t, snap.Longitude)
	assert.InDelta(t, 52.25720, *snap.Latitude, 0.001)
	assert.InDelta(t, 3.91937, *snap.Longitude, 0.001)
}

func TestSnapshotMonotonicTimestamps(t *testing.T) {
	sm := NewStateMap(nil)
	msg := parseHex(t, "8D4CA251204994B1C36E60A5343D")

	require.NoError(t, sm.Update(msg, 10))
	require.NoError(t, sm.Update(msg, 5)) // out-of-order ingress timestamp

	entries := sm.Snapshots()
	require.Len(t, entries, 1)
	assert.Equal(t, 10.0, entries[0].Snapshot.LastTs)
	assert.Equal(t, 10.0, entries[0].Snapshot.FirstTs)
}

func TestBDSAmbiguityLeavesFieldsUnset(t *testing.T) {
	sm := NewStateMap(nil)

	// DF20 frame whose Comm-B field satisfies both BDS50 (zero reserved
	// tail) and BDS60 (zero IAS/heading/Mach status bits, trivially
	// in-range) candidate predicates simultaneously.
	msg := &modes.Message{
		DF:       modes.DFCommBAltitude,
		ICAO:     modes.ICAOFromUint24(0x4CA251),
		HasBDS50: true,
		BDS50:    modes.BDS50{HasRoll: true, RollAngle: 3.2},
		HasBDS60: true,
		BDS60:    modes.BDS60{HasIAS: true, IAS: 250},
	}

	require.NoError(t, sm.Update(msg, 0))

	entries := sm.Snapshots()
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Snapshot.Roll)
	assert.Nil(t, entries[0].Snapshot.IAS)
}

func TestLenTracksDistinctAircraft(t *testing.T) {
	sm := NewStateMap(nil)
	msg := parseHex(t, "8D4CA251204994B1C36E60A5343D")

	require.NoError(t, sm.Update(msg, 0))
	require.NoError(t, sm.Update(msg, 1))

	assert.Equal(t, 1, sm.Len())
}
