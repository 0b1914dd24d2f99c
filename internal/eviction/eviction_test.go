package eviction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jet1090/internal/aggregator"
	"jet1090/internal/cpr"
	"jet1090/internal/modes"
)

func TestTouchPreventsEvictionWithinTTL(t *testing.T) {
	states := aggregator.NewStateMap(&cpr.Reference{})
	icao := modes.ICAOFromUint24(0x4ca251)

	msg := &modes.Message{DF: modes.DFSurveillanceIdentity, ICAO: icao, HasSquawk: true, Squawk: 1200}
	require.NoError(t, states.Update(msg, 0))
	require.Equal(t, 1, states.Len())

	tr := NewTracker(states, 50*time.Millisecond, 10*time.Millisecond)
	tr.Touch(icao)
	assert.Equal(t, 1, tr.Len())
}

func TestEvictionRemovesSnapshotNotScratch(t *testing.T) {
	states := aggregator.NewStateMap(&cpr.Reference{})
	icao := modes.ICAOFromUint24(0x4ca251)

	msg := &modes.Message{DF: modes.DFSurveillanceIdentity, ICAO: icao, HasSquawk: true, Squawk: 1200}
	require.NoError(t, states.Update(msg, 0))

	tr := NewTracker(states, 20*time.Millisecond, 5*time.Millisecond)
	tr.Touch(icao)

	require.Eventually(t, func() bool {
		return states.Len() == 0
	}, time.Second, 10*time.Millisecond)
}
