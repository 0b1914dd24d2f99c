package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeBDS09GroundSpeedSubtype(t *testing.T) {
	me := make([]byte, 7)
	setBits(me, 6, 8, 1) // subtype 1: subsonic ground speed
	setBits(me, 14, 14, 0)
	setBits(me, 15, 24, 101) // ew velocity = 100 kt east
	setBits(me, 25, 25, 0)
	setBits(me, 26, 35, 101) // ns velocity = 100 kt north

	v := decodeBDS09(me)
	assert.Equal(t, 1, v.Subtype)
	assert.True(t, v.HasSpeed)
	assert.InDelta(t, 141.42, v.GroundSpeed, 0.5)
	assert.True(t, v.HasTrack)
	assert.InDelta(t, 45.0, v.Track, 0.5)
}

func TestDecodeBDS09AirspeedSubtype(t *testing.T) {
	me := make([]byte, 7)
	setBits(me, 6, 8, 3) // subtype 3: subsonic airspeed
	setBits(me, 26, 35, 251)

	v := decodeBDS09(me)
	assert.Equal(t, 3, v.Subtype)
	assert.True(t, v.HasSpeed)
	assert.Equal(t, 250, v.IAS)
}
