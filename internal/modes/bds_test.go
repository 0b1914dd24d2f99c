package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSurfaceMovementTable(t *testing.T) {
	cases := []struct {
		movement uint32
		ok       bool
	}{
		{0, false},
		{1, true},
		{124, true},
	}
	for _, c := range cases {
		_, ok := decodeSurfaceMovement(c.movement)
		assert.Equal(t, c.ok, ok, "movement=%d", c.movement)
	}
}

func TestClassifyBDS50RequiresZeroReservedTail(t *testing.T) {
	mb := make([]byte, 7)
	mb[6] = 0x01 // reserved tail non-zero

	_, ok := classifyBDS50(mb)
	assert.False(t, ok)
}

func TestClassifyBDS60RejectsOutOfRangeIAS(t *testing.T) {
	mb := make([]byte, 7)
	setBits(mb, 13, 13, 1)      // IAS status bit set
	setBits(mb, 14, 23, 0x3ff) // 1023 kt: above the 661 kt plausibility bound

	_, ok := classifyBDS60(mb)
	assert.False(t, ok)
}
