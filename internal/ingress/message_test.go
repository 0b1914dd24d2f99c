package ingress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAcceptsValidLengths(t *testing.T) {
	short := Message{Frame: "8d406b902015a6"}
	b, err := Decode(short)
	require.NoError(t, err)
	assert.Len(t, b, 7)

	long := Message{Frame: "8d406b902015a678d4d220aa4bda"}
	b, err = Decode(long)
	require.NoError(t, err)
	assert.Len(t, b, 14)
}

func TestDecodeRejectsWrongLengthOrNonHex(t *testing.T) {
	_, err := Decode(Message{Frame: "8d406b"})
	assert.ErrorIs(t, err, ErrInvalidHex)

	_, err = Decode(Message{Frame: "zzzzzzzzzzzzzz"})
	assert.ErrorIs(t, err, ErrInvalidHex)
}
