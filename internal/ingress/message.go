// Package ingress defines the wire-level contract between an external feed
// (a Beast-protocol socket, an RTL-SDR demodulator, a replay file) and the
// decoder core: a stream of timestamped hex frames, per spec.md §6.
package ingress

import (
	"encoding/hex"
	"errors"
)

// ErrInvalidHex is returned when a Message's Frame field is not a valid
// 14- or 28-character hex string (a 56- or 112-bit Mode S frame).
var ErrInvalidHex = errors.New("ingress: frame is not valid 14/28-char hex")

// Message is one ingress record: a timestamped raw frame, per spec.md §6's
// external-interface contract.
type Message struct {
	Timestamp float64 // seconds since epoch
	Frame     string  // hex, 14 or 28 characters
}

// Decode validates and hex-decodes a Message's frame, ready for
// internal/modes.Parse.
func Decode(msg Message) ([]byte, error) {
	if len(msg.Frame) != 14 && len(msg.Frame) != 28 {
		return nil, ErrInvalidHex
	}
	b, err := hex.DecodeString(msg.Frame)
	if err != nil {
		return nil, ErrInvalidHex
	}
	return b, nil
}
