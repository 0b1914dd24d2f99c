package modes

import "errors"

// Sentinel errors surfaced by the frame parser and CRC engine. The position
// reconstructor's outcomes live in internal/cpr: ErrCprOutOfRange, and an
// incomplete pair reported by cpr.Decode as ok=false with a nil error.
var (
	ErrShortFrame    = errors.New("modes: frame shorter than declared bit length")
	ErrWrongLength   = errors.New("modes: frame length does not match downlink format")
	ErrUnsupportedDF = errors.New("modes: unsupported downlink format")
	ErrCrcMismatch   = errors.New("modes: crc/parity mismatch")
)
