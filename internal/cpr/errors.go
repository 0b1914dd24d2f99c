package cpr

import "errors"

// ErrCprOutOfRange is returned by Decode when a local decode succeeds
// numerically but lands farther from the reference position than the
// aircraft's class allows (180 nm airborne, 45 nm surface). Per spec.md
// §7, this invalidates the scratch slot and drops the frame's position
// fields; it is not fatal to the rest of the message.
var ErrCprOutOfRange = errors.New("cpr: decoded position out of range of reference")
