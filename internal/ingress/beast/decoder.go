// Package beast decodes the Mode S Beast binary framing protocol (sync byte
// 0x1A, a one-byte message type, a 48-bit 12MHz timestamp counter, a signal
// byte, and 0x1A-escaped payload bytes) into ingress.Message values.
package beast

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"jet1090/internal/ingress"
)

// Beast message type bytes.
const (
	SyncByte   = 0x1A
	ModeAC     = 0x31
	ModeS      = 0x32
	ModeSLong  = 0x33
	ModeStatus = 0x34
)

// Decoder incrementally reassembles Beast frames out of a byte stream that
// may split or coalesce messages arbitrarily across reads.
type Decoder struct {
	logger *logrus.Logger
	buffer []byte
	epoch  time.Time // wall-clock anchor for the 12MHz counter
}

// NewDecoder creates a Beast decoder. epoch is the wall-clock time
// corresponding to timestamp counter value 0 (typically the time the
// connection was established); every message's counter is converted to a
// Unix timestamp relative to it.
func NewDecoder(logger *logrus.Logger, epoch time.Time) *Decoder {
	return &Decoder{
		logger: logger,
		buffer: make([]byte, 0, 4096),
		epoch:  epoch,
	}
}

// Feed appends newly-read bytes and returns every complete message found so
// far, in the order they were framed.
func (d *Decoder) Feed(data []byte) []ingress.Message {
	d.buffer = append(d.buffer, data...)

	var out []ingress.Message

	for {
		sync := indexOf(d.buffer, SyncByte)
		if sync == -1 {
			d.buffer = d.buffer[:0]
			break
		}
		if sync > 0 {
			d.buffer = d.buffer[sync:]
		}
		if len(d.buffer) < 2 {
			break
		}

		msgType := d.buffer[1]
		payloadLen := payloadLength(msgType)
		if payloadLen == 0 {
			d.logger.WithField("message_type", fmt.Sprintf("0x%02x", msgType)).Debug("beast: unknown message type, resyncing")
			d.buffer = d.buffer[1:]
			continue
		}

		total, consumed, ok := unescapeFrame(d.buffer, payloadLen)
		if !ok {
			break // incomplete frame, wait for more data
		}

		if msgType == ModeS || msgType == ModeSLong {
			out = append(out, ingress.Message{
				Timestamp: d.counterToUnix(total[2:8]),
				Frame:     hex.EncodeToString(total[9:]),
			})
		}

		d.buffer = d.buffer[consumed:]
	}

	if len(d.buffer) > 2048 {
		d.buffer = d.buffer[:0]
	}

	return out
}

func (d *Decoder) counterToUnix(counterBytes []byte) float64 {
	var counter uint64
	for _, b := range counterBytes {
		counter = (counter << 8) | uint64(b)
	}
	const hz = 12_000_000
	return float64(d.epoch.Unix()) + float64(counter)/hz
}

func payloadLength(msgType byte) int {
	switch msgType {
	case ModeAC, ModeStatus:
		return 2
	case ModeS:
		return 7
	case ModeSLong:
		return 14
	default:
		return 0
	}
}

// unescapeFrame scans d.buffer for a complete header (sync+type+6-byte
// counter+signal, all 0x1A-escaped) plus payloadLen further unescaped
// payload bytes. Returns the unescaped frame, the number of raw buffer
// bytes it consumed, and whether a complete frame was found.
func unescapeFrame(buf []byte, payloadLen int) (frame []byte, consumed int, ok bool) {
	const headerLen = 9 // sync, type, 6 timestamp bytes, signal
	needed := headerLen + payloadLen

	out := make([]byte, 0, needed)
	i := 0
	for len(out) < needed {
		if i >= len(buf) {
			return nil, 0, false
		}
		b := buf[i]
		if b == SyncByte && len(out) > 0 {
			// An escaped 0x1A is always doubled; a lone one starts the next
			// frame and means this one is (unexpectedly) truncated.
			if i+1 >= len(buf) {
				return nil, 0, false
			}
			if buf[i+1] != SyncByte {
				return nil, 0, false
			}
			i++
		}
		out = append(out, buf[i])
		i++
	}
	return out, i, true
}

func indexOf(buf []byte, b byte) int {
	for i, v := range buf {
		if v == b {
			return i
		}
	}
	return -1
}
