package modes

import "strings"

// decodeCallsign decodes a BDS 0,8 identification ME payload (56 bits) into
// an 8-character callsign, space-padded per spec.md §4.4, trailing spaces
// trimmed. me is the ME payload only (the DF17/18 frame's bytes 4..11).
func decodeCallsign(me []byte) string {
	var out [8]byte
	for i := 0; i < 8; i++ {
		first := 9 + i*6
		c := bits(me, first, first+5)
		if int(c) >= len(ADSBCharset) {
			out[i] = '?'
			continue
		}
		out[i] = ADSBCharset[c]
	}
	return strings.TrimRight(string(out[:]), " ")
}
