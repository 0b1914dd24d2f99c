package modes

// decodeSquawk decodes the 13-bit identity (IC) field of a DF5/DF21 frame
// (bits 20..32) into a 4-digit octal squawk code via the standard A/B/C/D
// bit-interleaving, grounded on internal/adsb/constants.go's squawk shift
// table.
func decodeSquawk(data []byte) int {
	// De-interleave the C1 A1 C2 A2 C4 A4 X B1 D1 B2 D2 B4 D4 field into
	// one octal digit per group (A, B, C, D from the top).
	g := decodeID13Field(bits(data, 20, 32))
	id := (g>>12&7)<<squawkA4A2A1Shift | (g>>8&7)<<squawkB4B2B1Shift |
		(g>>4&7)<<squawkC4C2C1Shift | (g&7)<<squawkD4D2D1Shift

	squawk := 0
	squawk += int((id>>squawkA4A2A1Shift)&squawkGroupMask) * squawkAMultiplier
	squawk += int((id>>squawkB4B2B1Shift)&squawkGroupMask) * squawkBMultiplier
	squawk += int((id>>squawkC4C2C1Shift)&squawkGroupMask) * squawkCMultiplier
	squawk += int((id>>squawkD4D2D1Shift)&squawkGroupMask) * squawkDMultiplier
	return squawk
}
