package modes

// decodeID13Field reorders a 13-bit Mode A/C identity field (as carried in
// an AC13 altitude field when the M and Q bits are clear) into the bit order expected
// by modeAToModeC: the classic dump1090 Gillham-to-gray-to-mode-C pipeline,
// reproduced verbatim per spec.md's requirement that the NL and Gillham
// tables be bit-exact.
func decodeID13Field(id13Field uint32) uint32 {
	var hexGillham uint32
	if id13Field&0x1000 != 0 {
		hexGillham |= 0x0010
	} // Bit 12 = C1
	if id13Field&0x0800 != 0 {
		hexGillham |= 0x1000
	} // Bit 11 = A1
	if id13Field&0x0400 != 0 {
		hexGillham |= 0x0020
	} // Bit 10 = C2
	if id13Field&0x0200 != 0 {
		hexGillham |= 0x2000
	} // Bit 9 = A2
	if id13Field&0x0100 != 0 {
		hexGillham |= 0x0040
	} // Bit 8 = C4
	if id13Field&0x0080 != 0 {
		hexGillham |= 0x4000
	} // Bit 7 = A4
	if id13Field&0x0020 != 0 {
		hexGillham |= 0x0100
	} // Bit 5 = B1
	if id13Field&0x0010 != 0 {
		hexGillham |= 0x0001
	} // Bit 4 = D1 or Q
	if id13Field&0x0008 != 0 {
		hexGillham |= 0x0200
	} // Bit 3 = B2
	if id13Field&0x0004 != 0 {
		hexGillham |= 0x0002
	} // Bit 2 = D2
	if id13Field&0x0002 != 0 {
		hexGillham |= 0x0400
	} // Bit 1 = B4
	if id13Field&0x0001 != 0 {
		hexGillham |= 0x0004
	} // Bit 0 = D4
	return hexGillham
}

// modeAToModeC converts a Gillham-coded Mode A value (as produced by
// decodeID13Field) into a signed number of 100-foot increments, or reports
// the code as invalid. Illegal D-bit combinations and a zero hundreds digit
// are both rejected, matching the canonical dump1090 mode_ac.c table.
func modeAToModeC(modeA uint32) (hundredsOfFeet int32, ok bool) {
	if modeA&0xffff8889 != 0 || modeA&0x000000f0 == 0 {
		return 0, false
	}

	var fiveHundreds, oneHundreds uint32

	if modeA&0x0010 != 0 {
		oneHundreds ^= 0x007
	} // C1
	if modeA&0x0020 != 0 {
		oneHundreds ^= 0x003
	} // C2
	if modeA&0x0040 != 0 {
		oneHundreds ^= 0x001
	} // C4

	if oneHundreds&5 == 5 {
		oneHundreds ^= 0x002
	}
	if oneHundreds > 5 {
		return 0, false
	}

	if modeA&0x0002 != 0 {
		fiveHundreds ^= 0x0ff
	} // D2
	if modeA&0x0004 != 0 {
		fiveHundreds ^= 0x07f
	} // D4

	if modeA&0x1000 != 0 {
		fiveHundreds ^= 0x03f
	} // A1
	if modeA&0x2000 != 0 {
		fiveHundreds ^= 0x01f
	} // A2
	if modeA&0x4000 != 0 {
		fiveHundreds ^= 0x00f
	} // A4

	if modeA&0x0100 != 0 {
		fiveHundreds ^= 0x007
	} // B1
	if modeA&0x0200 != 0 {
		fiveHundreds ^= 0x003
	} // B2
	if modeA&0x0400 != 0 {
		fiveHundreds ^= 0x001
	} // B4

	if fiveHundreds&1 != 0 {
		oneHundreds = 6 - oneHundreds
	}

	return int32(fiveHundreds*5+oneHundreds) - 13, true
}

// decodeGillham100ft decodes a 13-bit AC13 field (or the 12-bit AC12 field
// with bit Q inserted as 0 by the caller) that carries Gillham Mode C data
// (M=0, Q=0) into feet. Returns ok=false when the encoding is illegal.
func decodeGillham100ft(ac13 uint32) (feet int, ok bool) {
	gillham := decodeID13Field(ac13)
	hundreds, valid := modeAToModeC(gillham)
	if !valid || hundreds < -12 {
		return 0, false
	}
	return int(hundreds) * 100, true
}
