package modes

// ADSBCharset is the 6-bit character set used by BDS 2,0 callsigns and
// BDS 0,8 identification messages: space, A-Z, 0-9.
const ADSBCharset = "@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_ !\"#$%&'()*+,-./0123456789:;<=>?"

// Downlink Format values this decoder understands.
const (
	DFShortAirAirSurveillance  = 0
	DFSurveillanceAltitude     = 4
	DFSurveillanceIdentity     = 5
	DFAllCallReply             = 11
	DFLongAirAirSurveillance   = 16
	DFExtendedSquitterADSB     = 17
	DFExtendedSquitterTisB     = 18
	DFCommBAltitude            = 20
	DFCommBIdentity            = 21
)

// Squawk digit layout after decodeSquawk has de-interleaved the DF5/DF21
// identity field: three bits per octal digit, A (most significant) to D.
const (
	squawkA4A2A1Shift = 9
	squawkB4B2B1Shift = 6
	squawkC4C2C1Shift = 3
	squawkD4D2D1Shift = 0
	squawkGroupMask   = 0x07

	squawkAMultiplier = 1000
	squawkBMultiplier = 100
	squawkCMultiplier = 10
	squawkDMultiplier = 1
)
