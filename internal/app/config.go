package app

// Config holds the application's run-time configuration, populated by the
// cobra flags in cmd/jet1090, matching spec.md §6's CLI surface exactly:
// --host, --port, --rtlsdr, --verbose, --output, --latlon, --interactive.
type Config struct {
	Host string
	Port int

	RTLSDR      bool
	DeviceIndex int

	Verbose bool

	Output string // JSON-lines dump path; empty disables Egress 2

	LatLon string // "lat,lon" or an ICAO airport code

	Interactive bool
}

// Default tuning constants for the RTL-SDR ingress path, mirroring the
// teacher's dump1090-style defaults.
const (
	DefaultFrequency  = 1090000000
	DefaultSampleRate = 2400000
	DefaultGain       = 0 // auto
)
