// Package aggregator maintains the per-aircraft rolling snapshot described
// by spec.md §4.4: a map from ICAO address to the latest known values of
// that aircraft's observable state, updated field-by-field as messages
// arrive.
package aggregator

// Snapshot is the latest known values of one aircraft's observable state.
// Every field besides the two timestamps is optional and starts unset;
// pointer fields double as the "unset" marker and as the natural
// encoding/json omitempty representation for the JSON-lines egress.
type Snapshot struct {
	FirstTs float64
	LastTs  float64

	Callsign     *string
	Squawk       *int
	Latitude     *float64
	Longitude    *float64
	Altitude     *int
	GroundSpeed  *float64
	VerticalRate *int
	Track        *float64
	IAS          *int
	Mach         *float64
	Roll         *float64

	// OnGround and Emergency are derived flags supplementing spec.md's core
	// field set (see SPEC_FULL.md's supplemented-features section).
	OnGround  *bool
	Emergency *bool
}

func f64p(v float64) *float64 { return &v }
func ip(v int) *int           { return &v }
func sp(v string) *string     { return &v }
func bp(v bool) *bool         { return &v }
