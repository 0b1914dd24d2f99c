package modes

// Message is a fully decoded Mode S frame. DF selects which of the fields
// below are meaningful; fields outside the active DF's set are left zero.
type Message struct {
	DF   int
	ICAO ICAO

	// DF0/4/5/16/20/21: altitude-reply and identity-reply fields.
	Altitude    int
	HasAltitude bool
	Squawk      int
	HasSquawk   bool
	OnGround    bool // DF0/16 VS flag: true when the aircraft reports itself on the ground

	// DF11/17/18: capability / control field.
	Capability int

	// DF17/18: ADS-B extended squitter payload.
	TypeCode int
	ME       ME

	// DF20/21: Comm-B MB field, classified into one or both candidates.
	BDS50    BDS50
	HasBDS50 bool
	BDS60    BDS60
	HasBDS60 bool
}

// ME is the decoded 56-bit extended-squitter payload. Exactly one field is
// populated, selected by TypeCode per spec.md §3:
//
//	TC 1-4          -> Ident   (identification / category)
//	TC 5-8          -> Surface (BDS 0,6)
//	TC 9-18,20-22   -> Airborne (BDS 0,5)
//	TC 19           -> Velocity (BDS 0,9)
type ME struct {
	Ident    Ident
	Surface  BDS06
	Airborne BDS05
	Velocity BDS09
}

// Ident is the decoded ME payload of an aircraft identification message
// (TC 1-4): callsign plus the emitter category the type code encodes.
type Ident struct {
	Callsign string
	Category int
}
