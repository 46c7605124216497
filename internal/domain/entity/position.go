package entity

// LivePosition is a live state vector for an airborne flight, as reported
// by a surveillance feed. Altitude is barometric metres, velocity m/s.
type LivePosition struct {
	Callsign     string
	BaroAltitude *float64
	Velocity     *float64
	OnGround     bool
}
