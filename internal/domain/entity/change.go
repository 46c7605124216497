package entity

// ChangeType classifies a detected difference between two flight snapshots.
type ChangeType string

const (
	ChangeStatus         ChangeType = "status"
	ChangeDepartureDelay ChangeType = "departure_delay"
	ChangeGate           ChangeType = "gate"
	ChangeDeparted       ChangeType = "departed"
	ChangeArrived        ChangeType = "arrived"
	ChangeCancelled      ChangeType = "cancelled"
	ChangeDiverted       ChangeType = "diverted"
	ChangeProgress       ChangeType = "progress"
)

// FlightChange is one detected change, with a rendered message line.
// All changes found in a single poll cycle go out as one combined message.
type FlightChange struct {
	Type ChangeType
	Text string
}
