// internal/domain/entity/flight.go
package entity

import (
	"time"
)

// Flight is the recorded state of one tracked flight. Identity and schedule
// fields are written once at creation; the poll loop only touches the
// mutable observation fields (see FlightUpdate).
type Flight struct {
	ID              string `bson:"_id,omitempty"`
	FAFlightID      string `bson:"faFlightId"` // provider flight id - unique index
	Ident           string `bson:"ident"`
	OriginIata      string `bson:"originIata"`
	OriginName      string `bson:"originName"`
	DestinationIata string `bson:"destinationIata"`
	DestinationName string `bson:"destinationName"`

	ScheduledOut time.Time `bson:"scheduledOut"`
	ScheduledOff time.Time `bson:"scheduledOff"`
	ScheduledOn  time.Time `bson:"scheduledOn"`
	ScheduledIn  time.Time `bson:"scheduledIn"`

	EstimatedOut *time.Time `bson:"estimatedOut,omitempty"`
	EstimatedOff *time.Time `bson:"estimatedOff,omitempty"`
	EstimatedOn  *time.Time `bson:"estimatedOn,omitempty"`
	EstimatedIn  *time.Time `bson:"estimatedIn,omitempty"`

	ActualOut *time.Time `bson:"actualOut,omitempty"`
	ActualOff *time.Time `bson:"actualOff,omitempty"`
	ActualOn  *time.Time `bson:"actualOn,omitempty"`
	ActualIn  *time.Time `bson:"actualIn,omitempty"`

	Status         string `bson:"status"`
	DepartureDelay *int   `bson:"departureDelay,omitempty"` // minutes, signed
	ArrivalDelay   *int   `bson:"arrivalDelay,omitempty"`   // minutes, signed
	Cancelled      bool   `bson:"cancelled"`
	Diverted       bool   `bson:"diverted"`

	ProgressPercent *int `bson:"progressPercent,omitempty"`

	GateOrigin          *string `bson:"gateOrigin,omitempty"`
	GateDestination     *string `bson:"gateDestination,omitempty"`
	TerminalOrigin      *string `bson:"terminalOrigin,omitempty"`
	TerminalDestination *string `bson:"terminalDestination,omitempty"`

	ChannelID   string `bson:"channelId"`
	TrackingSeq int    `bson:"trackingSeq"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// IsTerminal reports whether the flight is done being tracked: it has
// arrived at the gate or was cancelled. Terminal flights are never polled
// again.
func (f *Flight) IsTerminal() bool {
	return f.ActualIn != nil || f.Cancelled
}

// ComputedProgress estimates how far through its scheduled block the
// flight is, as a percentage of the scheduledOff..scheduledOn span.
// Clamped to [0, 100]; 0 when the schedule is degenerate.
func (f *Flight) ComputedProgress(now time.Time) int {
	duration := f.ScheduledOn.Sub(f.ScheduledOff)
	if duration <= 0 {
		return 0
	}
	elapsed := now.Sub(f.ScheduledOff)
	if elapsed < 0 {
		return 0
	}
	percent := int(elapsed * 100 / duration)
	if percent > 100 {
		percent = 100
	}
	return percent
}

// FlightUpdate carries the mutable observation fields the poll loop is
// allowed to write back. Identity, route and schedule fields are never
// part of an update.
type FlightUpdate struct {
	Status          string
	DepartureDelay  *int
	ArrivalDelay    *int
	ActualOut       *time.Time
	ActualOff       *time.Time
	ActualOn        *time.Time
	ActualIn        *time.Time
	Cancelled       bool
	Diverted        bool
	GateOrigin      *string
	ProgressPercent *int
}

// UpdateFrom builds the persistable update from a freshly fetched snapshot.
func UpdateFrom(fetched *Flight) FlightUpdate {
	return FlightUpdate{
		Status:          fetched.Status,
		DepartureDelay:  fetched.DepartureDelay,
		ArrivalDelay:    fetched.ArrivalDelay,
		ActualOut:       fetched.ActualOut,
		ActualOff:       fetched.ActualOff,
		ActualOn:        fetched.ActualOn,
		ActualIn:        fetched.ActualIn,
		Cancelled:       fetched.Cancelled,
		Diverted:        fetched.Diverted,
		GateOrigin:      fetched.GateOrigin,
		ProgressPercent: fetched.ProgressPercent,
	}
}
