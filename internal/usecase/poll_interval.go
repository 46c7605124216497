package usecase

import (
	"time"

	"flightwatch-service/internal/domain/entity"
)

// FlightPhase is the lifecycle stage of a flight, derived fresh from the
// snapshot's schedule and actual fields each cycle. It is never persisted,
// so it can't drift from the underlying timestamps.
type FlightPhase int

const (
	PhaseFarPreDeparture FlightPhase = iota
	PhaseNearPreDeparture
	PhaseInitialClimb
	PhaseFinalApproach
	PhaseCruise
	PhaseArrived
)

func (p FlightPhase) String() string {
	switch p {
	case PhaseFarPreDeparture:
		return "far_pre_departure"
	case PhaseNearPreDeparture:
		return "near_pre_departure"
	case PhaseInitialClimb:
		return "initial_climb"
	case PhaseFinalApproach:
		return "final_approach"
	case PhaseCruise:
		return "cruise"
	default:
		return "arrived"
	}
}

// PhaseOf evaluates the phase table, first match wins. The table is
// exhaustive: exactly one phase matches for any snapshot and clock.
func PhaseOf(f *entity.Flight, now time.Time) FlightPhase {
	if now.Before(f.ScheduledOff.Add(-2 * time.Hour)) {
		return PhaseFarPreDeparture
	}
	if now.Before(f.ScheduledOff) {
		return PhaseNearPreDeparture
	}
	if f.ActualOn == nil && now.Before(f.ScheduledOn.Add(2*time.Hour)) {
		if now.Before(f.ScheduledOff.Add(5 * time.Minute)) {
			return PhaseInitialClimb
		}
		if f.ComputedProgress(now) > 80 {
			return PhaseFinalApproach
		}
		return PhaseCruise
	}
	return PhaseArrived
}

// PollInterval maps the flight's current phase to the delay before the
// next poll cycle.
func PollInterval(f *entity.Flight, now time.Time) time.Duration {
	switch PhaseOf(f, now) {
	case PhaseFarPreDeparture:
		return 30 * time.Minute
	case PhaseNearPreDeparture:
		return 5 * time.Minute
	case PhaseInitialClimb:
		return 2 * time.Minute
	case PhaseFinalApproach:
		return 3 * time.Minute
	case PhaseCruise:
		return 8 * time.Minute
	default:
		return 15 * time.Minute
	}
}
