package usecase

import (
	"fmt"
	"strings"

	"flightwatch-service/internal/domain/entity"
)

// delayThresholdMinutes suppresses noise from minor estimate jitter.
const delayThresholdMinutes = 10

// DetectChanges compares two successive snapshots of the same flight and
// returns the list of meaningful changes, in fixed rule order. It is pure:
// no I/O, no clock. All matched rules contribute to one combined message;
// no rule suppresses another.
func DetectChanges(prev, curr *entity.Flight) []entity.FlightChange {
	var changes []entity.FlightChange

	if prev.Status != curr.Status {
		changes = append(changes, entity.FlightChange{
			Type: entity.ChangeStatus,
			Text: fmt.Sprintf("Status: %s", curr.Status),
		})
	}

	if abs(delayOrZero(prev.DepartureDelay)-delayOrZero(curr.DepartureDelay)) > delayThresholdMinutes {
		changes = append(changes, entity.FlightChange{
			Type: entity.ChangeDepartureDelay,
			Text: fmt.Sprintf("Departure delay: %d minutes", delayOrZero(curr.DepartureDelay)),
		})
	}

	if curr.GateOrigin != nil && !equalStringPtr(prev.GateOrigin, curr.GateOrigin) {
		changes = append(changes, entity.FlightChange{
			Type: entity.ChangeGate,
			Text: fmt.Sprintf("Gate changed to: %s", *curr.GateOrigin),
		})
	}

	if prev.ActualOff == nil && curr.ActualOff != nil {
		changes = append(changes, entity.FlightChange{
			Type: entity.ChangeDeparted,
			Text: "✈️ Flight has taken off!",
		})
	}

	if prev.ActualOn == nil && curr.ActualOn != nil {
		changes = append(changes, entity.FlightChange{
			Type: entity.ChangeArrived,
			Text: "🛬 Flight has landed!",
		})
	}

	if !prev.Cancelled && curr.Cancelled {
		changes = append(changes, entity.FlightChange{
			Type: entity.ChangeCancelled,
			Text: "❌ Flight cancelled",
		})
	}

	if !prev.Diverted && curr.Diverted {
		changes = append(changes, entity.FlightChange{
			Type: entity.ChangeDiverted,
			Text: fmt.Sprintf("🚨 Flight diverted to %s (%s)", curr.DestinationIata, curr.DestinationName),
		})
	}

	// Decile crossings only count while airborne, and never at 100%.
	if curr.ActualOff != nil && curr.ActualOn == nil &&
		prev.ProgressPercent != nil && curr.ProgressPercent != nil {
		oldTens := *prev.ProgressPercent / 10
		newTens := *curr.ProgressPercent / 10
		if oldTens != newTens && *curr.ProgressPercent != 100 {
			changes = append(changes, entity.FlightChange{
				Type: entity.ChangeProgress,
				Text: fmt.Sprintf("🔄 Flight progress: %d%%\n%s", *curr.ProgressPercent, ProgressBar(*curr.ProgressPercent)),
			})
		}
	}

	return changes
}

// ProgressBar renders a 10-segment bar, filled count = round(percent/10).
func ProgressBar(percent int) string {
	filled := (percent + 5) / 10
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return fmt.Sprintf("`%s%s` %d%%", strings.Repeat("█", filled), strings.Repeat("░", 10-filled), percent)
}

func delayOrZero(d *int) int {
	if d == nil {
		return 0
	}
	return *d
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
