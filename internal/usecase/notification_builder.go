package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

const (
	metresToFeet  = 3.28084
	mpsToKnots    = 1.943844
	timeFormatTz  = "15:04 MST"
	timeFormatUTC = "15:04 UTC"
)

// NotificationBuilder composes the combined change message for one poll
// cycle. Departure and arrival lines get the event time in airport-local
// time when the airport is known; progress lines get a live altitude and
// speed readout when a position feed is wired in. Every enrichment is
// best-effort: a failed lookup degrades the line, never drops the message.
type NotificationBuilder struct {
	airportRepo repository.AirportRepository
	positions   repository.PositionProvider
	logger      logger.Logger
}

// NewNotificationBuilder creates a new notification builder. positions may
// be nil, in which case progress lines carry no live readout.
func NewNotificationBuilder(
	airportRepo repository.AirportRepository,
	positions repository.PositionProvider,
	logger logger.Logger,
) *NotificationBuilder {
	return &NotificationBuilder{
		airportRepo: airportRepo,
		positions:   positions,
		logger:      logger,
	}
}

// Compose renders the single message for a non-empty change list.
func (b *NotificationBuilder) Compose(ctx context.Context, flight *entity.Flight, changes []entity.FlightChange) string {
	lines := make([]string, 0, len(changes))
	for _, change := range changes {
		line := change.Text
		switch change.Type {
		case entity.ChangeDeparted:
			if flight.ActualOff != nil {
				line += fmt.Sprintf(" (%s)", b.localTime(ctx, flight.OriginIata, *flight.ActualOff))
			}
		case entity.ChangeArrived:
			if flight.ActualOn != nil {
				line += fmt.Sprintf(" (%s)", b.localTime(ctx, flight.DestinationIata, *flight.ActualOn))
			}
		case entity.ChangeProgress:
			if readout := b.liveReadout(ctx, flight.Ident); readout != "" {
				line += "\n" + readout
			}
		}
		lines = append(lines, line)
	}

	return fmt.Sprintf("🔔 *%s* (%s → %s)\n%s",
		flight.Ident, flight.OriginIata, flight.DestinationIata, strings.Join(lines, "\n"))
}

// localTime renders t in the airport's timezone, falling back to UTC when
// the airport or its zone can't be resolved.
func (b *NotificationBuilder) localTime(ctx context.Context, iata string, t time.Time) string {
	if b.airportRepo == nil {
		return t.UTC().Format(timeFormatUTC)
	}

	airport, err := b.airportRepo.GetByIata(ctx, iata)
	if err != nil {
		b.logger.Warn("Airport lookup failed, using UTC", "iata", iata, "error", err)
		return t.UTC().Format(timeFormatUTC)
	}

	location, err := time.LoadLocation(airport.TzName)
	if err != nil {
		b.logger.Warn("Unknown airport timezone, using UTC", "iata", iata, "tz", airport.TzName, "error", err)
		return t.UTC().Format(timeFormatUTC)
	}

	return t.In(location).Format(timeFormatTz)
}

// liveReadout fetches a live state vector for the flight and renders an
// altitude/speed line, or "" when nothing usable is available.
func (b *NotificationBuilder) liveReadout(ctx context.Context, callsign string) string {
	if b.positions == nil {
		return ""
	}

	state, err := b.positions.FlightState(ctx, callsign)
	if err != nil {
		b.logger.Warn("Live position lookup failed", "callsign", callsign, "error", err)
		return ""
	}
	if state == nil || state.OnGround {
		return ""
	}

	parts := make([]string, 0, 2)
	if state.BaroAltitude != nil {
		parts = append(parts, fmt.Sprintf("%d ft", int(math.Round(*state.BaroAltitude*metresToFeet))))
	}
	if state.Velocity != nil {
		parts = append(parts, fmt.Sprintf("%d kts", int(math.Round(*state.Velocity*mpsToKnots))))
	}
	if len(parts) == 0 {
		return ""
	}
	return "📡 " + strings.Join(parts, " · ")
}
