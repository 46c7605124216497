package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// PositionProvider looks up a live state vector by callsign. Returns
// (nil, nil) when the flight is not currently visible to the feed.
type PositionProvider interface {
	FlightState(ctx context.Context, callsign string) (*entity.LivePosition, error)
}
