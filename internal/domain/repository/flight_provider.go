package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// FlightProvider fetches the current state of a flight from the external
// flight-data API, keyed by the provider's own flight id.
type FlightProvider interface {
	FetchFlightInfo(ctx context.Context, faFlightID string) (*entity.Flight, error)
}
