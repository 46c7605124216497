package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight record operations.
//
// "Active" means the flight is still worth polling: not cancelled, not yet
// arrived at the gate, and with a scheduled takeoff between 4 hours ago
// and 24 hours from now.
type FlightRepository interface {
	FindActive(ctx context.Context, now time.Time) ([]*entity.Flight, error)
	// FindByID returns (nil, nil) when no record exists for the id.
	FindByID(ctx context.Context, id string) (*entity.Flight, error)
	// UpdateFields writes the mutable observation fields and returns the
	// updated record.
	UpdateFields(ctx context.Context, id string, update entity.FlightUpdate) (*entity.Flight, error)
	Insert(ctx context.Context, flight *entity.Flight) error
	// NextTrackingSeq returns the next display-ordering sequence number.
	NextTrackingSeq(ctx context.Context) (int, error)
}
