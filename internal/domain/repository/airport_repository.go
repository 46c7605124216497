package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport reference lookups
type AirportRepository interface {
	GetByIata(ctx context.Context, code string) (*entity.Airport, error)
}
