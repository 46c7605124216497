package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	gorm.Model
	ID        uint           `gorm:"primaryKey"`
	Iata      string         `gorm:"column:iata_code;unique"`
	Icao      string         `gorm:"column:icao_code;unique"`
	Name      string         `gorm:"column:name"`
	City      string         `gorm:"column:city"`
	TzName    string         `gorm:"column:tz_name"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// GetByIata finds an airport by IATA code
func (r *GormAirportRepository) GetByIata(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).Unscoped().Where("iata_code = ?", code).First(&airport)

	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.Airport{
		ID:        airport.ID,
		Iata:      airport.Iata,
		Icao:      airport.Icao,
		Name:      airport.Name,
		City:      airport.City,
		TzName:    airport.TzName,
		CreatedAt: airport.CreatedAt,
		UpdatedAt: airport.UpdatedAt,
		DeletedAt: airport.DeletedAt,
	}, nil
}
