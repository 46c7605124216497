package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents reference data for one airport, used to render
// notification timestamps in airport-local time.
type Airport struct {
	ID        uint
	Iata      string
	Icao      string
	Name      string
	City      string
	TzName    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
