package database

import (
	"chamber/internal/bookings"
	"chamber/internal/locations"
	"chamber/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&locations.Location{},
		&bookings.Booking{},
	)
}
