package analytics

import (
	"context"

	"chamber/internal/bookings"

	"gorm.io/gorm"
)

// Repository fetches the raw booking records the reducers run over
type Repository interface {
	GetBookingsWithUsers(ctx context.Context) ([]bookings.Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBookingsWithUsers(ctx context.Context) ([]bookings.Booking, error) {
	var records []bookings.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}
