package bookings

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSchemaMismatch signals that the bookings table is missing a column the
// insert needs. The service treats it as a one-shot trigger for an automatic
// schema migration followed by a single retry.
var ErrSchemaMismatch = errors.New("bookings: schema mismatch")

var ErrBookingNotFound = errors.New("booking not found")

type Repository interface {
	// Core booking operations
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteBookings(ctx context.Context, ids []uuid.UUID) (int64, error)

	// Admin listing
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// User booking operations
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)

	// Analytics feed: every booking with the owning user profile preloaded
	GetBookingsWithUsers(ctx context.Context) ([]Booking, error)

	// Slot availability: confirmed seats taken per time slot on a date
	GetSeatCountsForDate(ctx context.Context, location string, date time.Time) (map[string]int, error)

	// Schema self-healing for CreateBooking retries
	MigrateSchema(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	err := r.db.WithContext(ctx).Create(booking).Error
	if err != nil && isMissingColumn(err) {
		return errors.Join(ErrSchemaMismatch, err)
	}
	return err
}

// isMissingColumn matches the Postgres undefined-column failure (SQLSTATE
// 42703) that shows up when the table predates a newly added model field.
func isMissingColumn(err error) bool {
	msg := err.Error()
	if strings.Contains(msg, "SQLSTATE 42703") {
		return true
	}
	return strings.Contains(msg, "column") && strings.Contains(msg, "does not exist")
}

func (r *repository) MigrateSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Booking{})
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) UpdateBooking(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) DeleteBookings(ctx context.Context, ids []uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&Booking{})
	return result.RowsAffected, result.Error
}

func (r *repository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	baseQuery := r.db.WithContext(ctx).Model(&Booking{})
	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)
	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) GetBookingsWithUsers(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) GetSeatCountsForDate(ctx context.Context, location string, date time.Time) (map[string]int, error) {
	type slotCount struct {
		TimeSlot string `gorm:"column:time_slot"`
		Seats    int    `gorm:"column:seats"`
	}

	var rows []slotCount
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Select("time_slot, COALESCE(SUM(group_size), 0) AS seats").
		Where("location = ?", location).
		Where("date = ?", date.Format("2006-01-02")).
		Where("status IN ?", []Status{StatusConfirmed, StatusCompleted}).
		Group("time_slot").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.TimeSlot] = row.Seats
	}
	return counts, nil
}

// applyFilters applies query filters to the GORM query
func (r *repository) applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.Location != "" {
		query = query.Where("location = ?", filters.Location)
	}

	if filters.Email != "" {
		query = query.Where("email = ?", strings.ToLower(filters.Email))
	}

	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("date >= ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			query = query.Where("date <= ?", dateTo)
		}
	}

	return query
}

// Helper function to calculate total pages
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
