package bookings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"chamber/internal/shared/constants"
	"chamber/pkg/cache"
	"chamber/pkg/logger"

	"github.com/google/uuid"
)

// Notifier receives confirmed bookings for delivery. Declared here so the
// notifications package can depend on bookings without a cycle.
type Notifier interface {
	NotifyBookingConfirmed(booking *Booking)
}

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*BookingListResponse, error)
	UpdateBooking(ctx context.Context, bookingID uuid.UUID, req AdminUpdateRequest) (*Booking, error)
	DeleteBookings(ctx context.Context, req BulkDeleteRequest) (*BulkDeleteResponse, error)
}

// service implements the Service interface
type service struct {
	repo     Repository
	cache    cache.Service
	notifier Notifier
}

// NewService creates a new booking service instance. notifier may be nil
// when outbound notifications are disabled.
func NewService(repo Repository, cacheService cache.Service, notifier Notifier) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		notifier: notifier,
	}
}

// CreateBooking persists a booking. If the insert fails because the table is
// missing a column, it runs an automatic schema migration and retries the
// insert exactly once; any other failure is returned as-is.
func (s *service) CreateBooking(ctx context.Context, booking *Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.Email = strings.ToLower(strings.TrimSpace(booking.Email))
	if booking.Status == "" {
		booking.Status = StatusConfirmed
	}

	err := s.repo.CreateBooking(ctx, booking)
	if errors.Is(err, ErrSchemaMismatch) {
		logger.LogSchemaMigration(ctx, err.Error())
		if migrateErr := s.repo.MigrateSchema(ctx); migrateErr != nil {
			return fmt.Errorf("failed to migrate bookings schema: %w", migrateErr)
		}
		err = s.repo.CreateBooking(ctx, booking)
	}
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	logger.LogBookingCreated(ctx, booking.ID.String(), booking.Email, booking.Location, booking.GroupSize)
	s.invalidateDerivedCaches(ctx)

	if s.notifier != nil {
		s.notifier.NotifyBookingConfirmed(booking)
	}
	return nil
}

func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.repo.GetBookingByID(ctx, bookingID)
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error) {
	if query.Status != "" && !Status(query.Status).IsValid() {
		return nil, fmt.Errorf("invalid status filter: %s", query.Status)
	}

	bookings, totalCount, err := s.repo.GetAllBookings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return s.buildListResponse(bookings, totalCount, query), nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*BookingListResponse, error) {
	bookings, totalCount, err := s.repo.GetUserBookings(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	return s.buildListResponse(bookings, totalCount, query), nil
}

func (s *service) UpdateBooking(ctx context.Context, bookingID uuid.UUID, req AdminUpdateRequest) (*Booking, error) {
	updates := make(map[string]interface{})

	if req.Status != nil {
		status := Status(strings.ToUpper(*req.Status))
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid status: %s", *req.Status)
		}
		updates["status"] = status
	}
	if req.ChamberNumber != nil {
		updates["chamber_number"] = *req.ChamberNumber
	}
	if req.SessionNotes != nil {
		updates["session_notes"] = *req.SessionNotes
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}

	if len(updates) == 0 {
		return nil, errors.New("no fields to update")
	}

	if err := s.repo.UpdateBooking(ctx, bookingID, updates); err != nil {
		return nil, err
	}
	s.invalidateDerivedCaches(ctx)

	return s.repo.GetBookingByID(ctx, bookingID)
}

func (s *service) DeleteBookings(ctx context.Context, req BulkDeleteRequest) (*BulkDeleteResponse, error) {
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid booking id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}

	deleted, err := s.repo.DeleteBookings(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to delete bookings: %w", err)
	}
	s.invalidateDerivedCaches(ctx)

	return &BulkDeleteResponse{Deleted: deleted}, nil
}

func (s *service) buildListResponse(bookings []Booking, totalCount int64, query BookingListQuery) *BookingListResponse {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	if bookings == nil {
		bookings = []Booking{}
	}
	return &BookingListResponse{
		Bookings: bookings,
		Pagination: PaginationInfo{
			Page:       page,
			Limit:      limit,
			TotalCount: totalCount,
			TotalPages: CalculateTotalPages(totalCount, limit),
		},
	}
}

// invalidateDerivedCaches drops cached analytics and slot availability after
// any write that changes what they report.
func (s *service) invalidateDerivedCaches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, pattern := range []string{
		constants.CACHE_KEY_ANALYTICS + ":*",
		constants.CACHE_KEY_SLOTS + ":*",
	} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			slog.Warn("cache invalidation failed", "pattern", pattern, "error", err)
		}
	}
}
