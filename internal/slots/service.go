package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chamber/internal/bookings"
	"chamber/internal/locations"
	"chamber/internal/shared/constants"
	"chamber/internal/wizard"
	"chamber/pkg/cache"
)

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

// SlotAvailability is one bookable hour with its remaining seats
type SlotAvailability struct {
	TimeSlot       string `json:"time_slot"`
	Capacity       int    `json:"capacity"`
	SeatsTaken     int    `json:"seats_taken"`
	SeatsAvailable int    `json:"seats_available"`
	Full           bool   `json:"full"`
}

// DayAvailability is the full schedule for one date at one location
type DayAvailability struct {
	Date     string             `json:"date"`
	Location string             `json:"location"`
	Slots    []SlotAvailability `json:"slots"`
}

type Service interface {
	GetAvailability(ctx context.Context, date, location string) (*DayAvailability, error)
}

type service struct {
	bookingRepo     bookings.Repository
	locationService locations.Service
	cache           cache.Service
}

func NewService(bookingRepo bookings.Repository, locationService locations.Service, cacheService cache.Service) Service {
	return &service{
		bookingRepo:     bookingRepo,
		locationService: locationService,
		cache:           cacheService,
	}
}

// GetAvailability reports remaining seats per time slot so the wizard UI
// can grey out full hours. Cached briefly; a stale answer only risks a
// rejected submit, never a double-booked chamber.
func (s *service) GetAvailability(ctx context.Context, date, location string) (*DayAvailability, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if location == "" {
		location = locations.DefaultSlug
	}

	site, err := s.locationService.GetLocation(ctx, location)
	if err != nil {
		return nil, err
	}

	var availability DayAvailability
	cacheKey := constants.BuildSlotsKey(date + ":" + site.Slug)
	err = s.cache.GetOrSet(ctx, cacheKey, constants.TTL_SLOT_AVAILABILITY,
		func() (interface{}, error) {
			return s.buildAvailability(ctx, day, site)
		}, &availability)
	if err != nil {
		return nil, fmt.Errorf("failed to get slot availability: %w", err)
	}
	return &availability, nil
}

func (s *service) buildAvailability(ctx context.Context, day time.Time, site *locations.Location) (*DayAvailability, error) {
	taken, err := s.bookingRepo.GetSeatCountsForDate(ctx, site.Slug, day)
	if err != nil {
		return nil, err
	}

	capacity := site.ChamberCap
	if capacity <= 0 {
		capacity = wizard.MaxSeats
	}

	availability := &DayAvailability{
		Date:     day.Format("2006-01-02"),
		Location: site.Slug,
		Slots:    make([]SlotAvailability, 0, len(wizard.TimeSlots)),
	}
	for _, slot := range wizard.TimeSlots {
		seatsTaken := taken[slot]
		remaining := capacity - seatsTaken
		if remaining < 0 {
			remaining = 0
		}
		availability.Slots = append(availability.Slots, SlotAvailability{
			TimeSlot:       slot,
			Capacity:       capacity,
			SeatsTaken:     seatsTaken,
			SeatsAvailable: remaining,
			Full:           remaining == 0,
		})
	}
	return availability, nil
}
