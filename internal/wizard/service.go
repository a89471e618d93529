package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chamber/internal/bookings"
	"chamber/internal/locations"
	"chamber/pkg/logger"

	"github.com/google/uuid"
)

// ErrSubmitFailed hides datastore details from the visitor; the cause is
// logged server-side.
var ErrSubmitFailed = errors.New("could not complete the booking, please try again")

// Service drives wizard sessions: every call loads the session, applies
// one machine action, and persists the result.
type Service interface {
	Start(ctx context.Context, userID *uuid.UUID) (*Machine, error)
	Get(ctx context.Context, sessionID uuid.UUID) (*Machine, error)
	UpdateForm(ctx context.Context, sessionID uuid.UUID, req UpdateFormRequest) (*Machine, error)
	Advance(ctx context.Context, sessionID uuid.UUID) (*Machine, error)
	Back(ctx context.Context, sessionID uuid.UUID) (*Machine, error)
	SetGroupSize(ctx context.Context, sessionID uuid.UUID, size int) (*Machine, error)
	ToggleSeat(ctx context.Context, sessionID uuid.UUID, seatID int) (*Machine, error)
	SetSeatName(ctx context.Context, sessionID uuid.UUID, seatID int, name string) (*Machine, error)
	Submit(ctx context.Context, sessionID uuid.UUID) (*Machine, *bookings.Booking, error)
}

type service struct {
	store           Store
	bookingService  bookings.Service
	locationService locations.Service
	now             func() time.Time
}

func NewService(store Store, bookingService bookings.Service, locationService locations.Service) Service {
	return &service{
		store:           store,
		bookingService:  bookingService,
		locationService: locationService,
		now:             time.Now,
	}
}

func (s *service) Start(ctx context.Context, userID *uuid.UUID) (*Machine, error) {
	machine := NewMachine(userID == nil, userID)
	if err := s.store.Save(ctx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

func (s *service) Get(ctx context.Context, sessionID uuid.UUID) (*Machine, error) {
	return s.store.Get(ctx, sessionID)
}

func (s *service) UpdateForm(ctx context.Context, sessionID uuid.UUID, req UpdateFormRequest) (*Machine, error) {
	return s.withSession(ctx, sessionID, func(m *Machine) error {
		if m.Step == StepSubmitted {
			return ErrAlreadySubmitted
		}
		applyFormUpdate(&m.Form, req)
		m.touch()
		return nil
	})
}

func (s *service) Advance(ctx context.Context, sessionID uuid.UUID) (*Machine, error) {
	env, err := s.guardEnv(ctx)
	if err != nil {
		return nil, err
	}
	return s.withSession(ctx, sessionID, func(m *Machine) error {
		return m.Advance(env)
	})
}

func (s *service) Back(ctx context.Context, sessionID uuid.UUID) (*Machine, error) {
	return s.withSession(ctx, sessionID, func(m *Machine) error {
		return m.Back()
	})
}

func (s *service) SetGroupSize(ctx context.Context, sessionID uuid.UUID, size int) (*Machine, error) {
	return s.withSession(ctx, sessionID, func(m *Machine) error {
		return m.SetGroupSize(size)
	})
}

func (s *service) ToggleSeat(ctx context.Context, sessionID uuid.UUID, seatID int) (*Machine, error) {
	return s.withSession(ctx, sessionID, func(m *Machine) error {
		return m.ToggleSeat(seatID)
	})
}

func (s *service) SetSeatName(ctx context.Context, sessionID uuid.UUID, seatID int, name string) (*Machine, error) {
	return s.withSession(ctx, sessionID, func(m *Machine) error {
		return m.SetSeatName(seatID, name)
	})
}

// Submit re-runs the seating guard, assembles the booking record and hands
// it to the booking service (which owns the schema-migration retry and the
// confirmation email). A failed persist keeps the session exactly where it
// was so the visitor can retry.
func (s *service) Submit(ctx context.Context, sessionID uuid.UUID) (*Machine, *bookings.Booking, error) {
	machine, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if machine.Step == StepSubmitted {
		return machine, nil, ErrAlreadySubmitted
	}
	if machine.Step != StepSeatingOptions {
		verr := newValidationError("seating_options")
		verr.Fields["step"] = "complete the earlier steps first"
		return machine, nil, verr
	}

	if err := machine.Validate(StepSeatingOptions, GuardEnv{Now: s.now()}); err != nil {
		// Persist the seat error flags the guard just set
		if saveErr := s.store.Save(ctx, machine); saveErr != nil {
			logger.GetDefault().ErrorWithContext(ctx, "failed to save wizard session", saveErr, map[string]interface{}{
				"session_id": sessionID.String(),
			})
		}
		return machine, nil, err
	}

	booking, err := s.assembleBooking(machine)
	if err != nil {
		verr := newValidationError("booking_details")
		verr.Fields["date"] = "enter a valid date"
		return machine, nil, verr
	}

	if err := s.bookingService.CreateBooking(ctx, booking); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "wizard submission failed", err, map[string]interface{}{
			"session_id": sessionID.String(),
		})
		return machine, nil, ErrSubmitFailed
	}

	machine.Step = StepSubmitted
	machine.touch()
	if err := s.store.Save(ctx, machine); err != nil {
		// The booking exists; a stale session is the lesser problem
		logger.GetDefault().ErrorWithContext(ctx, "failed to save submitted wizard session", err, map[string]interface{}{
			"session_id": sessionID.String(),
		})
	}
	return machine, booking, nil
}

// withSession is the load-act-save cycle shared by every non-submit action
func (s *service) withSession(ctx context.Context, sessionID uuid.UUID, action func(*Machine) error) (*Machine, error) {
	machine, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := action(machine); err != nil {
		return machine, err
	}
	if err := s.store.Save(ctx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

// guardEnv snapshots the externals guards need: the clock and the
// currently bookable locations.
func (s *service) guardEnv(ctx context.Context) (GuardEnv, error) {
	all, err := s.locationService.GetLocations(ctx)
	if err != nil {
		return GuardEnv{}, fmt.Errorf("failed to load locations: %w", err)
	}
	slugs := make([]string, 0, len(all))
	for _, location := range all {
		if location.Active && !location.ComingSoon {
			slugs = append(slugs, location.Slug)
		}
	}
	return GuardEnv{Now: s.now(), Locations: slugs}, nil
}

func (s *service) assembleBooking(m *Machine) (*bookings.Booking, error) {
	date, err := m.ParseDate()
	if err != nil {
		return nil, err
	}

	booking := &bookings.Booking{
		UserID:          m.UserID,
		FirstName:       strings.TrimSpace(m.Form.FirstName),
		LastName:        strings.TrimSpace(m.Form.LastName),
		Email:           strings.TrimSpace(m.Form.Email),
		Phone:           strings.TrimSpace(m.Form.Phone),
		Gender:          m.Form.Gender,
		Race:            m.Form.Race,
		Education:       m.Form.Education,
		Profession:      m.Form.Profession,
		Age:             m.Form.Age,
		Date:            &date,
		TimeSlot:        m.Form.TimeSlot,
		DurationMinutes: m.Form.DurationMinutes,
		Location:        m.Form.Location,
		GroupSize:       m.Form.GroupSize,
		Amount:          0,
		BookingReason:   strings.TrimSpace(m.Form.BookingReason),
		Notes:           strings.TrimSpace(m.Form.Notes),
		Status:          bookings.StatusConfirmed,
	}
	booking.SetSeatNames(m.SelectedSeatNames())
	return booking, nil
}

func applyFormUpdate(form *Form, req UpdateFormRequest) {
	if req.FirstName != nil {
		form.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		form.LastName = *req.LastName
	}
	if req.Email != nil {
		form.Email = *req.Email
	}
	if req.Phone != nil {
		form.Phone = *req.Phone
	}
	if req.Gender != nil {
		form.Gender = *req.Gender
	}
	if req.Race != nil {
		form.Race = *req.Race
	}
	if req.Education != nil {
		form.Education = *req.Education
	}
	if req.Profession != nil {
		form.Profession = *req.Profession
	}
	if req.Age != nil {
		form.Age = *req.Age
	}
	if req.Location != nil {
		form.Location = *req.Location
	}
	if req.Date != nil {
		form.Date = *req.Date
	}
	if req.TimeSlot != nil {
		form.TimeSlot = *req.TimeSlot
	}
	if req.DurationMinutes != nil {
		form.DurationMinutes = *req.DurationMinutes
	}
	if req.BookingReason != nil {
		form.BookingReason = *req.BookingReason
	}
	if req.Notes != nil {
		form.Notes = *req.Notes
	}
}
