package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Step identifies a wizard screen. Steps advance strictly in order; only
// Submit can reach StepSubmitted.
type Step string

const (
	StepGuestInfo      Step = "GUEST_INFO"
	StepSelectLocation Step = "SELECT_LOCATION"
	StepBookingDetails Step = "BOOKING_DETAILS"
	StepSeatingOptions Step = "SEATING_OPTIONS"
	StepSubmitted      Step = "SUBMITTED"
)

// stepOrder defines forward traversal; Submitted is reachable only through
// Submit.
var stepOrder = []Step{
	StepGuestInfo,
	StepSelectLocation,
	StepBookingDetails,
	StepSeatingOptions,
}

var (
	ErrSessionNotFound  = errors.New("wizard session not found")
	ErrAlreadySubmitted = errors.New("wizard session already submitted")
	ErrSubmitRequired   = errors.New("seating is the last step; submit the booking to finish")
	ErrInvalidSeat      = errors.New("seat id must be between 1 and 4")
	ErrInvalidGroupSize = errors.New("group size must be between 1 and 4")
)

// Seat is one of the four chamber places for a session
type Seat struct {
	ID       int    `json:"id"`
	Selected bool   `json:"selected"`
	Name     string `json:"name"`
	Error    bool   `json:"error"`
}

// Form carries everything the wizard collects before submission
type Form struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Gender     string `json:"gender"`
	Race       string `json:"race"`
	Education  string `json:"education"`
	Profession string `json:"profession"`
	Age        string `json:"age"`

	Location        string `json:"location"`
	Date            string `json:"date"` // YYYY-MM-DD
	TimeSlot        string `json:"time_slot"`
	DurationMinutes int    `json:"duration_minutes"`
	GroupSize       int    `json:"group_size"`

	BookingReason string `json:"booking_reason"`
	Notes         string `json:"notes"`
}

// Machine is one wizard session. It is a plain value: every action mutates
// it atomically in memory and the caller persists the result, so a request
// either applies an action fully or not at all.
type Machine struct {
	SessionID uuid.UUID      `json:"session_id"`
	IsGuest   bool           `json:"is_guest"`
	UserID    *uuid.UUID     `json:"user_id,omitempty"`
	Step      Step           `json:"step"`
	Form      Form           `json:"form"`
	Seats     [MaxSeats]Seat `json:"seats"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewMachine starts a session. Guests begin at guest info; signed-in
// members skip straight to location selection. One seat is selected from
// the start so group size and seat count agree immediately.
func NewMachine(isGuest bool, userID *uuid.UUID) *Machine {
	m := &Machine{
		SessionID: uuid.New(),
		IsGuest:   isGuest,
		UserID:    userID,
		Step:      StepGuestInfo,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if !isGuest {
		m.Step = StepSelectLocation
	}
	for i := range m.Seats {
		m.Seats[i] = Seat{ID: i + 1}
	}
	m.Form.GroupSize = 1
	m.Seats[0].Selected = true
	return m
}

// firstStep is where Back stops: guests own the guest-info screen,
// members never see it.
func (m *Machine) firstStep() Step {
	if m.IsGuest {
		return StepGuestInfo
	}
	return StepSelectLocation
}

func stepIndex(step Step) int {
	for i, s := range stepOrder {
		if s == step {
			return i
		}
	}
	return -1
}

// GuardEnv supplies the externals guards depend on, so actions stay
// deterministic under test.
type GuardEnv struct {
	Now       time.Time
	Locations []string // bookable location slugs
}

// Advance validates the current step and moves forward on success. A
// failed guard returns a ValidationError and leaves the machine untouched.
func (m *Machine) Advance(env GuardEnv) error {
	switch m.Step {
	case StepSubmitted:
		return ErrAlreadySubmitted
	case StepSeatingOptions:
		return ErrSubmitRequired
	}

	if err := m.Validate(m.Step, env); err != nil {
		return err
	}

	m.Step = stepOrder[stepIndex(m.Step)+1]
	m.touch()
	return nil
}

// Back moves one step toward the start. Validation state is left alone so
// returning to a screen shows what the visitor last entered.
func (m *Machine) Back() error {
	if m.Step == StepSubmitted {
		return ErrAlreadySubmitted
	}
	if m.Step == m.firstStep() {
		return nil
	}
	m.Step = stepOrder[stepIndex(m.Step)-1]
	m.touch()
	return nil
}

// SetGroupSize selects exactly seats 1..n and deselects the rest. Stale
// error flags on deselected seats are cleared so they cannot resurface
// when the seat is re-added later.
func (m *Machine) SetGroupSize(n int) error {
	if n < 1 || n > MaxSeats {
		return ErrInvalidGroupSize
	}

	m.Form.GroupSize = n
	for i := range m.Seats {
		selected := i < n
		m.Seats[i].Selected = selected
		if !selected {
			m.Seats[i].Error = false
		}
	}
	m.autofillLeadSeat()
	m.touch()
	return nil
}

// ToggleSeat flips one seat's selection. Group size follows the selected
// count, except that deselecting the last seat leaves group size alone; a
// session never advertises a party of zero. A newly selected seat with no
// name yet is prefilled with the visitor's own name.
func (m *Machine) ToggleSeat(id int) error {
	if id < 1 || id > MaxSeats {
		return ErrInvalidSeat
	}

	seat := &m.Seats[id-1]
	seat.Selected = !seat.Selected
	if !seat.Selected {
		seat.Error = false
	} else if strings.TrimSpace(seat.Name) == "" {
		seat.Name = m.fullName()
	}

	if count := m.SelectedCount(); count > 0 {
		m.Form.GroupSize = count
	}
	m.touch()
	return nil
}

// SetSeatName records the guest name for a seat and clears its error flag
// when the name is usable.
func (m *Machine) SetSeatName(id int, name string) error {
	if id < 1 || id > MaxSeats {
		return ErrInvalidSeat
	}
	seat := &m.Seats[id-1]
	seat.Name = name
	if strings.TrimSpace(name) != "" {
		seat.Error = false
	}
	m.touch()
	return nil
}

// SelectedCount returns how many seats are currently selected
func (m *Machine) SelectedCount() int {
	count := 0
	for i := range m.Seats {
		if m.Seats[i].Selected {
			count++
		}
	}
	return count
}

// SelectedSeatNames returns the names of selected seats in seat order
func (m *Machine) SelectedSeatNames() []string {
	names := make([]string, 0, MaxSeats)
	for i := range m.Seats {
		if m.Seats[i].Selected {
			names = append(names, strings.TrimSpace(m.Seats[i].Name))
		}
	}
	return names
}

// autofillLeadSeat copies the visitor's own name onto seat 1 when it is
// selected and still blank.
func (m *Machine) autofillLeadSeat() {
	seat := &m.Seats[0]
	if !seat.Selected || strings.TrimSpace(seat.Name) != "" {
		return
	}
	seat.Name = m.fullName()
}

func (m *Machine) fullName() string {
	return strings.TrimSpace(strings.TrimSpace(m.Form.FirstName) + " " + strings.TrimSpace(m.Form.LastName))
}

func (m *Machine) touch() {
	m.UpdatedAt = time.Now().UTC()
}

// ParseDate parses the form's calendar date
func (m *Machine) ParseDate() (time.Time, error) {
	date, err := time.Parse("2006-01-02", m.Form.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", m.Form.Date, err)
	}
	return date, nil
}
