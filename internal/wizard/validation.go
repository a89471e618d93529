package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a failed step guard. Group names the screen the
// visitor has to fix; Fields maps field name to a human-readable problem.
type ValidationError struct {
	Group  string            `json:"group"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation failed for %s", e.Group)
	}
	parts := make([]string, 0, len(e.Fields))
	for field, problem := range e.Fields {
		parts = append(parts, field+": "+problem)
	}
	return fmt.Sprintf("validation failed for %s (%s)", e.Group, strings.Join(parts, "; "))
}

func newValidationError(group string) *ValidationError {
	return &ValidationError{Group: group, Fields: make(map[string]string)}
}

var validate = validator.New()

// guestInfoRules mirrors Form's identity fields with the binding rules the
// guest-info guard enforces.
type guestInfoRules struct {
	FirstName string `validate:"required,min=2"`
	LastName  string `validate:"required,min=2"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"required,min=10"`
}

// Validate runs the guard for one step against the current form. It only
// inspects; the sole mutation is setting seat error flags when the seating
// guard rejects.
func (m *Machine) Validate(step Step, env GuardEnv) error {
	switch step {
	case StepGuestInfo:
		return m.validateGuestInfo()
	case StepSelectLocation:
		return m.validateLocation(env)
	case StepBookingDetails:
		return m.validateBookingDetails(env)
	case StepSeatingOptions:
		return m.validateSeating()
	}
	return nil
}

func (m *Machine) validateGuestInfo() error {
	verr := newValidationError("guest_info")

	rules := guestInfoRules{
		FirstName: strings.TrimSpace(m.Form.FirstName),
		LastName:  strings.TrimSpace(m.Form.LastName),
		Email:     strings.TrimSpace(m.Form.Email),
		Phone:     strings.TrimSpace(m.Form.Phone),
	}
	if err := validate.Struct(rules); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fe := range fieldErrors {
				verr.Fields[toSnake(fe.Field())] = ruleMessage(fe)
			}
		} else {
			verr.Fields["form"] = err.Error()
		}
	}

	for field, check := range map[string]struct {
		value   string
		options []string
	}{
		"gender":     {m.Form.Gender, GenderOptions},
		"race":       {m.Form.Race, RaceOptions},
		"education":  {m.Form.Education, EducationOptions},
		"profession": {m.Form.Profession, ProfessionOptions},
		"age":        {m.Form.Age, AgeOptions},
	} {
		if !inOptions(check.value, check.options) {
			verr.Fields[field] = "select one of the listed options"
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (m *Machine) validateLocation(env GuardEnv) error {
	if inOptions(m.Form.Location, env.Locations) {
		return nil
	}
	verr := newValidationError("select_location")
	verr.Fields["location"] = "choose an available location"
	return verr
}

func (m *Machine) validateBookingDetails(env GuardEnv) error {
	verr := newValidationError("booking_details")

	date, err := m.ParseDate()
	if err != nil {
		verr.Fields["date"] = "enter a valid date"
	} else {
		today := time.Date(env.Now.Year(), env.Now.Month(), env.Now.Day(), 0, 0, 0, 0, time.UTC)
		if date.Before(today) {
			verr.Fields["date"] = "date cannot be in the past"
		}
	}

	if !isValidTimeSlot(m.Form.TimeSlot) {
		verr.Fields["time_slot"] = "choose one of the available time slots"
	}
	if !isValidDuration(m.Form.DurationMinutes) {
		verr.Fields["duration_minutes"] = "choose a 60, 90 or 120 minute session"
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// validateSeating requires a usable name on every selected seat. Offending
// seats get their error flag set so the UI can highlight them.
func (m *Machine) validateSeating() error {
	verr := newValidationError("seating_options")

	for i := range m.Seats {
		seat := &m.Seats[i]
		if !seat.Selected {
			continue
		}
		if strings.TrimSpace(seat.Name) == "" {
			seat.Error = true
			verr.Fields[fmt.Sprintf("seat_%d", seat.ID)] = "enter a name for this seat"
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "email":
		return "enter a valid email address"
	default:
		return "invalid value"
	}
}

// toSnake converts the exported rule field names back to form field names
func toSnake(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
