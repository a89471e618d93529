package notifications

import (
	"encoding/json"
	"time"

	"chamber/internal/bookings"

	"github.com/google/uuid"
)

// EventType identifies the notification kind on the wire
type EventType string

const (
	EventBookingConfirmed EventType = "BOOKING_CONFIRMED"
)

// Event is the message published to Kafka (or handled in-process when
// Kafka is not configured). It carries everything the email template
// needs so the consumer never touches the database.
type Event struct {
	ID             uuid.UUID `json:"id"`
	Type           EventType `json:"type"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`

	BookingID       uuid.UUID `json:"booking_id"`
	Location        string    `json:"location"`
	Date            string    `json:"date"`
	TimeSlot        string    `json:"time_slot"`
	DurationMinutes int       `json:"duration_minutes"`
	GroupSize       int       `json:"group_size"`
	SeatNames       []string  `json:"seat_names,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewBookingConfirmedEvent builds the wire event for a persisted booking
func NewBookingConfirmedEvent(booking *bookings.Booking) *Event {
	event := &Event{
		ID:              uuid.New(),
		Type:            EventBookingConfirmed,
		RecipientEmail:  booking.Email,
		RecipientName:   booking.FirstName + " " + booking.LastName,
		BookingID:       booking.ID,
		Location:        booking.Location,
		TimeSlot:        booking.TimeSlot,
		DurationMinutes: booking.DurationMinutes,
		GroupSize:       booking.GroupSize,
		SeatNames:       booking.SeatNameList(),
		CreatedAt:       time.Now().UTC(),
	}
	if booking.Date != nil {
		event.Date = booking.Date.Format("Monday, January 2, 2006")
	}
	return event
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func EventFromJSON(data []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// GetPartitionKey keeps all of one recipient's notifications in order
func (e *Event) GetPartitionKey() string {
	return e.RecipientEmail
}
