package bookings

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Booking is the persisted record produced by the booking wizard's final
// step. Guests book without an account, so UserID is nullable; demographic
// fields are captured on the record itself and fall back to the linked
// user account during analytics aggregation.
type Booking struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`

	// Person fields
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `gorm:"not null" json:"last_name"`
	Email     string `gorm:"index;not null" json:"email"`
	Phone     string `gorm:"not null" json:"phone"`

	// Demographics (optional, snake_case category values; Age may be a
	// range string like "25-34" / "65+" or a numeric string like "37")
	Gender     string `json:"gender,omitempty"`
	Race       string `json:"race,omitempty"`
	Education  string `json:"education,omitempty"`
	Profession string `json:"profession,omitempty"`
	Age        string `json:"age,omitempty"`

	// Scheduling fields
	Date            *time.Time `gorm:"type:date;index" json:"date,omitempty"`
	TimeSlot        string     `gorm:"type:varchar(10)" json:"time_slot"`
	DurationMinutes int        `json:"duration_minutes"`
	Location        string     `gorm:"type:varchar(50);index" json:"location"`
	GroupSize       int        `gorm:"not null;default:1;check:group_size BETWEEN 1 AND 4" json:"group_size"`
	Amount          float64    `gorm:"not null;default:0" json:"amount"`

	// Seat guest names, comma-joined in seat order
	SeatNames string `gorm:"type:text" json:"seat_names,omitempty"`

	// Freeform
	BookingReason string `gorm:"type:text" json:"booking_reason,omitempty"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`

	// Admin lifecycle
	Status        Status `gorm:"type:varchar(20);default:'CONFIRMED'" json:"status"`
	ChamberNumber *int   `json:"chamber_number,omitempty"`
	SessionNotes  string `gorm:"type:text" json:"session_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User *UserRef `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// UserRef mirrors the users.User columns the aggregator needs for its
// profile fallback. Declared here (same table) to avoid a package cycle
// between bookings and users.
type UserRef struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	Gender      string     `json:"gender,omitempty"`
	Race        string     `json:"race,omitempty"`
	Education   string     `json:"education,omitempty"`
	Profession  string     `json:"profession,omitempty"`
	Age         string     `json:"age,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName points UserRef at the users table
func (UserRef) TableName() string {
	return "users"
}

// SeatNameList splits the stored seat names back into seat order
func (b *Booking) SeatNameList() []string {
	if b.SeatNames == "" {
		return nil
	}
	parts := strings.Split(b.SeatNames, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// SetSeatNames stores seat names comma-joined in seat order
func (b *Booking) SetSeatNames(names []string) {
	b.SeatNames = strings.Join(names, ",")
}

// HasDate reports whether the booking carries a usable calendar date
func (b *Booking) HasDate() bool {
	return b.Date != nil && !b.Date.IsZero()
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}
