package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is an authenticated account. The demographic fields double as the
// profile fallback for booking analytics: when a booking record carries no
// value for a demographic, the aggregator resolves it from the booker's
// account.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'USER'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string    `json:"phone"`

	// Demographic profile (optional, snake_case category values)
	Gender      string     `json:"gender,omitempty"`
	Race        string     `json:"race,omitempty"`
	Education   string     `json:"education,omitempty"`
	Profession  string     `json:"profession,omitempty"`
	Age         string     `json:"age,omitempty"` // range ("25-34", "65+") or numeric string
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleAdmin):
		return true
	default:
		return false
	}
}
