package locations

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSlug is the first (and currently only) live chamber location.
const DefaultSlug = "atmos"

// Location is a physical chamber site. Bookings reference locations by slug
// so analytics keep working even if a site row is edited.
type Location struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug       string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name       string    `gorm:"not null" json:"name"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	Address    string    `json:"address,omitempty"`
	ChamberCap int       `gorm:"default:4" json:"chamber_capacity"`
	Active     bool      `gorm:"default:true;index" json:"active"`
	ComingSoon bool      `gorm:"default:false" json:"coming_soon"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Location) TableName() string {
	return "locations"
}
