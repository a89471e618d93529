package wizard

// UpdateFormRequest applies partial form edits; only non-nil fields change
type UpdateFormRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`

	Gender     *string `json:"gender,omitempty"`
	Race       *string `json:"race,omitempty"`
	Education  *string `json:"education,omitempty"`
	Profession *string `json:"profession,omitempty"`
	Age        *string `json:"age,omitempty"`

	Location        *string `json:"location,omitempty"`
	Date            *string `json:"date,omitempty"`
	TimeSlot        *string `json:"time_slot,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`

	BookingReason *string `json:"booking_reason,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// SeatNameRequest names one seat's guest
type SeatNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// GroupSizeRequest sets how many seats the party needs
type GroupSizeRequest struct {
	Size int `json:"size" binding:"required,min=1,max=4"`
}
