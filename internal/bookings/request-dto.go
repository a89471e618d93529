package bookings

// BookingListQuery carries admin list filters from query parameters
type BookingListQuery struct {
	Status   string `form:"status"`
	Location string `form:"location"`
	Email    string `form:"email"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// AdminUpdateRequest covers the fields an admin may change after a session
type AdminUpdateRequest struct {
	Status        *string  `json:"status,omitempty"`
	ChamberNumber *int     `json:"chamber_number,omitempty" binding:"omitempty,min=1"`
	SessionNotes  *string  `json:"session_notes,omitempty"`
	Amount        *float64 `json:"amount,omitempty" binding:"omitempty,min=0"`
}

// BulkDeleteRequest lists booking IDs for batch removal
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}
