package bookings

// BookingListResponse wraps a paginated admin listing
type BookingListResponse struct {
	Bookings   []Booking      `json:"bookings"`
	Pagination PaginationInfo `json:"pagination"`
}

type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// BulkDeleteResponse reports how many rows the batch removal hit
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
