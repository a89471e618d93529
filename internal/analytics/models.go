package analytics

import "errors"

// ErrInvalidRequest marks a malformed or unknown analytics request; the
// controller maps it to HTTP 400.
var ErrInvalidRequest = errors.New("invalid analytics request")

// Request selects one grouped summary over the booking records
type Request struct {
	Type        string `json:"type" binding:"required"`
	Period      string `json:"period,omitempty"`
	Demographic string `json:"demographic,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Request types
const (
	TypeByTimePeriod  = "byTimePeriod"
	TypeByDemographic = "byDemographic"
	TypeByLocation    = "byLocation"
	TypeRevenue       = "revenue"
	TypeSummary       = "summary"
)

// Time periods
const (
	PeriodDay     = "day"
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

// Demographic fields
const (
	DemographicGender     = "gender"
	DemographicRace       = "race"
	DemographicEducation  = "education"
	DemographicProfession = "profession"
	DemographicAge        = "age"
)

// NotSpecified is the grouping key for bookings missing a demographic
// value on both the booking and the linked user profile.
const NotSpecified = "not_specified"

// AllLocations disables the revenue location filter
const AllLocations = "all"

// Summary is the overall rollup across every booking
type Summary struct {
	TotalBookings       int     `json:"totalBookings"`
	TotalRevenue        float64 `json:"totalRevenue"`
	AverageBookingValue float64 `json:"averageBookingValue"`
}

// Validate checks the request shape before any data is fetched
func (r *Request) Validate() error {
	switch r.Type {
	case TypeByTimePeriod:
		if !isValidPeriod(r.Period) {
			return ErrInvalidRequest
		}
	case TypeByDemographic:
		if !isValidDemographic(r.Demographic) {
			return ErrInvalidRequest
		}
	case TypeRevenue:
		if !isValidPeriod(r.Period) {
			return ErrInvalidRequest
		}
	case TypeByLocation, TypeSummary:
		// no parameters
	default:
		return ErrInvalidRequest
	}
	return nil
}

func isValidPeriod(period string) bool {
	switch period {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}

func isValidDemographic(field string) bool {
	switch field {
	case DemographicGender, DemographicRace, DemographicEducation, DemographicProfession, DemographicAge:
		return true
	}
	return false
}
