package analytics

import (
	"testing"
	"time"

	"chamber/internal/bookings"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestByTimePeriod(t *testing.T) {
	records := []bookings.Booking{
		{Date: datePtr(2026, time.March, 2)},  // Monday
		{Date: datePtr(2026, time.March, 4)},  // Wednesday, same week
		{Date: datePtr(2026, time.March, 8)},  // Sunday, next week
		{Date: datePtr(2026, time.April, 15)},
		{Date: nil}, // skipped
	}

	tests := []struct {
		name   string
		period string
		want   map[string]int
	}{
		{
			name:   "by day",
			period: PeriodDay,
			want: map[string]int{
				"2026-03-02": 1,
				"2026-03-04": 1,
				"2026-03-08": 1,
				"2026-04-15": 1,
			},
		},
		{
			name:   "weeks start on sunday",
			period: PeriodWeek,
			want: map[string]int{
				"2026-03-01": 2,
				"2026-03-08": 1,
				"2026-04-12": 1,
			},
		},
		{
			name:   "by month",
			period: PeriodMonth,
			want:   map[string]int{"2026-03": 3, "2026-04": 1},
		},
		{
			name:   "by quarter",
			period: PeriodQuarter,
			want:   map[string]int{"2026-Q1": 3, "2026-Q2": 1},
		},
		{
			name:   "by year",
			period: PeriodYear,
			want:   map[string]int{"2026": 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ByTimePeriod(records, tt.period))
		})
	}
}

func TestByTimePeriodQuarterBoundaries(t *testing.T) {
	records := []bookings.Booking{
		{Date: datePtr(2026, time.January, 1)},
		{Date: datePtr(2026, time.March, 31)},
		{Date: datePtr(2026, time.June, 30)},
		{Date: datePtr(2026, time.October, 1)},
		{Date: datePtr(2026, time.December, 31)},
	}

	want := map[string]int{"2026-Q1": 2, "2026-Q2": 1, "2026-Q4": 2}
	assert.Equal(t, want, ByTimePeriod(records, PeriodQuarter))
}

func TestByDemographic(t *testing.T) {
	uid := uuid.New()

	tests := []struct {
		name    string
		booking bookings.Booking
		field   string
		want    string
	}{
		{
			name:    "booking field wins",
			booking: bookings.Booking{Gender: "male", User: &bookings.UserRef{ID: uid, Gender: "female"}},
			field:   DemographicGender,
			want:    "Male",
		},
		{
			name:    "falls back to user profile",
			booking: bookings.Booking{User: &bookings.UserRef{ID: uid, Race: "asian"}},
			field:   DemographicRace,
			want:    "Asian",
		},
		{
			name:    "snake case becomes display label",
			booking: bookings.Booking{Education: "high_school"},
			field:   DemographicEducation,
			want:    "High School",
		},
		{
			name:    "whitespace only counts as missing",
			booking: bookings.Booking{Profession: "   "},
			field:   DemographicProfession,
			want:    NotSpecified,
		},
		{
			name:    "no value anywhere",
			booking: bookings.Booking{},
			field:   DemographicGender,
			want:    NotSpecified,
		},
		{
			name:    "unknown field",
			booking: bookings.Booking{Gender: "male"},
			field:   "shoe_size",
			want:    NotSpecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := ByDemographic([]bookings.Booking{tt.booking}, tt.field)
			assert.Equal(t, map[string]int{tt.want: 1}, counts)
		})
	}
}

func TestByDemographicAge(t *testing.T) {
	dob := time.Date(1990, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking bookings.Booking
		want    string
	}{
		{
			name:    "range string used verbatim",
			booking: bookings.Booking{Age: "25-34"},
			want:    "25-34",
		},
		{
			name:    "open ended range used verbatim",
			booking: bookings.Booking{Age: "65+"},
			want:    "65+",
		},
		{
			name:    "numeric value is bucketed",
			booking: bookings.Booking{Age: "42"},
			want:    "35-44",
		},
		{
			name:    "user profile age as fallback",
			booking: bookings.Booking{User: &bookings.UserRef{Age: "23"}},
			want:    "18-24",
		},
		{
			name:    "date of birth as last resort",
			booking: bookings.Booking{User: &bookings.UserRef{DateOfBirth: &dob}},
			want:    ageBucket(yearsSince(dob, time.Now())),
		},
		{
			name:    "nothing available",
			booking: bookings.Booking{},
			want:    NotSpecified,
		},
		{
			name:    "garbage age value",
			booking: bookings.Booking{Age: "young"},
			want:    NotSpecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := ByDemographic([]bookings.Booking{tt.booking}, DemographicAge)
			assert.Equal(t, map[string]int{tt.want: 1}, counts)
		})
	}
}

func TestAgeBucket(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{18, "18-24"},
		{24, "18-24"},
		{25, "25-34"},
		{34, "25-34"},
		{35, "35-44"},
		{44, "35-44"},
		{45, "45-54"},
		{54, "45-54"},
		{55, "55-64"},
		{64, "55-64"},
		{65, "65+"},
		{90, "65+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ageBucket(tt.age), "age %d", tt.age)
	}
}

func TestYearsSince(t *testing.T) {
	dob := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)

	// Day before the birthday within the year
	assert.Equal(t, 35, yearsSince(dob, time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)))
	// On the birthday
	assert.Equal(t, 36, yearsSince(dob, time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))

	// A leap-year DOB must not shift the birthday by a day in common years
	leapDOB := time.Date(2000, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 25, yearsSince(leapDOB, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, yearsSince(leapDOB, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)))
}

func TestByLocation(t *testing.T) {
	records := []bookings.Booking{
		{Location: "atmos"},
		{Location: "atmos"},
		{Location: "atmos-dallas"},
		{Location: "decommissioned-site"}, // dropped, not grouped
	}
	known := []string{"atmos", "atmos-dallas", "atmos-denver"}

	want := map[string]int{
		"atmos":        2,
		"atmos-dallas": 1,
		"atmos-denver": 0,
	}
	assert.Equal(t, want, ByLocation(records, known))
}

func TestRevenue(t *testing.T) {
	records := []bookings.Booking{
		{Date: datePtr(2026, time.March, 2), Location: "atmos", Amount: 120},
		{Date: datePtr(2026, time.March, 9), Location: "atmos", Amount: 340},
		{Date: datePtr(2026, time.March, 12), Location: "atmos-dallas", Amount: 510},
		{Date: nil, Location: "atmos", Amount: 999}, // skipped, no date
	}

	t.Run("all locations", func(t *testing.T) {
		got := Revenue(records, PeriodMonth, AllLocations)
		assert.Equal(t, map[string]float64{"2026-03": 970}, got)
	})

	t.Run("empty location means all", func(t *testing.T) {
		got := Revenue(records, PeriodMonth, "")
		assert.Equal(t, map[string]float64{"2026-03": 970}, got)
	})

	t.Run("single location filter", func(t *testing.T) {
		got := Revenue(records, PeriodMonth, "atmos")
		assert.Equal(t, map[string]float64{"2026-03": 460}, got)
	})
}

func TestSummarize(t *testing.T) {
	t.Run("empty set has zero average", func(t *testing.T) {
		summary := Summarize(nil)
		assert.Zero(t, summary.TotalBookings)
		assert.Zero(t, summary.TotalRevenue)
		assert.Zero(t, summary.AverageBookingValue)
	})

	t.Run("totals and average", func(t *testing.T) {
		summary := Summarize([]bookings.Booking{
			{Amount: 120},
			{Amount: 340},
			{Amount: 140},
		})
		require.Equal(t, 3, summary.TotalBookings)
		assert.Equal(t, 600.0, summary.TotalRevenue)
		assert.Equal(t, 200.0, summary.AverageBookingValue)
	})
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"male", "Male"},
		{"high_school", "High School"},
		{"HIGH_SCHOOL", "High School"},
		{"Prefer_Not_To_Say", "Prefer Not To Say"},
		{"some_college", "Some College"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, titleCase(tt.in))
	}
}
