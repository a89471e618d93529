package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"chamber/internal/bookings"
)

// The aggregator is a set of pure reducers over booking slices. Each call
// walks the records once and builds its grouping from scratch, so callers
// can run them concurrently over the same slice.

// ByTimePeriod counts bookings per period label. Bookings without a
// calendar date are skipped.
func ByTimePeriod(records []bookings.Booking, period string) map[string]int {
	counts := make(map[string]int)
	for i := range records {
		label, ok := periodLabel(records[i].Date, period)
		if !ok {
			continue
		}
		counts[label]++
	}
	return counts
}

// ByDemographic counts bookings per demographic value. The booking's own
// field wins; the linked user profile is the fallback; anything else lands
// under "not_specified".
func ByDemographic(records []bookings.Booking, field string) map[string]int {
	counts := make(map[string]int)
	for i := range records {
		counts[demographicLabel(&records[i], field)]++
	}
	return counts
}

// ByLocation counts bookings per known location. The result is pre-seeded
// with every known key at zero; bookings referencing locations outside the
// known set are dropped rather than grouped under a catch-all.
func ByLocation(records []bookings.Booking, knownLocations []string) map[string]int {
	counts := make(map[string]int, len(knownLocations))
	for _, location := range knownLocations {
		counts[location] = 0
	}
	for i := range records {
		if _, known := counts[records[i].Location]; known {
			counts[records[i].Location]++
		}
	}
	return counts
}

// Revenue sums booking amounts per period label, optionally filtered to a
// single location. Pass AllLocations (or empty) to include every site.
func Revenue(records []bookings.Booking, period, location string) map[string]float64 {
	totals := make(map[string]float64)
	filtered := location != "" && location != AllLocations
	for i := range records {
		if filtered && records[i].Location != location {
			continue
		}
		label, ok := periodLabel(records[i].Date, period)
		if !ok {
			continue
		}
		totals[label] += records[i].Amount
	}
	return totals
}

// Summarize produces the overall rollup. The average is zero, not NaN, for
// an empty record set.
func Summarize(records []bookings.Booking) Summary {
	summary := Summary{TotalBookings: len(records)}
	for i := range records {
		summary.TotalRevenue += records[i].Amount
	}
	if summary.TotalBookings > 0 {
		summary.AverageBookingValue = summary.TotalRevenue / float64(summary.TotalBookings)
	}
	return summary
}

// periodLabel derives the grouping label for a booking date. Week labels
// are the date of the Sunday starting that week.
func periodLabel(date *time.Time, period string) (string, bool) {
	if date == nil || date.IsZero() {
		return "", false
	}

	switch period {
	case PeriodDay:
		return date.Format("2006-01-02"), true
	case PeriodWeek:
		sunday := date.AddDate(0, 0, -int(date.Weekday()))
		return sunday.Format("2006-01-02"), true
	case PeriodMonth:
		return date.Format("2006-01"), true
	case PeriodQuarter:
		quarter := (int(date.Month())-1)/3 + 1
		return fmt.Sprintf("%d-Q%d", date.Year(), quarter), true
	case PeriodYear:
		return date.Format("2006"), true
	}
	return "", false
}

// demographicLabel resolves one demographic field for one booking. Each
// field has an explicit accessor pair; there is deliberately no reflection
// here.
func demographicLabel(b *bookings.Booking, field string) string {
	if field == DemographicAge {
		return ageLabel(b)
	}

	var fromBooking, fromUser func() string
	switch field {
	case DemographicGender:
		fromBooking = func() string { return b.Gender }
		fromUser = func() string { return userField(b, func(u *bookings.UserRef) string { return u.Gender }) }
	case DemographicRace:
		fromBooking = func() string { return b.Race }
		fromUser = func() string { return userField(b, func(u *bookings.UserRef) string { return u.Race }) }
	case DemographicEducation:
		fromBooking = func() string { return b.Education }
		fromUser = func() string { return userField(b, func(u *bookings.UserRef) string { return u.Education }) }
	case DemographicProfession:
		fromBooking = func() string { return b.Profession }
		fromUser = func() string { return userField(b, func(u *bookings.UserRef) string { return u.Profession }) }
	default:
		return NotSpecified
	}

	value := strings.TrimSpace(fromBooking())
	if value == "" {
		value = strings.TrimSpace(fromUser())
	}
	if value == "" {
		return NotSpecified
	}
	return titleCase(value)
}

func userField(b *bookings.Booking, get func(*bookings.UserRef) string) string {
	if b.User == nil {
		return ""
	}
	return get(b.User)
}

// ageLabel buckets a booking into an age range. A value that already looks
// like a range ("25-34", "65+") is used verbatim; a numeric value is
// bucketed; failing both, the user's date of birth decides.
func ageLabel(b *bookings.Booking) string {
	for _, raw := range []string{b.Age, userField(b, func(u *bookings.UserRef) string { return u.Age })} {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if strings.Contains(value, "-") || strings.HasSuffix(value, "+") {
			return value
		}
		if age, err := strconv.Atoi(value); err == nil {
			return ageBucket(age)
		}
	}

	if b.User != nil && b.User.DateOfBirth != nil && !b.User.DateOfBirth.IsZero() {
		return ageBucket(yearsSince(*b.User.DateOfBirth, time.Now()))
	}
	return NotSpecified
}

func ageBucket(age int) string {
	switch {
	case age < 25:
		return "18-24"
	case age < 35:
		return "25-34"
	case age < 45:
		return "35-44"
	case age < 55:
		return "45-54"
	case age < 65:
		return "55-64"
	default:
		return "65+"
	}
}

func yearsSince(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// titleCase turns snake_case category values into display labels, e.g.
// "high_school" -> "High School".
func titleCase(value string) string {
	parts := strings.Split(value, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return strings.Join(parts, " ")
}
