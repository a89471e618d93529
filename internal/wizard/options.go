package wizard

// Fixed option sets the guest-info and booking-details guards accept.
// Values are stored snake_case; display casing happens at read time.

var GenderOptions = []string{
	"male", "female", "non_binary", "prefer_not_to_say",
}

var RaceOptions = []string{
	"asian", "black", "hispanic", "white", "native_american",
	"pacific_islander", "mixed", "other", "prefer_not_to_say",
}

var EducationOptions = []string{
	"high_school", "some_college", "associates", "bachelors",
	"masters", "doctorate", "other",
}

var ProfessionOptions = []string{
	"healthcare", "technology", "education", "business", "athlete",
	"military", "retired", "student", "other",
}

var AgeOptions = []string{
	"18-24", "25-34", "35-44", "45-54", "55-64", "65+",
}

// TimeSlots are the nine bookable hourly session starts
var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM", "1:00 PM",
	"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

// DurationOptions are the session lengths in minutes
var DurationOptions = []int{60, 90, 120}

// MaxSeats is the chamber capacity per session
const MaxSeats = 4

func inOptions(value string, options []string) bool {
	for _, option := range options {
		if value == option {
			return true
		}
	}
	return false
}

func isValidTimeSlot(slot string) bool {
	return inOptions(slot, TimeSlots)
}

func isValidDuration(minutes int) bool {
	for _, option := range DurationOptions {
		if minutes == option {
			return true
		}
	}
	return false
}
