package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		wantErr bool
	}{
		{"time period with period", Request{Type: TypeByTimePeriod, Period: PeriodWeek}, false},
		{"time period missing period", Request{Type: TypeByTimePeriod}, true},
		{"time period bad period", Request{Type: TypeByTimePeriod, Period: "fortnight"}, true},
		{"demographic with field", Request{Type: TypeByDemographic, Demographic: DemographicAge}, false},
		{"demographic missing field", Request{Type: TypeByDemographic}, true},
		{"demographic bad field", Request{Type: TypeByDemographic, Demographic: "height"}, true},
		{"revenue with period", Request{Type: TypeRevenue, Period: PeriodMonth, Location: "atmos"}, false},
		{"revenue missing period", Request{Type: TypeRevenue}, true},
		{"location needs nothing", Request{Type: TypeByLocation}, false},
		{"summary needs nothing", Request{Type: TypeSummary}, false},
		{"unknown type", Request{Type: "byMoonPhase"}, true},
		{"empty type", Request{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
