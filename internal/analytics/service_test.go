package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"chamber/internal/bookings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRepo struct {
	records []bookings.Booking
	calls   int
}

func (r *fixedRepo) GetBookingsWithUsers(ctx context.Context) ([]bookings.Booking, error) {
	r.calls++
	return r.records, nil
}

type fixedSlugs struct {
	slugs []string
}

func (s *fixedSlugs) KnownSlugs(ctx context.Context) ([]string, error) {
	return s.slugs, nil
}

func testRecords() []bookings.Booking {
	march := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)
	return []bookings.Booking{
		{Date: &march, Location: "atmos", Gender: "male", Amount: 120},
		{Date: &march, Location: "atmos", Gender: "female", Amount: 340},
		{Date: &april, Location: "atmos-dallas", Amount: 510},
	}
}

func TestGetBookingAnalytics(t *testing.T) {
	ctx := context.Background()

	newSvc := func() (*fixedRepo, Service) {
		repo := &fixedRepo{records: testRecords()}
		return repo, NewService(repo, &fixedSlugs{slugs: []string{"atmos", "atmos-dallas"}}, nil)
	}

	t.Run("rejects malformed requests before touching data", func(t *testing.T) {
		repo, svc := newSvc()
		_, err := svc.GetBookingAnalytics(ctx, Request{Type: "byMoonPhase"})
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Zero(t, repo.calls)
	})

	t.Run("time period grouping", func(t *testing.T) {
		_, svc := newSvc()
		payload, err := svc.GetBookingAnalytics(ctx, Request{Type: TypeByTimePeriod, Period: PeriodMonth})
		require.NoError(t, err)

		var got map[string]int
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, map[string]int{"2026-03": 2, "2026-04": 1}, got)
	})

	t.Run("demographic grouping", func(t *testing.T) {
		_, svc := newSvc()
		payload, err := svc.GetBookingAnalytics(ctx, Request{Type: TypeByDemographic, Demographic: DemographicGender})
		require.NoError(t, err)

		var got map[string]int
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, map[string]int{"Male": 1, "Female": 1, NotSpecified: 1}, got)
	})

	t.Run("location grouping is seeded with known slugs", func(t *testing.T) {
		repo := &fixedRepo{records: testRecords()}
		svc := NewService(repo, &fixedSlugs{slugs: []string{"atmos", "atmos-dallas", "atmos-denver"}}, nil)

		payload, err := svc.GetBookingAnalytics(ctx, Request{Type: TypeByLocation})
		require.NoError(t, err)

		var got map[string]int
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, map[string]int{"atmos": 2, "atmos-dallas": 1, "atmos-denver": 0}, got)
	})

	t.Run("revenue respects the location filter", func(t *testing.T) {
		_, svc := newSvc()
		payload, err := svc.GetBookingAnalytics(ctx, Request{Type: TypeRevenue, Period: PeriodMonth, Location: "atmos"})
		require.NoError(t, err)

		var got map[string]float64
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, map[string]float64{"2026-03": 460}, got)
	})

	t.Run("summary", func(t *testing.T) {
		_, svc := newSvc()
		payload, err := svc.GetBookingAnalytics(ctx, Request{Type: TypeSummary})
		require.NoError(t, err)

		var got Summary
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, 3, got.TotalBookings)
		assert.Equal(t, 970.0, got.TotalRevenue)
		assert.InDelta(t, 323.33, got.AverageBookingValue, 0.01)
	})
}
