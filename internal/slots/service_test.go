package slots

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"chamber/internal/bookings"
	"chamber/internal/locations"
	"chamber/internal/wizard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughCache satisfies cache.Service without Redis: GetOrSet always
// runs the fetcher and copies the result into dest.
type passthroughCache struct{}

func (passthroughCache) Get(ctx context.Context, key string, dest interface{}) error { return nil }
func (passthroughCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (passthroughCache) Delete(ctx context.Context, key string) error            { return nil }
func (passthroughCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (passthroughCache) Exists(ctx context.Context, key string) bool             { return false }
func (passthroughCache) Ping(ctx context.Context) error                          { return nil }

func (passthroughCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	value, err := fetcher()
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// seatCountRepo serves canned per-slot seat counts
type seatCountRepo struct {
	bookings.Repository
	counts map[string]int
}

func (r *seatCountRepo) GetSeatCountsForDate(ctx context.Context, location string, date time.Time) (map[string]int, error) {
	return r.counts, nil
}

type siteService struct {
	locations.Service
	sites map[string]*locations.Location
}

func (s *siteService) GetLocation(ctx context.Context, slug string) (*locations.Location, error) {
	site, ok := s.sites[slug]
	if !ok {
		return nil, locations.ErrLocationNotFound
	}
	return site, nil
}

func newSlotService(counts map[string]int, capacity int) Service {
	repo := &seatCountRepo{counts: counts}
	sites := &siteService{sites: map[string]*locations.Location{
		locations.DefaultSlug: {
			ID:         uuid.New(),
			Slug:       locations.DefaultSlug,
			Name:       "Atmos Hyperbaric",
			ChamberCap: capacity,
			Active:     true,
		},
	}}
	return NewService(repo, sites, passthroughCache{})
}

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("every slot reported with remaining seats", func(t *testing.T) {
		svc := newSlotService(map[string]int{
			"9:00 AM": 2,
			"1:00 PM": 4,
		}, 4)

		day, err := svc.GetAvailability(ctx, "2026-03-10", "")
		require.NoError(t, err)

		assert.Equal(t, "2026-03-10", day.Date)
		assert.Equal(t, locations.DefaultSlug, day.Location)
		require.Len(t, day.Slots, len(wizard.TimeSlots))

		bySlot := make(map[string]SlotAvailability, len(day.Slots))
		for _, slot := range day.Slots {
			bySlot[slot.TimeSlot] = slot
		}

		nine := bySlot["9:00 AM"]
		assert.Equal(t, 2, nine.SeatsTaken)
		assert.Equal(t, 2, nine.SeatsAvailable)
		assert.False(t, nine.Full)

		one := bySlot["1:00 PM"]
		assert.Equal(t, 0, one.SeatsAvailable)
		assert.True(t, one.Full)

		ten := bySlot["10:00 AM"]
		assert.Equal(t, 0, ten.SeatsTaken)
		assert.Equal(t, 4, ten.SeatsAvailable)
	})

	t.Run("overbooked slot never reports negative seats", func(t *testing.T) {
		svc := newSlotService(map[string]int{"9:00 AM": 7}, 4)

		day, err := svc.GetAvailability(ctx, "2026-03-10", locations.DefaultSlug)
		require.NoError(t, err)
		assert.Equal(t, 0, day.Slots[0].SeatsAvailable)
		assert.True(t, day.Slots[0].Full)
	})

	t.Run("zero capacity falls back to the chamber default", func(t *testing.T) {
		svc := newSlotService(nil, 0)

		day, err := svc.GetAvailability(ctx, "2026-03-10", "")
		require.NoError(t, err)
		assert.Equal(t, wizard.MaxSeats, day.Slots[0].Capacity)
	})

	t.Run("bad date", func(t *testing.T) {
		svc := newSlotService(nil, 4)
		_, err := svc.GetAvailability(ctx, "tomorrow", "")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("unknown location", func(t *testing.T) {
		svc := newSlotService(nil, 4)
		_, err := svc.GetAvailability(ctx, "2026-03-10", "atlantis")
		assert.ErrorIs(t, err, locations.ErrLocationNotFound)
	})
}
