package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository drives the schema-mismatch and retry paths without a
// database.
type fakeRepository struct {
	createErrs   []error // consumed one per CreateBooking call
	createCalls  int
	migrateCalls int
	migrateErr   error
	created      []*Booking
}

func (f *fakeRepository) CreateBooking(ctx context.Context, booking *Booking) error {
	f.createCalls++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	f.created = append(f.created, booking)
	return nil
}

func (f *fakeRepository) MigrateSchema(ctx context.Context) error {
	f.migrateCalls++
	return f.migrateErr
}

func (f *fakeRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	for _, b := range f.created {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (f *fakeRepository) UpdateBooking(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (f *fakeRepository) DeleteBookings(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return int64(len(ids)), nil
}

func (f *fakeRepository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepository) GetBookingsWithUsers(ctx context.Context) ([]Booking, error) {
	return nil, nil
}

func (f *fakeRepository) GetSeatCountsForDate(ctx context.Context, location string, date time.Time) (map[string]int, error) {
	return nil, nil
}

// fakeCache is a no-op cache.Service
type fakeCache struct{}

func (fakeCache) Get(ctx context.Context, key string, dest interface{}) error { return nil }
func (fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (fakeCache) Delete(ctx context.Context, key string) error            { return nil }
func (fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (fakeCache) Exists(ctx context.Context, key string) bool             { return false }
func (fakeCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	return nil
}
func (fakeCache) Ping(ctx context.Context) error { return nil }

type recordingNotifier struct {
	notified []*Booking
}

func (n *recordingNotifier) NotifyBookingConfirmed(booking *Booking) {
	n.notified = append(n.notified, booking)
}

func newBooking() *Booking {
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	return &Booking{
		FirstName:       "Jordan",
		LastName:        "Reyes",
		Email:           "Jordan.Reyes@Example.com",
		Phone:           "5125550101",
		Date:            &date,
		TimeSlot:        "9:00 AM",
		DurationMinutes: 60,
		Location:        "atmos",
		GroupSize:       1,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the record and notifies", func(t *testing.T) {
		repo := &fakeRepository{}
		notifier := &recordingNotifier{}
		svc := NewService(repo, fakeCache{}, notifier)

		booking := newBooking()
		require.NoError(t, svc.CreateBooking(ctx, booking))

		assert.NotEqual(t, uuid.Nil, booking.ID)
		assert.Equal(t, "jordan.reyes@example.com", booking.Email)
		assert.Equal(t, StatusConfirmed, booking.Status)
		assert.Zero(t, repo.migrateCalls)
		require.Len(t, notifier.notified, 1)
	})

	t.Run("nil notifier is fine", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := NewService(repo, fakeCache{}, nil)
		assert.NoError(t, svc.CreateBooking(ctx, newBooking()))
	})

	t.Run("schema mismatch migrates and retries once", func(t *testing.T) {
		cause := errors.New(`ERROR: column "session_notes" of relation "bookings" does not exist (SQLSTATE 42703)`)
		repo := &fakeRepository{
			createErrs: []error{errors.Join(ErrSchemaMismatch, cause)},
		}
		svc := NewService(repo, fakeCache{}, nil)

		require.NoError(t, svc.CreateBooking(ctx, newBooking()))
		assert.Equal(t, 1, repo.migrateCalls)
		assert.Equal(t, 2, repo.createCalls)
		require.Len(t, repo.created, 1)
	})

	t.Run("mismatch persisting after migration is returned", func(t *testing.T) {
		mismatch := errors.Join(ErrSchemaMismatch, errors.New("SQLSTATE 42703"))
		repo := &fakeRepository{
			createErrs: []error{mismatch, mismatch},
		}
		svc := NewService(repo, fakeCache{}, nil)

		err := svc.CreateBooking(ctx, newBooking())
		assert.ErrorIs(t, err, ErrSchemaMismatch)
		assert.Equal(t, 1, repo.migrateCalls, "migration runs only once")
		assert.Equal(t, 2, repo.createCalls, "no second retry")
	})

	t.Run("migration failure aborts", func(t *testing.T) {
		repo := &fakeRepository{
			createErrs: []error{errors.Join(ErrSchemaMismatch, errors.New("SQLSTATE 42703"))},
			migrateErr: errors.New("permission denied"),
		}
		notifier := &recordingNotifier{}
		svc := NewService(repo, fakeCache{}, notifier)

		err := svc.CreateBooking(ctx, newBooking())
		assert.Error(t, err)
		assert.Equal(t, 1, repo.createCalls)
		assert.Empty(t, notifier.notified)
	})

	t.Run("ordinary errors skip migration", func(t *testing.T) {
		repo := &fakeRepository{
			createErrs: []error{errors.New("connection refused")},
		}
		svc := NewService(repo, fakeCache{}, nil)

		err := svc.CreateBooking(ctx, newBooking())
		assert.Error(t, err)
		assert.Zero(t, repo.migrateCalls)
	})
}

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown status", func(t *testing.T) {
		svc := NewService(&fakeRepository{}, fakeCache{}, nil)
		status := "TELEPORTED"
		_, err := svc.UpdateBooking(ctx, uuid.New(), AdminUpdateRequest{Status: &status})
		assert.Error(t, err)
	})

	t.Run("rejects an empty update", func(t *testing.T) {
		svc := NewService(&fakeRepository{}, fakeCache{}, nil)
		_, err := svc.UpdateBooking(ctx, uuid.New(), AdminUpdateRequest{})
		assert.Error(t, err)
	})

	t.Run("lowercase status is accepted", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := NewService(repo, fakeCache{}, nil)

		booking := newBooking()
		require.NoError(t, svc.CreateBooking(ctx, booking))

		status := "completed"
		updated, err := svc.UpdateBooking(ctx, booking.ID, AdminUpdateRequest{Status: &status})
		require.NoError(t, err)
		assert.NotNil(t, updated)
	})
}

func TestGetAllBookingsValidatesStatusFilter(t *testing.T) {
	svc := NewService(&fakeRepository{}, fakeCache{}, nil)

	_, err := svc.GetAllBookings(context.Background(), BookingListQuery{Status: "BOGUS"})
	assert.Error(t, err)

	_, err = svc.GetAllBookings(context.Background(), BookingListQuery{Status: string(StatusCancelled)})
	assert.NoError(t, err)
}

func TestDeleteBookingsParsesIDs(t *testing.T) {
	svc := NewService(&fakeRepository{}, fakeCache{}, nil)
	ctx := context.Background()

	_, err := svc.DeleteBookings(ctx, BulkDeleteRequest{IDs: []string{"not-a-uuid"}})
	assert.Error(t, err)

	resp, err := svc.DeleteBookings(ctx, BulkDeleteRequest{IDs: []string{uuid.NewString(), uuid.NewString()}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Deleted)
}
