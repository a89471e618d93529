package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	return NewRepository(gormDB), mock
}

func TestIsMissingColumn(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "postgres undefined column",
			err:  errors.New(`ERROR: column "session_notes" of relation "bookings" does not exist (SQLSTATE 42703)`),
			want: true,
		},
		{
			name: "sqlstate without message",
			err:  errors.New("SQLSTATE 42703"),
			want: true,
		},
		{
			name: "phrasing without sqlstate",
			err:  errors.New(`column "chamber_number" does not exist`),
			want: true,
		},
		{
			name: "unrelated failure",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "missing table is not a missing column",
			err:  errors.New(`relation "bookings" does not exist (SQLSTATE 42P01)`),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isMissingColumn(tt.err))
		})
	}
}

func TestCreateBookingWrapsSchemaMismatch(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnError(errors.New(`ERROR: column "session_notes" of relation "bookings" does not exist (SQLSTATE 42703)`))
	mock.ExpectRollback()

	booking := newBooking()
	booking.ID = uuid.New()
	err := repo.CreateBooking(context.Background(), booking)

	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingPassesOtherErrorsThrough(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnError(errors.New("connection refused"))
	mock.ExpectRollback()

	booking := newBooking()
	booking.ID = uuid.New()
	err := repo.CreateBooking(context.Background(), booking)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSchemaMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetBookingByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateBooking(context.Background(), uuid.New(), map[string]interface{}{
		"status": StatusCompleted,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBookingsReturnsAffectedCount(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "bookings"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	deleted, err := repo.DeleteBookings(context.Background(), []uuid.UUID{uuid.New(), uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(100, 0))
	assert.Equal(t, 1, CalculateTotalPages(1, 20))
	assert.Equal(t, 5, CalculateTotalPages(100, 20))
	assert.Equal(t, 6, CalculateTotalPages(101, 20))
	assert.Equal(t, 0, CalculateTotalPages(0, 20))
}
