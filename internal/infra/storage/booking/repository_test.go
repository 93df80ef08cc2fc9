package booking

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

var testDate = time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

func newBooking() *domain.Booking {
	return &domain.Booking{
		InternalOrderID: "140720251234",
		Creator:         &domain.Creator{Kind: domain.CreatorAdmin, ID: 3},
		Date:            testDate,
		Time:            types.MustTimeString("10:00"),
		People:          2,
		BundleID:        5,
		AmountPaid:      decimal.Zero,
		AmountPending:   decimal.RequireFromString("60.00"),
	}
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO bookings .* ON CONFLICT \(internal_order_id\) DO NOTHING RETURNING id, created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(21), now, now))

	repo := NewRepository(db)
	created, err := repo.Create(context.Background(), newBooking())

	require.NoError(t, err)
	assert.Equal(t, int64(21), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateOrderID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}))

	repo := NewRepository(db)
	_, err = repo.Create(context.Background(), newBooking())

	assert.ErrorIs(t, err, ErrDuplicateOrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_LocksInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM bookings WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(21)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(
			int64(21), "140720251234", nil, "agent", int64(9), testDate, "10:00", 2, "late arrival",
			int64(5), "20.00", "40.00", nil, false, false, now, now,
		))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx})

	repo := NewRepository(db)
	got, err := repo.GetByID(ctx, 21)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Nil(t, got.ClientID)
	require.NotNil(t, got.Creator)
	assert.Equal(t, domain.CreatorAgent, got.Creator.Kind)
	assert.Equal(t, "10:00", got.Time.String())
	require.NotNil(t, got.Comment)
	assert.Equal(t, "late arrival", *got.Comment)
	assert.True(t, decimal.RequireFromString("40").Equal(got.AmountPending))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM bookings WHERE id = \$1$`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	repo := NewRepository(db)
	_, err = repo.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SumPeopleAtSlot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT people FROM bookings WHERE book_date = \$1 AND hour = \$2`).
		WithArgs("2025-07-14", "10:00").
		WillReturnRows(sqlmock.NewRows([]string{"people"}).AddRow(2).AddRow(3))

	repo := NewRepository(db)
	total, err := repo.SumPeopleAtSlot(context.Background(), testDate, types.MustTimeString("10:00"))

	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE bookings SET .* WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	b := newBooking()
	b.ID = 77

	repo := NewRepository(db)
	err = repo.Update(context.Background(), b)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsInternalOrderID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT 1 FROM bookings WHERE internal_order_id = \$1 LIMIT 1`).
		WithArgs("140720250001").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(`SELECT 1 FROM bookings WHERE internal_order_id = \$1 LIMIT 1`).
		WithArgs("140720250002").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	repo := NewRepository(db)

	exists, err := repo.ExistsInternalOrderID(context.Background(), "140720250001")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsInternalOrderID(context.Background(), "140720250002")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetLogs_NewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, booking_id, message, created_at FROM booking_logs WHERE booking_id = \$1 ORDER BY created_at DESC, id DESC`).
		WithArgs(int64(21)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "message", "created_at"}).
			AddRow(int64(2), int64(21), "people changed from 2 to 3", now).
			AddRow(int64(1), int64(21), "date changed from 2025-07-14 to 2025-07-15", now.Add(-time.Hour)))

	repo := NewRepository(db)
	logs, err := repo.GetLogs(context.Background(), 21)

	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(2), logs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
