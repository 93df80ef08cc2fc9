package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, date)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) GetLogs(ctx context.Context, bookingID int64) ([]*domain.BookingLog, error) {
	args := m.Called(ctx, bookingID)
	l, _ := args.Get(0).([]*domain.BookingLog)
	return l, args.Error(1)
}

type mockBundleRepo struct {
	mock.Mock
}

func (m *mockBundleRepo) GetByID(ctx context.Context, id int64) (*domain.Bundle, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Bundle)
	return b, args.Error(1)
}

func TestService_GetByID_WithBundle(t *testing.T) {
	booking := &domain.Booking{
		ID:            4,
		Date:          time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		Time:          types.MustTimeString("12:00"),
		People:        2,
		BundleID:      9,
		AmountPaid:    decimal.RequireFromString("20"),
		AmountPending: decimal.RequireFromString("-5"),
	}
	bundle := &domain.Bundle{ID: 9, Name: "1× Rock 15", Price: decimal.RequireFromString("15")}

	bookings := &mockBookingRepo{}
	bookings.On("GetByID", mock.Anything, int64(4)).Return(booking, nil).Once()
	bundles := &mockBundleRepo{}
	bundles.On("GetByID", mock.Anything, int64(9)).Return(bundle, nil).Once()

	resp, err := NewService(bookings, bundles, logger.NewNop()).GetByID(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, "2025-07-14", resp.Date)
	assert.Equal(t, "12:00", resp.Time)
	assert.Equal(t, "20.00", resp.AmountPaid)
	assert.Equal(t, "-5.00", resp.AmountPending)
	require.NotNil(t, resp.Bundle)
	assert.Equal(t, "15.00", resp.Bundle.Price)
}

func TestService_GetByID_NotFound(t *testing.T) {
	bookings := &mockBookingRepo{}
	bookings.On("GetByID", mock.Anything, int64(4)).Return(nil, bookingRepo.ErrBookingNotFound).Once()

	_, err := NewService(bookings, &mockBundleRepo{}, logger.NewNop()).GetByID(context.Background(), 4)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ListByDate_InvalidDate(t *testing.T) {
	_, err := NewService(&mockBookingRepo{}, &mockBundleRepo{}, logger.NewNop()).ListByDate(context.Background(), "yesterday")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_GetLogs(t *testing.T) {
	now := time.Now()

	bookings := &mockBookingRepo{}
	bookings.On("GetByID", mock.Anything, int64(4)).Return(&domain.Booking{ID: 4}, nil).Once()
	bookings.On("GetLogs", mock.Anything, int64(4)).Return([]*domain.BookingLog{
		{ID: 2, BookingID: 4, Message: "people changed from 2 to 3", CreatedAt: now},
		{ID: 1, BookingID: 4, Message: "time changed from 10:00 to 11:00", CreatedAt: now.Add(-time.Minute)},
	}, nil).Once()

	resp, err := NewService(bookings, &mockBundleRepo{}, logger.NewNop()).GetLogs(context.Background(), 4)

	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "people changed from 2 to 3", resp.Entries[0].Message)
}
