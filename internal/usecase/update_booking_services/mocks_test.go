package update_booking_services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/usecase/resolve_bundle"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepo) CreateLog(ctx context.Context, entry *domain.BookingLog) (*domain.BookingLog, error) {
	args := m.Called(ctx, entry)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	entry.ID = 1
	return entry, nil
}

type mockBundleRepo struct {
	mock.Mock
}

func (m *mockBundleRepo) GetByID(ctx context.Context, id int64) (*domain.Bundle, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Bundle)
	return b, args.Error(1)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Execute(ctx context.Context, req *resolve_bundle.Request) (*resolve_bundle.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*resolve_bundle.Response)
	return resp, args.Error(1)
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordAuditEntry(kind string) {
	m.Called(kind)
}
