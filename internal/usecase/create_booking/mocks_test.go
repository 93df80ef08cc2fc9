package create_booking

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/usecase/admit_booking"
	"github.com/m04kA/SMC-SpaBookingService/internal/usecase/resolve_bundle"
	"github.com/m04kA/SMC-SpaBookingService/pkg/locker"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if fn, ok := args.Get(0).(func(*domain.Booking) *domain.Booking); ok {
		return fn(booking), args.Error(1)
	}
	created, _ := args.Get(0).(*domain.Booking)
	return created, args.Error(1)
}

func (m *mockBookingRepo) ExistsInternalOrderID(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type mockBundleRepo struct {
	mock.Mock
}

func (m *mockBundleRepo) GetByID(ctx context.Context, id int64) (*domain.Bundle, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Bundle)
	return b, args.Error(1)
}

type mockAdmission struct {
	mock.Mock
}

func (m *mockAdmission) Check(ctx context.Context, req *admit_booking.Request) (*domain.Admission, error) {
	args := m.Called(ctx, req)
	a, _ := args.Get(0).(*domain.Admission)
	return a, args.Error(1)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Execute(ctx context.Context, req *resolve_bundle.Request) (*resolve_bundle.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*resolve_bundle.Response)
	return resp, args.Error(1)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordAdmission(outcome string) {
	m.Called(outcome)
}

type fakeLocker struct {
	keys     []string
	released int
	err      error
}

func (l *fakeLocker) Lock(_ context.Context, key string, _ time.Duration) (locker.Unlock, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.keys = append(l.keys, key)
	return func() { l.released++ }, nil
}

type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (p fixedTime) Now() time.Time {
	return p.now
}

// sequenceRandom отдает значения по очереди
type sequenceRandom struct {
	values []int
}

func (r *sequenceRandom) IntN(n int) int {
	v := r.values[0]
	if len(r.values) > 1 {
		r.values = r.values[1:]
	}
	return v % n
}
