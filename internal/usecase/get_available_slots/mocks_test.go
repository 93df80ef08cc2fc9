package get_available_slots

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

type mockAvailabilityRepo struct {
	mock.Mock
}

func (m *mockAvailabilityRepo) GetRulesForDate(ctx context.Context, date time.Time) ([]*domain.AvailabilityRule, error) {
	args := m.Called(ctx, date)
	rules, _ := args.Get(0).([]*domain.AvailabilityRule)
	return rules, args.Error(1)
}

type mockConstraintRepo struct {
	mock.Mock
}

func (m *mockConstraintRepo) GetByDate(ctx context.Context, date time.Time) (*domain.ConstraintRule, error) {
	args := m.Called(ctx, date)
	rule, _ := args.Get(0).(*domain.ConstraintRule)
	return rule, args.Error(1)
}

type mockCapacityRepo struct {
	mock.Mock
}

func (m *mockCapacityRepo) Get(ctx context.Context) (*domain.Capacity, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(*domain.Capacity)
	return c, args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, date)
	bookings, _ := args.Get(0).([]*domain.Booking)
	return bookings, args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}
