package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/availability/models"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

type mockAvailabilityRepo struct {
	mock.Mock
}

func (m *mockAvailabilityRepo) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	args := m.Called(ctx, rule)
	created, _ := args.Get(0).(*domain.AvailabilityRule)
	return created, args.Error(1)
}

func (m *mockAvailabilityRepo) GetRulesForDate(ctx context.Context, date time.Time) ([]*domain.AvailabilityRule, error) {
	args := m.Called(ctx, date)
	rules, _ := args.Get(0).([]*domain.AvailabilityRule)
	return rules, args.Error(1)
}

type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func date(s string) time.Time {
	d, _ := time.Parse(domain.DateFormat, s)
	return d
}

// Правило на понедельники от 2024-01-01 и правило на 2024-03-04 от 2024-02-01
func scenarioRules() (*domain.AvailabilityRule, *domain.AvailabilityRule) {
	weekday := &domain.AvailabilityRule{
		ID:        1,
		Kind:      domain.RuleKindWeekday,
		Weekday:   ptr.Ptr(1),
		CreatedAt: date("2024-01-01"),
		Ranges:    []domain.TimeRange{{Start: types.MustTimeString("10:00"), End: types.MustTimeString("14:00"), Capacity: 2}},
	}
	specific := &domain.AvailabilityRule{
		ID:         2,
		Kind:       domain.RuleKindSpecificDate,
		TargetDate: ptr.Ptr(date("2024-03-04")),
		CreatedAt:  date("2024-02-01"),
		Ranges:     []domain.TimeRange{{Start: types.MustTimeString("09:00"), End: types.MustTimeString("13:00"), Capacity: 3}},
	}
	return weekday, specific
}

func TestService_Resolve_SpecificDateOverridesWeekday(t *testing.T) {
	weekday, specific := scenarioRules()

	repo := &mockAvailabilityRepo{}
	repo.On("GetRulesForDate", mock.Anything, date("2024-03-04")).
		Return([]*domain.AvailabilityRule{weekday, specific}, nil).Once()
	repo.On("GetRulesForDate", mock.Anything, date("2024-03-11")).
		Return([]*domain.AvailabilityRule{weekday}, nil).Once()

	svc := NewService(repo, inlineTxManager{}, logger.NewNop())

	resp, err := svc.Resolve(context.Background(), "2024-03-04")
	require.NoError(t, err)
	require.Len(t, resp.Ranges, 1)
	assert.Equal(t, models.TimeRangeDTO{Start: "09:00", End: "13:00", Capacity: 3}, resp.Ranges[0])
	assert.Equal(t, int64(2), *resp.RuleID)

	resp, err = svc.Resolve(context.Background(), "2024-03-11")
	require.NoError(t, err)
	require.Len(t, resp.Ranges, 1)
	assert.Equal(t, models.TimeRangeDTO{Start: "10:00", End: "14:00", Capacity: 2}, resp.Ranges[0])
	assert.Equal(t, "weekday", *resp.RuleKind)

	repo.AssertExpectations(t)
}

func TestService_Resolve_NoRules(t *testing.T) {
	repo := &mockAvailabilityRepo{}
	repo.On("GetRulesForDate", mock.Anything, mock.Anything).Return([]*domain.AvailabilityRule{}, nil).Once()

	svc := NewService(repo, inlineTxManager{}, logger.NewNop())
	resp, err := svc.Resolve(context.Background(), "2024-03-05")

	require.NoError(t, err)
	assert.Empty(t, resp.Ranges)
	assert.Nil(t, resp.RuleID)
}

func TestService_Resolve_InvalidDate(t *testing.T) {
	svc := NewService(&mockAvailabilityRepo{}, inlineTxManager{}, logger.NewNop())

	_, err := svc.Resolve(context.Background(), "04.03.2024")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_History(t *testing.T) {
	weekday, specific := scenarioRules()

	repo := &mockAvailabilityRepo{}
	repo.On("GetRulesForDate", mock.Anything, date("2024-03-04")).
		Return([]*domain.AvailabilityRule{specific, weekday}, nil).Once()

	svc := NewService(repo, inlineTxManager{}, logger.NewNop())
	resp, err := svc.History(context.Background(), "2024-03-04")

	require.NoError(t, err)
	require.Len(t, resp.Versions, 2)
	assert.Equal(t, int64(1), resp.Versions[0].RuleID)
	assert.Equal(t, "2024-01-01", resp.Versions[0].EffectiveFrom)
	require.NotNil(t, resp.Versions[0].EffectiveTo)
	assert.Equal(t, "2024-01-31", *resp.Versions[0].EffectiveTo)
	assert.Nil(t, resp.Versions[1].EffectiveTo)
	assert.True(t, resp.Versions[1].Current)
}

func TestService_Publish_UsesEffectiveDate(t *testing.T) {
	repo := &mockAvailabilityRepo{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.AvailabilityRule) bool {
		return r.Kind == domain.RuleKindSpecificDate && r.CreatedAt.Equal(date("2024-02-01")) && len(r.Ranges) == 1
	})).Return(&domain.AvailabilityRule{ID: 7, Kind: domain.RuleKindSpecificDate, CreatedAt: date("2024-02-01")}, nil).Once()

	svc := NewService(repo, inlineTxManager{}, logger.NewNop())
	resp, err := svc.Publish(context.Background(), &models.PublishRequest{
		Kind:          "specific_date",
		TargetDate:    ptr.Ptr("2024-03-04"),
		Ranges:        []models.TimeRangeDTO{{Start: "09:00", End: "13:00", Capacity: 3}},
		EffectiveDate: ptr.Ptr("2024-02-01"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.RuleID)
	repo.AssertExpectations(t)
}

func TestService_Publish_DefaultsToNow(t *testing.T) {
	now := time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC)

	repo := &mockAvailabilityRepo{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.AvailabilityRule) bool {
		return r.CreatedAt.Equal(now)
	})).Return(&domain.AvailabilityRule{ID: 8, Kind: domain.RuleKindWeekday, CreatedAt: now}, nil).Once()

	svc := NewService(repo, inlineTxManager{}, logger.NewNop())
	svc.timeProvider = fixedClock{now: now}

	_, err := svc.Publish(context.Background(), &models.PublishRequest{
		Kind:    "weekday",
		Weekday: ptr.Ptr(2),
		Ranges:  []models.TimeRangeDTO{{Start: "10:00", End: "18:00", Capacity: 4}},
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Publish_Invalid(t *testing.T) {
	svc := NewService(&mockAvailabilityRepo{}, inlineTxManager{}, logger.NewNop())

	tests := []struct {
		name string
		req  *models.PublishRequest
	}{
		{"unknown kind", &models.PublishRequest{Kind: "monthly"}},
		{"weekday out of range", &models.PublishRequest{Kind: "weekday", Weekday: ptr.Ptr(8)}},
		{"specific date without target", &models.PublishRequest{Kind: "specific_date"}},
		{"start after end", &models.PublishRequest{
			Kind: "weekday", Weekday: ptr.Ptr(1),
			Ranges: []models.TimeRangeDTO{{Start: "14:00", End: "10:00"}},
		}},
		{"negative capacity", &models.PublishRequest{
			Kind: "weekday", Weekday: ptr.Ptr(1),
			Ranges: []models.TimeRangeDTO{{Start: "10:00", End: "14:00", Capacity: -1}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Publish(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
