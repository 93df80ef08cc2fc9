package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) EnsureUnits(ctx context.Context, units []*domain.CatalogUnit) (int64, error) {
	args := m.Called(ctx, units)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCatalogRepo) List(ctx context.Context) ([]*domain.CatalogUnit, error) {
	args := m.Called(ctx)
	units, _ := args.Get(0).([]*domain.CatalogUnit)
	return units, args.Error(1)
}

func TestService_EnsureSeeded(t *testing.T) {
	repo := &mockCatalogRepo{}
	repo.On("EnsureUnits", mock.Anything, mock.MatchedBy(func(units []*domain.CatalogUnit) bool {
		return len(units) == 2 &&
			units[0].Key.String() == "none_0" && units[0].Name == "Plain" &&
			units[1].Key.String() == "relax_60" && units[1].Name == "Relax 60" &&
			units[1].UnitPrice.Equal(decimal.RequireFromString("30"))
	})).Return(int64(2), nil).Once()

	svc := NewService(repo, logger.NewNop())
	created, err := svc.EnsureSeeded(context.Background(), map[string]string{
		"relax_60": "30.00",
		"none_0":   "25",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), created)
	repo.AssertExpectations(t)
}

func TestService_EnsureSeeded_InvalidKey(t *testing.T) {
	repo := &mockCatalogRepo{}
	svc := NewService(repo, logger.NewNop())

	_, err := svc.EnsureSeeded(context.Background(), map[string]string{"none_60": "25"})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "EnsureUnits", mock.Anything, mock.Anything)
}

func TestService_EnsureSeeded_InvalidPrice(t *testing.T) {
	svc := NewService(&mockCatalogRepo{}, logger.NewNop())

	_, err := svc.EnsureSeeded(context.Background(), map[string]string{"rock_15": "five"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_List(t *testing.T) {
	repo := &mockCatalogRepo{}
	repo.On("List", mock.Anything).Return([]*domain.CatalogUnit{
		{ID: 1, Key: domain.CatalogKey{Category: domain.CategoryRock, Duration: domain.Duration15}, Name: "Rock 15", UnitPrice: decimal.RequireFromString("5")},
	}, nil).Once()

	svc := NewService(repo, logger.NewNop())
	resp, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Units, 1)
	assert.Equal(t, "rock_15", resp.Units[0].Key)
	assert.Equal(t, "5.00", resp.Units[0].UnitPrice)
}

func TestService_List_RepositoryError(t *testing.T) {
	repo := &mockCatalogRepo{}
	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	svc := NewService(repo, logger.NewNop())
	_, err := svc.List(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}
