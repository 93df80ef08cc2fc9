package capacity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	capacityRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/capacity/models"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

type mockCapacityRepo struct {
	mock.Mock
}

func (m *mockCapacityRepo) Get(ctx context.Context) (*domain.Capacity, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(*domain.Capacity)
	return c, args.Error(1)
}

func (m *mockCapacityRepo) Create(ctx context.Context, value int) (*domain.Capacity, error) {
	args := m.Called(ctx, value)
	c, _ := args.Get(0).(*domain.Capacity)
	return c, args.Error(1)
}

func (m *mockCapacityRepo) Update(ctx context.Context, value int) (*domain.Capacity, error) {
	args := m.Called(ctx, value)
	c, _ := args.Get(0).(*domain.Capacity)
	return c, args.Error(1)
}

func TestService_Get_DefaultWhenAbsent(t *testing.T) {
	repo := &mockCapacityRepo{}
	repo.On("Get", mock.Anything).Return(nil, capacityRepo.ErrCapacityNotFound).Once()

	resp, err := NewService(repo, 0, logger.NewNop()).Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCapacity, resp.Value)
	assert.True(t, resp.IsDefault)
}

func TestService_Get(t *testing.T) {
	repo := &mockCapacityRepo{}
	repo.On("Get", mock.Anything).Return(&domain.Capacity{ID: 1, Value: 12, UpdatedAt: time.Now()}, nil).Once()

	resp, err := NewService(repo, 8, logger.NewNop()).Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, resp.Value)
	assert.False(t, resp.IsDefault)
}

func TestService_Create_Singleton(t *testing.T) {
	repo := &mockCapacityRepo{}
	repo.On("Create", mock.Anything, 10).Return(nil, capacityRepo.ErrCapacityAlreadyExists).Once()

	_, err := NewService(repo, 8, logger.NewNop()).Create(context.Background(), &models.CapacityRequest{Value: 10})

	assert.ErrorIs(t, err, ErrCapacityAlreadyExists)
}

func TestService_Create_Invalid(t *testing.T) {
	repo := &mockCapacityRepo{}

	_, err := NewService(repo, 8, logger.NewNop()).Create(context.Background(), &models.CapacityRequest{Value: 0})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Update_NotConfigured(t *testing.T) {
	repo := &mockCapacityRepo{}
	repo.On("Update", mock.Anything, 6).Return(nil, capacityRepo.ErrCapacityNotFound).Once()

	_, err := NewService(repo, 8, logger.NewNop()).Update(context.Background(), &models.CapacityRequest{Value: 6})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
