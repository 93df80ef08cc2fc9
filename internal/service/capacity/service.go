package capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	capacityRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/capacity/models"
)

// Service сервис общей вместимости (сколько человек одновременно на одно время)
type Service struct {
	capacityRepo    CapacityRepository
	defaultCapacity int
	logger          Logger
}

// NewService создает новый экземпляр сервиса вместимости
// defaultCapacity используется, пока значение не сохранено в БД
func NewService(capacityRepo CapacityRepository, defaultCapacity int, logger Logger) *Service {
	if defaultCapacity <= 0 {
		defaultCapacity = domain.DefaultCapacity
	}
	return &Service{
		capacityRepo:    capacityRepo,
		defaultCapacity: defaultCapacity,
		logger:          logger,
	}
}

// Get возвращает вместимость; если она не создана - значение по умолчанию
func (s *Service) Get(ctx context.Context) (*models.CapacityResponse, error) {
	c, err := s.capacityRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, capacityRepo.ErrCapacityNotFound) {
			s.logger.Warn("GetCapacity: capacity is not configured, using default=%d", s.defaultCapacity)
			return &models.CapacityResponse{Value: s.defaultCapacity, IsDefault: true}, nil
		}
		s.logger.Error("GetCapacity: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCapacity - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCapacity(c), nil
}

// Create создает вместимость; вторую создать нельзя
func (s *Service) Create(ctx context.Context, req *models.CapacityRequest) (*models.CapacityResponse, error) {
	s.logger.Info("CreateCapacity: value=%d", req.Value)

	if err := domain.ValidateCapacity(req.Value); err != nil {
		s.logger.Warn("CreateCapacity: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	c, err := s.capacityRepo.Create(ctx, req.Value)
	if err != nil {
		if errors.Is(err, capacityRepo.ErrCapacityAlreadyExists) {
			s.logger.Warn("CreateCapacity: capacity already exists")
			return nil, ErrCapacityAlreadyExists
		}
		s.logger.Error("CreateCapacity: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateCapacity - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCapacity: capacity created, value=%d", c.Value)
	return models.FromDomainCapacity(c), nil
}

// Update меняет значение вместимости
func (s *Service) Update(ctx context.Context, req *models.CapacityRequest) (*models.CapacityResponse, error) {
	s.logger.Info("UpdateCapacity: value=%d", req.Value)

	if err := domain.ValidateCapacity(req.Value); err != nil {
		s.logger.Warn("UpdateCapacity: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	c, err := s.capacityRepo.Update(ctx, req.Value)
	if err != nil {
		if errors.Is(err, capacityRepo.ErrCapacityNotFound) {
			s.logger.Warn("UpdateCapacity: capacity is not configured")
			return nil, ErrCapacityNotFound
		}
		s.logger.Error("UpdateCapacity: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateCapacity - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateCapacity: capacity updated, value=%d", c.Value)
	return models.FromDomainCapacity(c), nil
}
