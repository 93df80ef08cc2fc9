package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/availability/models"
)

// Service сервис версионируемой доступности
// Версии только добавляются: существующие правила не меняются и не удаляются
type Service struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(availabilityRepo AvailabilityRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Resolve возвращает интервалы, действующие на дату
// Приоритет: последняя версия на конкретную дату, затем последняя версия на день недели
// Отсутствие правил - не ошибка, возвращается пустой список
func (s *Service) Resolve(ctx context.Context, rawDate string) (*models.ResolveResponse, error) {
	date, err := domain.ParseDate(rawDate)
	if err != nil {
		s.logger.Warn("ResolveAvailability: invalid date %q", rawDate)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rules, err := s.availabilityRepo.GetRulesForDate(ctx, date)
	if err != nil {
		s.logger.Error("ResolveAvailability: repository error for date=%s: %v", rawDate, err)
		return nil, fmt.Errorf("%w: ResolveAvailability - repository error: %v", ErrInternal, err)
	}

	rule := domain.SelectCurrentRule(rules, date)
	if rule == nil {
		s.logger.Info("ResolveAvailability: no rules for date=%s", rawDate)
	}
	return models.FromDomainResolved(date, rule), nil
}

// History возвращает все версии, относящиеся к дате, с окнами действия
func (s *Service) History(ctx context.Context, rawDate string) (*models.HistoryResponse, error) {
	date, err := domain.ParseDate(rawDate)
	if err != nil {
		s.logger.Warn("GetAvailabilityHistory: invalid date %q", rawDate)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rules, err := s.availabilityRepo.GetRulesForDate(ctx, date)
	if err != nil {
		s.logger.Error("GetAvailabilityHistory: repository error for date=%s: %v", rawDate, err)
		return nil, fmt.Errorf("%w: GetAvailabilityHistory - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHistory(date, domain.BuildHistory(rules, date)), nil
}

// Publish добавляет новую неизменяемую версию
// effectiveDate (если указана) становится меткой версии, иначе - текущее время
func (s *Service) Publish(ctx context.Context, req *models.PublishRequest) (*models.PublishResponse, error) {
	s.logger.Info("PublishAvailability: kind=%s, ranges=%d", req.Kind, len(req.Ranges))

	// 1. Конвертируем и валидируем правило
	rule, err := req.ToDomainRule()
	if err != nil {
		s.logger.Warn("PublishAvailability: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := rule.Validate(); err != nil {
		s.logger.Warn("PublishAvailability: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Определяем метку версии
	rule.CreatedAt = s.timeProvider.Now().UTC()
	if req.EffectiveDate != nil {
		effective, err := domain.ParseDate(*req.EffectiveDate)
		if err != nil {
			s.logger.Warn("PublishAvailability: invalid effective date %q", *req.EffectiveDate)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		rule.CreatedAt = effective
	}

	// 3. Сохраняем версию вместе с интервалами атомарно
	var created *domain.AvailabilityRule
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err = s.availabilityRepo.Create(txCtx, rule)
		return err
	})
	if err != nil {
		s.logger.Error("PublishAvailability: repository error: %v", err)
		return nil, fmt.Errorf("%w: PublishAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("PublishAvailability: published rule id=%d, kind=%s, createdAt=%s",
		created.ID, created.Kind, created.CreatedAt.Format(domain.DateFormat))
	return &models.PublishResponse{RuleID: created.ID, CreatedAt: created.CreatedAt}, nil
}
