package constraints

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	constraintRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/constraint"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/constraints/models"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Service сервис закрытых интервалов по датам
type Service struct {
	constraintRepo ConstraintRepository
	txManager      TransactionManager
	grid           domain.CellGrid
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса ограничений
func NewService(
	constraintRepo ConstraintRepository,
	txManager TransactionManager,
	grid domain.CellGrid,
	logger Logger,
) *Service {
	return &Service{
		constraintRepo: constraintRepo,
		txManager:      txManager,
		grid:           grid,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// IsBlocked проверяет, попадает ли время в закрытый интервал даты
func (s *Service) IsBlocked(ctx context.Context, rawDate, rawTime string) (*models.BlockedResponse, error) {
	date, err := domain.ParseDate(rawDate)
	if err != nil {
		s.logger.Warn("IsDateBlocked: invalid date %q", rawDate)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	t, err := types.NewTimeStringFromString(rawTime)
	if err != nil {
		s.logger.Warn("IsDateBlocked: invalid time %q", rawTime)
		return nil, fmt.Errorf("%w: invalid time %q", ErrInvalidInput, rawTime)
	}

	rule, err := s.getRule(ctx, date)
	if err != nil {
		s.logger.Error("IsDateBlocked: repository error for date=%s: %v", rawDate, err)
		return nil, err
	}

	return &models.BlockedResponse{
		Date:    date.Format(domain.DateFormat),
		Time:    t.String(),
		Blocked: rule.IsBlocked(t),
	}, nil
}

// Get возвращает ограничения даты вместе с сеткой ячеек
// Дата без ограничений возвращается с пустым списком интервалов
func (s *Service) Get(ctx context.Context, rawDate string) (*models.ConstraintResponse, error) {
	date, err := domain.ParseDate(rawDate)
	if err != nil {
		s.logger.Warn("GetConstraint: invalid date %q", rawDate)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rule, err := s.getRule(ctx, date)
	if err != nil {
		s.logger.Error("GetConstraint: repository error for date=%s: %v", rawDate, err)
		return nil, err
	}

	return s.toResponse(date, rule)
}

// Save атомарно заменяет интервалы даты; пустой список удаляет ограничения
// Если переданы ячейки сетки, интервалы строятся из них
func (s *Service) Save(ctx context.Context, rawDate string, req *models.SaveRequest) (*models.ConstraintResponse, error) {
	s.logger.Info("SaveConstraint: date=%s, ranges=%d, cells=%d", rawDate, len(req.Ranges), len(req.Cells))

	// 1. Валидация даты и интервалов
	date, err := domain.ParseDate(rawDate)
	if err != nil {
		s.logger.Warn("SaveConstraint: invalid date %q", rawDate)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ranges, err := s.rangesFromRequest(req)
	if err != nil {
		s.logger.Warn("SaveConstraint: invalid request for date=%s: %v", rawDate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Сохраняем или удаляем в одной транзакции
	var saved *domain.ConstraintRule
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if len(ranges) == 0 {
			return s.constraintRepo.DeleteByDate(txCtx, date)
		}
		saved, err = s.constraintRepo.Upsert(txCtx, date, ranges)
		return err
	})
	if err != nil {
		s.logger.Error("SaveConstraint: repository error for date=%s: %v", rawDate, err)
		return nil, fmt.Errorf("%w: SaveConstraint - repository error: %v", ErrInternal, err)
	}

	if saved == nil {
		s.logger.Info("SaveConstraint: constraints removed for date=%s", rawDate)
	} else {
		s.logger.Info("SaveConstraint: saved %d ranges for date=%s", len(saved.Ranges), rawDate)
	}
	return s.toResponse(date, saved)
}

// List возвращает ограничения начиная с даты (по умолчанию - с сегодняшней)
func (s *Service) List(ctx context.Context, rawFrom *string) (*models.ConstraintListResponse, error) {
	from := domain.DateOnly(s.timeProvider.Now())
	if rawFrom != nil {
		parsed, err := domain.ParseDate(*rawFrom)
		if err != nil {
			s.logger.Warn("ListConstraints: invalid date %q", *rawFrom)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		from = parsed
	}

	rules, err := s.constraintRepo.ListFrom(ctx, from)
	if err != nil {
		s.logger.Error("ListConstraints: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListConstraints - repository error: %v", ErrInternal, err)
	}

	resp := &models.ConstraintListResponse{Constraints: make([]models.ConstraintResponse, 0, len(rules))}
	for _, rule := range rules {
		item, err := s.toResponse(rule.Date, rule)
		if err != nil {
			return nil, err
		}
		resp.Constraints = append(resp.Constraints, *item)
	}
	return resp, nil
}

// getRule возвращает ограничения даты или nil, если их нет
func (s *Service) getRule(ctx context.Context, date time.Time) (*domain.ConstraintRule, error) {
	rule, err := s.constraintRepo.GetByDate(ctx, date)
	if errors.Is(err, constraintRepo.ErrConstraintNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return rule, nil
}

func (s *Service) rangesFromRequest(req *models.SaveRequest) ([]domain.BlackoutRange, error) {
	if len(req.Cells) > 0 && len(req.Ranges) > 0 {
		return nil, errors.New("either ranges or cells must be provided, not both")
	}

	var (
		ranges []domain.BlackoutRange
		err    error
	)
	if len(req.Cells) > 0 {
		ranges, err = s.grid.FromCells(req.Cells)
	} else {
		ranges, err = models.ToDomainRanges(req.Ranges)
	}
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateBlackoutRanges(ranges); err != nil {
		return nil, err
	}
	return ranges, nil
}

func (s *Service) toResponse(date time.Time, rule *domain.ConstraintRule) (*models.ConstraintResponse, error) {
	cells, err := s.grid.ToCells(rule)
	if err != nil {
		s.logger.Error("GetConstraint: failed to build cells for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to build cells: %v", ErrInternal, err)
	}
	resp := models.FromDomainConstraint(date, rule, s.grid, cells)
	return &resp, nil
}
