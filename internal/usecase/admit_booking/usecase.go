package admit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	capacityRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/capacity"
	constraintRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/constraint"
)

// UseCase use case проверки допуска бронирования:
// время внутри доступности, не в закрытом интервале, хватает мест на точное время
type UseCase struct {
	availabilityRepo AvailabilityRepository
	constraintRepo   ConstraintRepository
	capacityRepo     CapacityRepository
	bookingRepo      BookingRepository
	defaultCapacity  int
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	constraintRepo ConstraintRepository,
	capacityRepo CapacityRepository,
	bookingRepo BookingRepository,
	defaultCapacity int,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if defaultCapacity <= 0 {
		defaultCapacity = domain.DefaultCapacity
	}
	return &UseCase{
		availabilityRepo: availabilityRepo,
		constraintRepo:   constraintRepo,
		capacityRepo:     capacityRepo,
		bookingRepo:      bookingRepo,
		defaultCapacity:  defaultCapacity,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute выполняет проверку допуска без создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	admission, err := uc.Check(ctx, req)
	if err != nil {
		if outcome := RejectionOutcome(err); outcome != "" {
			uc.metrics.RecordAdmission(outcome)
		}
		return nil, err
	}

	uc.metrics.RecordAdmission(Outcome(admission))
	return &Response{
		Admission:     *admission,
		OccupiedAfter: admission.Occupancy.Occupied + req.People,
	}, nil
}

// Check вычисляет все проверки допуска
// Без force первое нарушение возвращается ошибкой; с force бронирование принимается,
// а все нарушения перечисляются в Admission.Overrides
// Внутри транзакции вызывающего строки слота блокируются (FOR UPDATE)
func (uc *UseCase) Check(ctx context.Context, req *Request) (*domain.Admission, error) {
	uc.logger.Info("AdmitBooking: date=%s, time=%s, people=%d, force=%t",
		req.Date.Format(domain.DateFormat), req.Time, req.People, req.Force)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AdmitBooking: validation failed: %v", err)
		return nil, err
	}

	admission := &domain.Admission{Forced: req.Force}

	// 2. Время должно попадать в интервал действующей версии доступности
	rules, err := uc.availabilityRepo.GetRulesForDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("AdmitBooking: failed to get availability rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %w", ErrInternal, err)
	}
	if rule := domain.SelectCurrentRule(rules, req.Date); rule != nil {
		if rng, ok := rule.RangeAt(req.Time); ok {
			admission.Range = &rng
		}
	}
	if admission.Range == nil {
		admission.Overrides = append(admission.Overrides, domain.OverrideNotAvailable)
	}

	// 3. Время не должно попадать в закрытый интервал даты
	constraint, err := uc.constraintRepo.GetByDate(ctx, req.Date)
	if err != nil && !errors.Is(err, constraintRepo.ErrConstraintNotFound) {
		uc.logger.Error("AdmitBooking: failed to get constraints: %v", err)
		return nil, fmt.Errorf("%w: failed to get constraints: %w", ErrInternal, err)
	}
	if constraint.IsBlocked(req.Time) {
		admission.Overrides = append(admission.Overrides, domain.OverrideConstraintBlocked)
	}

	// 4. Общая вместимость на точное время (другие времена того же дня не учитываются)
	capacity, err := uc.capacity(ctx)
	if err != nil {
		return nil, err
	}
	occupied, err := uc.bookingRepo.SumPeopleAtSlot(ctx, req.Date, req.Time)
	if err != nil {
		uc.logger.Error("AdmitBooking: failed to get slot occupancy: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot occupancy: %w", ErrInternal, err)
	}
	admission.Occupancy = domain.SlotOccupancy{
		Date:     req.Date,
		Time:     req.Time,
		Occupied: occupied,
		Capacity: capacity,
	}
	if admission.Occupancy.WouldExceed(req.People) {
		admission.Overrides = append(admission.Overrides, domain.OverrideCapacityExceeded)
	}

	// 5. Решение
	if admission.Overridden() && !req.Force {
		uc.logger.Warn("AdmitBooking: rejected %s %s: %v, occupancy %d/%d",
			req.Date.Format(domain.DateFormat), req.Time, admission.Overrides, occupied, capacity)
		return nil, rejection(admission.Overrides[0])
	}

	admission.Accepted = true
	if admission.Overridden() {
		uc.logger.Warn("AdmitBooking: forced admission %s %s, overrides=%v, occupancy %d/%d -> %d",
			req.Date.Format(domain.DateFormat), req.Time, admission.Overrides, occupied, capacity, occupied+req.People)
	} else {
		uc.logger.Info("AdmitBooking: accepted %s %s, occupancy %d/%d -> %d",
			req.Date.Format(domain.DateFormat), req.Time, occupied, capacity, occupied+req.People)
	}
	return admission, nil
}

// capacity текущая вместимость; если не создана - значение по умолчанию
func (uc *UseCase) capacity(ctx context.Context) (int, error) {
	c, err := uc.capacityRepo.Get(ctx)
	if errors.Is(err, capacityRepo.ErrCapacityNotFound) {
		uc.logger.Warn("AdmitBooking: capacity is not configured, using default=%d", uc.defaultCapacity)
		return uc.defaultCapacity, nil
	}
	if err != nil {
		uc.logger.Error("AdmitBooking: failed to get capacity: %v", err)
		return 0, fmt.Errorf("%w: failed to get capacity: %w", ErrInternal, err)
	}
	return c.Value, nil
}
