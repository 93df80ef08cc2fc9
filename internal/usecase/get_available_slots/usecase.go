package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	capacityRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/capacity"
	constraintRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/constraint"
)

// UseCase use case для получения слотов дня с занятостью
type UseCase struct {
	availabilityRepo AvailabilityRepository
	constraintRepo   ConstraintRepository
	capacityRepo     CapacityRepository
	bookingRepo      BookingRepository
	grid             domain.CellGrid
	defaultCapacity  int
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	constraintRepo ConstraintRepository,
	capacityRepo CapacityRepository,
	bookingRepo BookingRepository,
	grid domain.CellGrid,
	defaultCapacity int,
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
		grid:             grid,
		defaultCapacity:  defaultCapacity,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Действующая версия доступности на дату
	rules, err := uc.availabilityRepo.GetRulesForDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %w", ErrInternal, err)
	}
	rule := domain.SelectCurrentRule(rules, req.Date)

	// 4. Генерируем слоты по сетке
	slots, err := generateTimeSlots(rule, uc.grid)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %w", ErrInternal, err)
	}

	// 5. Вместимость
	capacity, err := uc.capacity(ctx)
	if err != nil {
		return nil, err
	}

	if len(slots) == 0 {
		uc.logger.Info("GetAvailableSlots: no availability on %s", req.Date.Format(domain.DateFormat))
		return &Response{Date: req.Date, Capacity: capacity, Slots: slots}, nil
	}

	// 6. Закрытые интервалы даты
	constraint, err := uc.constraintRepo.GetByDate(ctx, req.Date)
	if err != nil && !errors.Is(err, constraintRepo.ErrConstraintNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get constraints: %v", err)
		return nil, fmt.Errorf("%w: failed to get constraints: %w", ErrInternal, err)
	}

	// 7. Бронирования на дату
	bookings, err := uc.bookingRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	// 8. Вычисляем занятость для каждого слота
	fillSlots(slots, req.Date, now, constraint, occupancyByTime(bookings), capacity)

	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s, bookings=%d",
		len(slots), req.Date.Format(domain.DateFormat), len(bookings))

	return &Response{
		Date:     req.Date,
		Capacity: capacity,
		Slots:    slots,
	}, nil
}

// capacity текущая вместимость; если не создана - значение по умолчанию
func (uc *UseCase) capacity(ctx context.Context) (int, error) {
	c, err := uc.capacityRepo.Get(ctx)
	if errors.Is(err, capacityRepo.ErrCapacityNotFound) {
		return uc.defaultCapacity, nil
	}
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get capacity: %v", err)
		return 0, fmt.Errorf("%w: failed to get capacity: %w", ErrInternal, err)
	}
	return c.Value, nil
}
