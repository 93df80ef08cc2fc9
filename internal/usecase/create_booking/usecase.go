package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	bundleRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/bundle"
	"github.com/m04kA/SMC-SpaBookingService/internal/usecase/admit_booking"
	"github.com/m04kA/SMC-SpaBookingService/internal/usecase/resolve_bundle"
)

// maxOrderIDAttempts попыток подобрать свободный номер заказа
const maxOrderIDAttempts = 10

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	bundleRepo   BundleRepository
	admission    Admission
	resolver     BundleResolver
	locker       Locker
	lockTTL      time.Duration
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	random       RandomSource
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	bundleRepo BundleRepository,
	admission Admission,
	resolver BundleResolver,
	locker Locker,
	lockTTL time.Duration,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		bundleRepo:   bundleRepo,
		admission:    admission,
		resolver:     resolver,
		locker:       locker,
		lockTTL:      lockTTL,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		random:       globalRandom{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Допуск, подбор пакета и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, time=%s, people=%d, force=%t",
		req.Date.Format(domain.DateFormat), req.Time, req.People, req.Force)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Блокировка слота; без неё гонку закрывает сериализуемая транзакция
	key := slotLockKey(req.Date, req.Time)
	unlock, err := uc.locker.Lock(ctx, key, uc.lockTTL)
	if err != nil {
		uc.logger.Warn("CreateBooking: proceeding without lock %s: %v", key, err)
	} else {
		defer unlock()
	}

	now := uc.timeProvider.Now()
	var result *Response

	// 3. Все операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Допуск: доступность, закрытые интервалы, вместимость (строки слота под FOR UPDATE)
		admission, err := uc.admission.Check(txCtx, &admit_booking.Request{
			Date:   req.Date,
			Time:   req.Time,
			People: req.People,
			Force:  req.Force,
		})
		if err != nil {
			return err
		}

		// 3.2. Пакет: существующий или подобранный по строкам
		bundle, err := uc.bundle(txCtx, req)
		if err != nil {
			return err
		}

		// 3.3. Бронирование с pending = цена пакета - оплачено (оба по округленной сумме)
		paid := req.AmountPaid.Round(domain.MoneyPlaces)
		booking := &domain.Booking{
			ClientID:      req.ClientID,
			Creator:       req.Creator,
			Date:          req.Date,
			Time:          req.Time,
			People:        req.People,
			Comment:       req.Comment,
			BundleID:      bundle.ID,
			AmountPaid:    paid,
			AmountPending: domain.PendingAmount(bundle.Price, paid),
			PaymentDate:   req.PaymentDate,
		}

		created, err := uc.create(txCtx, booking, now)
		if err != nil {
			return err
		}

		result = &Response{Booking: created, Bundle: bundle, Admission: *admission}
		return nil
	})

	if err != nil {
		if outcome := admit_booking.RejectionOutcome(err); outcome != "" {
			uc.metrics.RecordAdmission(outcome)
		}
		if isBusinessError(err) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	uc.metrics.RecordAdmission(admit_booking.Outcome(&result.Admission))
	if result.Admission.Overridden() {
		uc.logger.Warn("CreateBooking: booking id=%d created with overrides=%v",
			result.Booking.ID, result.Admission.Overrides)
	}
	uc.logger.Info("CreateBooking: successfully created booking id=%d, order=%s, bundle=%d",
		result.Booking.ID, result.Booking.InternalOrderID, result.Bundle.ID)

	return result, nil
}

// bundle загружает пакет по ID или подбирает его по строкам услуг
func (uc *UseCase) bundle(ctx context.Context, req *Request) (*domain.Bundle, error) {
	if req.BundleID != nil {
		bundle, err := uc.bundleRepo.GetByID(ctx, *req.BundleID)
		if err != nil {
			if errors.Is(err, bundleRepo.ErrBundleNotFound) {
				uc.logger.Warn("CreateBooking: bundle id=%d not found", *req.BundleID)
				return nil, ErrBundleNotFound
			}
			uc.logger.Error("CreateBooking: failed to get bundle id=%d: %v", *req.BundleID, err)
			return nil, fmt.Errorf("%w: failed to get bundle: %w", ErrInternal, err)
		}
		return bundle, nil
	}

	resolved, err := uc.resolver.Execute(ctx, &resolve_bundle.Request{Lines: req.Lines})
	if err != nil {
		return nil, err
	}
	return resolved.Bundle, nil
}

// create сохраняет бронирование со свободным номером заказа
func (uc *UseCase) create(ctx context.Context, booking *domain.Booking, now time.Time) (*domain.Booking, error) {
	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		booking.InternalOrderID = orderID(now, uc.random)

		exists, err := uc.bookingRepo.ExistsInternalOrderID(ctx, booking.InternalOrderID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check order id: %v", err)
			return nil, fmt.Errorf("%w: failed to check order id: %w", ErrInternal, err)
		}
		if exists {
			continue
		}

		created, err := uc.bookingRepo.Create(ctx, booking)
		if errors.Is(err, bookingRepo.ErrDuplicateOrderID) {
			continue
		}
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		return created, nil
	}

	uc.logger.Error("CreateBooking: no free order id after %d attempts", maxOrderIDAttempts)
	return nil, fmt.Errorf("%w: %w", ErrInternal, ErrOrderIDExhausted)
}
