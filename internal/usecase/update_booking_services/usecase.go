package update_booking_services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	bundleRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/bundle"
	"github.com/m04kA/SMC-SpaBookingService/internal/usecase/resolve_bundle"
)

// UseCase use case смены набора услуг бронирования
type UseCase struct {
	bookingRepo BookingRepository
	bundleRepo  BundleRepository
	resolver    BundleResolver
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	bundleRepo BundleRepository,
	resolver BundleResolver,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		bundleRepo:  bundleRepo,
		resolver:    resolver,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute перепривязывает бронирование к пакету нового набора услуг
// Тот же набор и то же количество человек - ничего не меняется, журнал не пишется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingServices: booking=%d, lines=%d", req.BookingID, len(req.Lines))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingServices: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Бронирование, подбор пакета и журнал в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBookingServices: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingServices: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2.1. Текущий набор услуг берется из привязанного пакета
		current, err := uc.bundleRepo.GetByID(txCtx, booking.BundleID)
		if err != nil {
			if errors.Is(err, bundleRepo.ErrBundleNotFound) {
				uc.logger.Warn("UpdateBookingServices: bundle id=%d of booking id=%d not found", booking.BundleID, booking.ID)
				return ErrBundleNotFound
			}
			uc.logger.Error("UpdateBookingServices: failed to get bundle id=%d: %v", booking.BundleID, err)
			return fmt.Errorf("%w: failed to get current bundle: %w", ErrInternal, err)
		}

		sameLines := domain.SameLines(current.ServiceLines(), req.Lines)
		samePeople := req.People == nil || *req.People == booking.People
		if sameLines && samePeople {
			result = &Response{Booking: booking, Bundle: current}
			return nil
		}

		var clauses []string
		bundle := current

		// 2.2. Новый пакет и пересчет pending
		if !sameLines {
			resolved, err := uc.resolver.Execute(txCtx, &resolve_bundle.Request{Lines: req.Lines})
			if err != nil {
				return err
			}
			bundle = resolved.Bundle
			booking.RebindBundle(bundle)
			clauses = append(clauses, servicesMessage(bundle, booking.AmountPending))
		}

		// 2.3. Количество человек
		if !samePeople {
			clauses = append(clauses, peopleClause(booking.People, *req.People))
			booking.People = *req.People
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("UpdateBookingServices: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		// 2.4. Одна запись журнала
		entry, err := uc.bookingRepo.CreateLog(txCtx, &domain.BookingLog{
			BookingID: booking.ID,
			Message:   strings.Join(clauses, ". "),
		})
		if err != nil {
			uc.logger.Error("UpdateBookingServices: failed to write log for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to write log: %w", ErrInternal, err)
		}

		result = &Response{Booking: booking, Bundle: bundle, Changed: true, Log: entry}
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrValidation) ||
			errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrCatalogIncomplete) ||
			errors.Is(err, domain.ErrBundleRaceConflict) ||
			errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("UpdateBookingServices: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	if !result.Changed {
		uc.logger.Info("UpdateBookingServices: booking id=%d: services unchanged", req.BookingID)
		return result, nil
	}

	uc.metrics.RecordAuditEntry("services")
	uc.logger.Info("UpdateBookingServices: booking id=%d rebound to bundle id=%d: %s",
		result.Booking.ID, result.Bundle.ID, result.Log.Message)
	return result, nil
}
