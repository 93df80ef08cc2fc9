package update_booking_fields

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	bundleRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/bundle"
)

// UseCase use case изменения полей бронирования с записью в журнал
type UseCase struct {
	bookingRepo BookingRepository
	bundleRepo  BundleRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	bundleRepo BundleRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		bundleRepo:  bundleRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute применяет изменения и пишет одну запись в журнал
// Если изменений нет и сообщение не передано, запись не создается
// Переданное сообщение заменяет сформированный текст, изменения применяются в любом случае
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingFields: booking=%d", req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingFields: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Чтение под блокировкой, изменение и журнал в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBookingFields: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingFields: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		before := *booking

		// 2.1. Поля без влияния на суммы
		applyFields(booking, req)

		// 2.2. Суммы: смена пакета всегда пересчитывает pending
		if err := uc.applyAmounts(txCtx, booking, req); err != nil {
			return err
		}

		// 2.3. Сохраняем
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("UpdateBookingFields: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		// 2.4. Журнал
		derived := diff(&before, booking).Message()
		result = &Response{Booking: booking, Message: derived}
		if req.Message != nil {
			result.Message = *req.Message
		} else if derived == domain.NoChangesMessage {
			return nil
		}

		entry, err := uc.bookingRepo.CreateLog(txCtx, &domain.BookingLog{BookingID: booking.ID, Message: result.Message})
		if err != nil {
			uc.logger.Error("UpdateBookingFields: failed to write log for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to write log: %w", ErrInternal, err)
		}
		result.Log = entry
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("UpdateBookingFields: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	if result.Log != nil {
		uc.metrics.RecordAuditEntry("fields")
		uc.logger.Info("UpdateBookingFields: booking id=%d updated: %s", result.Booking.ID, result.Message)
	} else {
		uc.logger.Info("UpdateBookingFields: booking id=%d: %s", result.Booking.ID, domain.NoChangesMessage)
	}
	return result, nil
}

// applyFields переносит в бронирование поля запроса, не влияющие на суммы
func applyFields(booking *domain.Booking, req *Request) {
	if req.Date != nil {
		booking.Date = *req.Date
	}
	if req.Time != nil {
		booking.Time = *req.Time
	}
	if req.People != nil {
		booking.People = *req.People
	}
	if req.PaymentDate != nil {
		booking.PaymentDate = req.PaymentDate
	}
	if req.ClearPaymentDate {
		booking.PaymentDate = nil
	}
	if req.Comment != nil {
		booking.Comment = req.Comment
	}
	if req.CheckedIn != nil {
		booking.CheckedIn = *req.CheckedIn
	}
	if req.CheckedOut != nil {
		booking.CheckedOut = *req.CheckedOut
	}
}

// applyAmounts обновляет оплату, пакет и pending
// Новый пакет: pending = цена - оплачено, явный pending игнорируется
// Только оплата без явного pending: pending пересчитывается от цены текущего пакета
func (uc *UseCase) applyAmounts(ctx context.Context, booking *domain.Booking, req *Request) error {
	paidChanged := false
	if req.AmountPaid != nil {
		paid := req.AmountPaid.Round(domain.MoneyPlaces)
		paidChanged = !paid.Equal(booking.AmountPaid)
		booking.AmountPaid = paid
	}

	if req.BundleID != nil && *req.BundleID != booking.BundleID {
		bundle, err := uc.getBundle(ctx, *req.BundleID)
		if err != nil {
			return err
		}
		if req.AmountPending != nil {
			uc.logger.Warn("UpdateBookingFields: booking id=%d: amountPending ignored, recomputed from bundle id=%d",
				booking.ID, bundle.ID)
		}
		booking.RebindBundle(bundle)
		return nil
	}

	if req.AmountPending != nil {
		booking.AmountPending = req.AmountPending.Round(domain.MoneyPlaces)
		return nil
	}

	if paidChanged {
		bundle, err := uc.getBundle(ctx, booking.BundleID)
		if err != nil {
			return err
		}
		booking.AmountPending = domain.PendingAmount(bundle.Price, booking.AmountPaid)
	}
	return nil
}

func (uc *UseCase) getBundle(ctx context.Context, id int64) (*domain.Bundle, error) {
	bundle, err := uc.bundleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bundleRepo.ErrBundleNotFound) {
			uc.logger.Warn("UpdateBookingFields: bundle id=%d not found", id)
			return nil, ErrBundleNotFound
		}
		uc.logger.Error("UpdateBookingFields: failed to get bundle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get bundle: %w", ErrInternal, err)
	}
	return bundle, nil
}
