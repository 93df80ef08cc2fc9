package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if err := domain.ValidatePeople(req.People); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Ровно один способ задать пакет
	switch {
	case req.BundleID != nil && len(req.Lines) > 0:
		return fmt.Errorf("%w: bundleId and services are mutually exclusive", ErrInvalidInput)
	case req.BundleID == nil && len(req.Lines) == 0:
		return fmt.Errorf("%w: bundleId or services is required", ErrInvalidInput)
	case req.BundleID != nil && *req.BundleID <= 0:
		return fmt.Errorf("%w: bundleId must be positive", ErrInvalidInput)
	}

	if len(req.Lines) > 0 {
		if err := domain.ValidateLines(req.Lines); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if req.AmountPaid.IsNegative() {
		return fmt.Errorf("%w: amountPaid must not be negative", ErrInvalidInput)
	}

	if req.ClientID != nil && *req.ClientID <= 0 {
		return fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	if req.Creator != nil {
		if err := req.Creator.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if req.Comment != nil && len(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	return nil
}

// slotLockKey ключ блокировки слота
func slotLockKey(date time.Time, t fmt.Stringer) string {
	return fmt.Sprintf("slot:%s:%s", date.Format(domain.DateFormat), t)
}

// orderID номер заказа: ddmmyyyy + случайные цифры
func orderID(now time.Time, random RandomSource) string {
	limit := 1
	for i := 0; i < domain.OrderIDRandDigits; i++ {
		limit *= 10
	}
	return fmt.Sprintf("%s%0*d", now.Format(domain.OrderIDLayout), domain.OrderIDRandDigits, random.IntN(limit))
}

// isBusinessError ошибки, которые отдаются вызывающему как есть
func isBusinessError(err error) bool {
	for _, target := range []error{
		domain.ErrValidation,
		domain.ErrNotFound,
		domain.ErrNotAvailable,
		domain.ErrConstraintBlocked,
		domain.ErrCapacityExceeded,
		domain.ErrCatalogIncomplete,
		domain.ErrBundleRaceConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
