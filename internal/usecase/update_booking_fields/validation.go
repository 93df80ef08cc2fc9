package update_booking_fields

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be empty", ErrInvalidInput)
	}

	if req.Time != nil {
		if err := req.Time.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
		}
	}

	if req.People != nil {
		if err := domain.ValidatePeople(*req.People); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if req.PaymentDate != nil && req.ClearPaymentDate {
		return fmt.Errorf("%w: paymentDate and clearPaymentDate are mutually exclusive", ErrInvalidInput)
	}

	if req.AmountPaid != nil && req.AmountPaid.IsNegative() {
		return fmt.Errorf("%w: amountPaid must not be negative", ErrInvalidInput)
	}

	if req.BundleID != nil && *req.BundleID <= 0 {
		return fmt.Errorf("%w: bundleId must be positive", ErrInvalidInput)
	}

	if req.Comment != nil && len(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	if req.Message != nil {
		if strings.TrimSpace(*req.Message) == "" {
			return fmt.Errorf("%w: message must not be blank", ErrInvalidInput)
		}
		if len(*req.Message) > domain.MaxMessageLength {
			return fmt.Errorf("%w: message is too long", ErrInvalidInput)
		}
	}

	return nil
}
