package update_booking_services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if err := domain.ValidateLines(req.Lines); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.People != nil {
		if err := domain.ValidatePeople(*req.People); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// servicesMessage текст записи журнала по знаку пересчитанного pending:
// долг клиента, возврат клиенту или полный расчет
func servicesMessage(bundle *domain.Bundle, pending decimal.Decimal) string {
	head := fmt.Sprintf("services changed to %q, price %s", bundle.Name, domain.FormatMoney(bundle.Price))
	switch pending.Sign() {
	case 1:
		return fmt.Sprintf("%s, pending %s", head, domain.FormatMoney(pending))
	case -1:
		return fmt.Sprintf("%s, refund due %s", head, domain.FormatMoney(pending.Neg()))
	default:
		return head + ", fully settled"
	}
}

// peopleClause фраза об изменении количества человек
func peopleClause(from, to int) string {
	return fmt.Sprintf("people changed from %d to %d", from, to)
}
