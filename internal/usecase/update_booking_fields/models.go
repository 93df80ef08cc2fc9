package update_booking_fields

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модель запроса на изменение полей бронирования
// nil означает "не менять"
type Request struct {
	BookingID        int64
	Date             *time.Time
	Time             *types.TimeString
	People           *int
	PaymentDate      *time.Time
	ClearPaymentDate bool // сбросить дату оплаты
	AmountPaid       *decimal.Decimal
	AmountPending    *decimal.Decimal
	BundleID         *int64
	Comment          *string
	CheckedIn        *bool
	CheckedOut       *bool
	Message          *string // заменяет сформированный текст записи журнала
}

// Response модель ответа
type Response struct {
	Booking *domain.Booking
	Message string             // итоговый текст изменений или NoChangesMessage
	Log     *domain.BookingLog // nil, если запись в журнал не создавалась
}
