package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
// Пакет задается либо BundleID, либо строками услуг Lines
type Request struct {
	Date        time.Time            // Дата бронирования (без времени)
	Time        types.TimeString     // Время начала (например, "10:00")
	People      int                  // Количество человек
	BundleID    *int64               // ID существующего пакета
	Lines       []domain.ServiceLine // Строки услуг для подбора пакета
	AmountPaid  decimal.Decimal      // Оплачено (по умолчанию 0)
	PaymentDate *time.Time           // Дата оплаты (опционально)
	ClientID    *int64               // Клиент (опционально)
	Creator     *domain.Creator      // Кто создал бронирование (опционально)
	Comment     *string              // Комментарий (опционально)
	Force       bool                 // Принять, даже если проверки допуска не пройдены
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking   *domain.Booking
	Bundle    *domain.Bundle
	Admission domain.Admission
}
