package update_booking_services

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Request модель запроса на смену услуг бронирования
type Request struct {
	BookingID int64
	Lines     []domain.ServiceLine // новый набор услуг целиком
	People    *int                 // новое количество человек (опционально)
}

// Response модель ответа
type Response struct {
	Booking *domain.Booking
	Bundle  *domain.Bundle
	Changed bool               // false, если набор услуг и количество человек не изменились
	Log     *domain.BookingLog // запись журнала, если были изменения
}
