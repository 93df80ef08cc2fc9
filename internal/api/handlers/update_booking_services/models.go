package update_booking_services

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
	updateBookingServices "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_booking_services"
)

// UpdateBookingServicesRequest HTTP request model
type UpdateBookingServicesRequest struct {
	Services []handlers.ServiceLineRequest `json:"services"`
	People   *int                          `json:"people,omitempty"`
}

// UpdateBookingServicesResponse HTTP response model
type UpdateBookingServicesResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	Changed bool                    `json:"changed"`
	Message *string                 `json:"message,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingServicesRequest) ToUseCaseRequest(bookingID int64) *updateBookingServices.Request {
	return &updateBookingServices.Request{
		BookingID: bookingID,
		Lines:     handlers.ToDomainLines(r.Services),
		People:    r.People,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBookingServices.Response) *UpdateBookingServicesResponse {
	result := &UpdateBookingServicesResponse{
		Booking: models.FromDomainBooking(resp.Booking, resp.Bundle),
		Changed: resp.Changed,
	}
	if resp.Log != nil {
		result.Message = &resp.Log.Message
	}
	return result
}
