package update_booking_services

import (
	"context"

	updateBookingServices "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_booking_services"
)

type UpdateBookingServicesUseCase interface {
	Execute(ctx context.Context, req *updateBookingServices.Request) (*updateBookingServices.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
