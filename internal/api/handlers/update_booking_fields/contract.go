package update_booking_fields

import (
	"context"

	updateBookingFields "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_booking_fields"
)

type UpdateBookingFieldsUseCase interface {
	Execute(ctx context.Context, req *updateBookingFields.Request) (*updateBookingFields.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
