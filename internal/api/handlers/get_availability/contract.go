package get_availability

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	Resolve(ctx context.Context, rawDate string) (*models.ResolveResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
