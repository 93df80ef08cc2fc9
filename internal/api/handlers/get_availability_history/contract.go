package get_availability_history

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	History(ctx context.Context, rawDate string) (*models.HistoryResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
