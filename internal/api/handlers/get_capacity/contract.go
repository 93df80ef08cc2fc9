package get_capacity

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/service/capacity/models"
)

type CapacityService interface {
	Get(ctx context.Context) (*models.CapacityResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
