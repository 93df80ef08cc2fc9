package save_capacity

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/service/capacity/models"
)

type CapacityService interface {
	Create(ctx context.Context, req *models.CapacityRequest) (*models.CapacityResponse, error)
	Update(ctx context.Context, req *models.CapacityRequest) (*models.CapacityResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
