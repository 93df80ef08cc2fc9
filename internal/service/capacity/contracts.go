package capacity

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// CapacityRepository интерфейс репозитория вместимости
type CapacityRepository interface {
	Get(ctx context.Context) (*domain.Capacity, error)
	Create(ctx context.Context, value int) (*domain.Capacity, error)
	Update(ctx context.Context, value int) (*domain.Capacity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
