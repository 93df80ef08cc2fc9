package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория версий доступности
type AvailabilityRepository interface {
	GetRulesForDate(ctx context.Context, date time.Time) ([]*domain.AvailabilityRule, error)
}

// ConstraintRepository интерфейс репозитория ограничений по датам
type ConstraintRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.ConstraintRule, error)
}

// CapacityRepository интерфейс репозитория вместимости
type CapacityRepository interface {
	Get(ctx context.Context) (*domain.Capacity, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListByDate получает все бронирования на дату
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
