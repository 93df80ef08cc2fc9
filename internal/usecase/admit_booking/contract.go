package admit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
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
	SumPeopleAtSlot(ctx context.Context, date time.Time, hour types.TimeString) (int, error)
}

// Metrics интерфейс метрик допуска
type Metrics interface {
	RecordAdmission(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
