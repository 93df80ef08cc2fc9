package update_booking_fields

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	CreateLog(ctx context.Context, entry *domain.BookingLog) (*domain.BookingLog, error)
}

// BundleRepository интерфейс репозитория пакетов услуг
type BundleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Bundle, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик журнала
type Metrics interface {
	RecordAuditEntry(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
