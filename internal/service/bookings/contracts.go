package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	GetLogs(ctx context.Context, bookingID int64) ([]*domain.BookingLog, error)
}

// BundleRepository интерфейс репозитория пакетов услуг
type BundleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Bundle, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
