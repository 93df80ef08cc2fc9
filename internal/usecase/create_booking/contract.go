package create_booking

import (
	"context"
	"math/rand"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/usecase/admit_booking"
	"github.com/m04kA/SMC-SpaBookingService/internal/usecase/resolve_bundle"
	"github.com/m04kA/SMC-SpaBookingService/pkg/locker"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ExistsInternalOrderID(ctx context.Context, orderID string) (bool, error)
}

// BundleRepository интерфейс репозитория пакетов услуг
type BundleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Bundle, error)
}

// Admission проверка допуска бронирования
type Admission interface {
	Check(ctx context.Context, req *admit_booking.Request) (*domain.Admission, error)
}

// BundleResolver поиск или создание пакета по строкам услуг
type BundleResolver interface {
	Execute(ctx context.Context, req *resolve_bundle.Request) (*resolve_bundle.Response, error)
}

// Locker именованная блокировка
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (locker.Unlock, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик допуска
type Metrics interface {
	RecordAdmission(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RandomSource источник случайных чисел для номера заказа
type RandomSource interface {
	IntN(n int) int
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

// globalRandom общий генератор math/rand/v2
type globalRandom struct{}

func (globalRandom) IntN(n int) int {
	return rand.Intn(n)
}
