package constraints

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// ConstraintRepository интерфейс репозитория ограничений по датам
type ConstraintRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.ConstraintRule, error)
	Upsert(ctx context.Context, date time.Time, ranges []domain.BlackoutRange) (*domain.ConstraintRule, error)
	DeleteByDate(ctx context.Context, date time.Time) error
	ListFrom(ctx context.Context, from time.Time) ([]*domain.ConstraintRule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
