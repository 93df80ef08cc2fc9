package resolve_bundle

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/locker"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetByKeys(ctx context.Context, keys []domain.CatalogKey) ([]*domain.CatalogUnit, error)
}

// BundleRepository интерфейс репозитория пакетов услуг
type BundleRepository interface {
	FindByPrice(ctx context.Context, price decimal.Decimal) ([]*domain.Bundle, error)
	Create(ctx context.Context, bundle *domain.Bundle) (*domain.Bundle, error)
}

// Locker именованная блокировка
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (locker.Unlock, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик пакетов
type Metrics interface {
	RecordBundleResolution(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
