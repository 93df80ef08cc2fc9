package catalog

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	EnsureUnits(ctx context.Context, units []*domain.CatalogUnit) (int64, error)
	List(ctx context.Context) ([]*domain.CatalogUnit, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
