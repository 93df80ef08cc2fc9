package get_constraint

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/service/constraints/models"
)

type ConstraintService interface {
	Get(ctx context.Context, rawDate string) (*models.ConstraintResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
