package check_constraint

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/service/constraints/models"
)

type ConstraintService interface {
	IsBlocked(ctx context.Context, rawDate, rawTime string) (*models.BlockedResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
