package list_constraints

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/service/constraints/models"
)

type ConstraintService interface {
	List(ctx context.Context, rawFrom *string) (*models.ConstraintListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
