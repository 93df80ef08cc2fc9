package save_constraint

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/service/constraints/models"
)

type ConstraintService interface {
	Save(ctx context.Context, rawDate string, req *models.SaveRequest) (*models.ConstraintResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
