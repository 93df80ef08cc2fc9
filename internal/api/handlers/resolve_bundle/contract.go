package resolve_bundle

import (
	"context"

	resolveBundle "github.com/m04kA/SMC-SpaBookingService/internal/usecase/resolve_bundle"
)

type ResolveBundleUseCase interface {
	Execute(ctx context.Context, req *resolveBundle.Request) (*resolveBundle.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
