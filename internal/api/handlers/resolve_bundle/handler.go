package resolve_bundle

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	resolveBundle "github.com/m04kA/SMC-SpaBookingService/internal/usecase/resolve_bundle"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidServices    = "некорректный набор услуг"
	msgCatalogIncomplete  = "для одной из услуг нет цены в каталоге"
	msgRaceConflict       = "пакет создается параллельно, повторите запрос"
)

type Handler struct {
	useCase ResolveBundleUseCase
	logger  Logger
}

func NewHandler(useCase ResolveBundleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bundles/resolve
// Находит пакет с тем же набором услуг и ценой или создает скрытый
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ResolveBundleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bundles/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, resolveBundle.ErrInvalidInput):
			h.logger.Warn("POST /bundles/resolve - Invalid services: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServices)

		case errors.Is(err, resolveBundle.ErrCatalogIncomplete):
			h.logger.Warn("POST /bundles/resolve - Catalog incomplete: %v", err)
			handlers.RespondUnprocessable(w, msgCatalogIncomplete)

		case errors.Is(err, resolveBundle.ErrBundleRaceConflict):
			h.logger.Warn("POST /bundles/resolve - Race conflict: %v", err)
			handlers.RespondConflict(w, msgRaceConflict)

		default:
			h.logger.Error("POST /bundles/resolve - Failed to resolve bundle: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /bundles/resolve - Bundle resolved: bundle_id=%d, created=%t", result.Bundle.ID, result.Created)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
