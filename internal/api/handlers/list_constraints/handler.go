package list_constraints

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/constraints"
)

const msgInvalidDate = "некорректный формат параметра from, ожидается YYYY-MM-DD"

type Handler struct {
	service ConstraintService
	logger  Logger
}

func NewHandler(service ConstraintService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/constraints?from=YYYY-MM-DD
// Без from - начиная с сегодняшнего дня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var from *string
	if v := r.URL.Query().Get("from"); v != "" {
		from = &v
	}

	result, err := h.service.List(r.Context(), from)
	if err != nil {
		switch {
		case errors.Is(err, constraints.ErrInvalidInput):
			h.logger.Warn("GET /constraints - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /constraints - Failed to list constraints: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /constraints - Constraints listed: count=%d", len(result.Constraints))
	handlers.RespondJSON(w, http.StatusOK, result)
}
