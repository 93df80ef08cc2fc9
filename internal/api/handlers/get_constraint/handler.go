package get_constraint

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/constraints"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

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

// Handle GET /api/v1/constraints/{date}
// Возвращает закрытые интервалы даты и их представление в виде сетки ячеек
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	result, err := h.service.Get(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, constraints.ErrInvalidInput):
			h.logger.Warn("GET /constraints/{date} - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /constraints/{date} - Failed to get constraints: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /constraints/{date} - Constraints retrieved: date=%s, ranges=%d", date, len(result.Ranges))
	handlers.RespondJSON(w, http.StatusOK, result)
}
