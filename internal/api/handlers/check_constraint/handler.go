package check_constraint

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/constraints"
)

const (
	msgMissingTime  = "не указан параметр time"
	msgInvalidParam = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
)

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

// Handle GET /api/v1/constraints/{date}/blocked?time=HH:MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	t := r.URL.Query().Get("time")
	if t == "" {
		h.logger.Warn("GET /constraints/{date}/blocked - Missing time: date=%s", date)
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	result, err := h.service.IsBlocked(r.Context(), date, t)
	if err != nil {
		switch {
		case errors.Is(err, constraints.ErrInvalidInput):
			h.logger.Warn("GET /constraints/{date}/blocked - Invalid params: date=%s, time=%s", date, t)
			handlers.RespondBadRequest(w, msgInvalidParam)

		default:
			h.logger.Error("GET /constraints/{date}/blocked - Failed to check: date=%s, time=%s, error=%v", date, t, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /constraints/{date}/blocked - date=%s, time=%s, blocked=%t", date, t, result.Blocked)
	handlers.RespondJSON(w, http.StatusOK, result)
}
