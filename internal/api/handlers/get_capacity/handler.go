package get_capacity

import (
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
)

type Handler struct {
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/capacity
// Если вместимость не задана, возвращается значение по умолчанию с isDefault=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /capacity - Failed to get capacity: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /capacity - Capacity retrieved: value=%d, default=%t", result.Value, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
