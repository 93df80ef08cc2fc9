package save_capacity

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/capacity"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/capacity/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidValue       = "некорректное значение вместимости"
	msgAlreadyExists      = "вместимость уже задана"
	msgNotFound           = "вместимость еще не задана"
)

type saveFunc func(ctx context.Context, req *models.CapacityRequest) (*models.CapacityResponse, error)

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

// HandleCreate POST /api/v1/capacity
// Вместимость единственная; повторное создание - 409
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /capacity", h.service.Create, http.StatusCreated)
}

// HandleUpdate PUT /api/v1/capacity
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PUT /capacity", h.service.Update, http.StatusOK)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, route string, save saveFunc, status int) {
	var req models.CapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := save(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrInvalidInput):
			h.logger.Warn("%s - Invalid value: value=%d", route, req.Value)
			handlers.RespondBadRequest(w, msgInvalidValue)

		case errors.Is(err, capacity.ErrCapacityAlreadyExists):
			h.logger.Warn("%s - Capacity already exists", route)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, capacity.ErrCapacityNotFound):
			h.logger.Warn("%s - Capacity not configured", route)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("%s - Failed to save capacity: value=%d, error=%v", route, req.Value, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Capacity saved: value=%d", route, result.Value)
	handlers.RespondJSON(w, status, result)
}
