package save_constraint

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/constraints"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/constraints/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные интервалы или ячейки"
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

// Handle PUT /api/v1/constraints/{date}
// Тело: {"ranges": [...]} или {"cells": [...]}; пустой набор снимает ограничения даты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	var req models.SaveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /constraints/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Save(r.Context(), date, &req)
	if err != nil {
		switch {
		case errors.Is(err, constraints.ErrInvalidInput):
			h.logger.Warn("PUT /constraints/{date} - Invalid data: date=%s, error=%v", date, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /constraints/{date} - Failed to save constraints: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /constraints/{date} - Constraints saved: date=%s, ranges=%d", date, len(result.Ranges))
	handlers.RespondJSON(w, http.StatusOK, result)
}
