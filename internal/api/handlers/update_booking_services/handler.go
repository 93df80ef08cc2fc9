package update_booking_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	updateBookingServices "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_booking_services"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidServices    = "некорректный набор услуг"
	msgBookingNotFound    = "бронирование не найдено"
	msgBundleNotFound     = "пакет бронирования не найден"
	msgCatalogIncomplete  = "для одной из услуг нет цены в каталоге"
	msgRaceConflict       = "пакет создается параллельно, повторите запрос"
)

type Handler struct {
	useCase UpdateBookingServicesUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingServicesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/services - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingServicesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/services - Invalid request body: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, updateBookingServices.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id}/services - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBookingServices.ErrBundleNotFound):
			h.logger.Warn("PUT /bookings/{id}/services - Bundle not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBundleNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PUT /bookings/{id}/services - Invalid services: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidServices)

		case errors.Is(err, domain.ErrCatalogIncomplete):
			h.logger.Warn("PUT /bookings/{id}/services - Catalog incomplete: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondUnprocessable(w, msgCatalogIncomplete)

		case errors.Is(err, domain.ErrBundleRaceConflict):
			h.logger.Warn("PUT /bookings/{id}/services - Bundle race conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgRaceConflict)

		default:
			h.logger.Error("PUT /bookings/{id}/services - Failed to update services: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/services - Services updated: booking_id=%d, bundle_id=%d, changed=%t",
		bookingID, result.Bundle.ID, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
