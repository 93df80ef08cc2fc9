package update_booking_fields

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	updateBookingFields "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_booking_fields"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidAmount      = "некорректная сумма"
	msgInvalidInput       = "некорректные данные для изменения"
	msgBookingNotFound    = "бронирование не найдено"
	msgBundleNotFound     = "пакет услуг не найден"
)

type Handler struct {
	useCase UpdateBookingFieldsUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingFieldsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
// Меняет отдельные поля и пишет одну запись в журнал
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingFieldsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse request: booking_id=%d, error=%v", bookingID, err)
		switch {
		case errors.Is(err, errInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)
		case errors.Is(err, errInvalidAmount):
			handlers.RespondBadRequest(w, msgInvalidAmount)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBookingFields.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBookingFields.ErrBundleNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Bundle not found: booking_id=%d, bundle_id=%v", bookingID, req.BundleID)
			handlers.RespondNotFound(w, msgBundleNotFound)

		case errors.Is(err, updateBookingFields.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated: booking_id=%d, logged=%t", bookingID, result.Log != nil)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
