package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidAmount      = "некорректная сумма оплаты"
	msgInvalidInput       = "некорректные данные бронирования"
	msgBundleNotFound     = "пакет услуг не найден"
	msgNotAvailable       = "время вне доступных интервалов дня"
	msgConstraintBlocked  = "время попадает в закрытый интервал"
	msgCapacityExceeded   = "недостаточно мест на выбранное время"
	msgCatalogIncomplete  = "для одной из услуг нет цены в каталоге"
	msgRaceConflict       = "пакет создается параллельно, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Автор бронирования из заголовков (middleware Actor)
	creator, _ := middleware.GetActor(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(creator)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
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
		case errors.Is(err, domain.ErrNotAvailable):
			h.logger.Warn("POST /bookings - Not available: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgNotAvailable)

		case errors.Is(err, domain.ErrConstraintBlocked):
			h.logger.Warn("POST /bookings - Constraint blocked: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgConstraintBlocked)

		case errors.Is(err, domain.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: date=%s, time=%s, people=%d", req.Date, req.Time, req.People)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, domain.ErrBundleRaceConflict):
			h.logger.Warn("POST /bookings - Bundle race conflict: %v", err)
			handlers.RespondConflict(w, msgRaceConflict)

		case errors.Is(err, domain.ErrCatalogIncomplete):
			h.logger.Warn("POST /bookings - Catalog incomplete: %v", err)
			handlers.RespondUnprocessable(w, msgCatalogIncomplete)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /bookings - Bundle not found: bundle_id=%v", req.BundleID)
			handlers.RespondNotFound(w, msgBundleNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v", req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, order=%s",
		result.Booking.ID, result.Booking.InternalOrderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
