package admit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	admitBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/admit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные запроса"
	msgNotAvailable       = "время вне доступных интервалов дня"
	msgConstraintBlocked  = "время попадает в закрытый интервал"
	msgCapacityExceeded   = "недостаточно мест на выбранное время"
)

type Handler struct {
	useCase AdmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase AdmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admission
// Проверка допуска без создания бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AdmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admission - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admission - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.Info("POST /admission - Admission checked: date=%s, time=%s, overrides=%v",
		req.Date, req.Time, result.Admission.Overrides)
	handlers.RespondJSON(w, http.StatusOK, FromAdmission(&result.Admission, result.OccupiedAfter))
}

// respondError отвечает на отказ в допуске; нарушения - 409
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, admitBooking.ErrNotAvailable):
		h.logger.Warn("POST /admission - Not available: %v", err)
		handlers.RespondConflict(w, msgNotAvailable)

	case errors.Is(err, admitBooking.ErrConstraintBlocked):
		h.logger.Warn("POST /admission - Constraint blocked: %v", err)
		handlers.RespondConflict(w, msgConstraintBlocked)

	case errors.Is(err, admitBooking.ErrCapacityExceeded):
		h.logger.Warn("POST /admission - Capacity exceeded: %v", err)
		handlers.RespondConflict(w, msgCapacityExceeded)

	case errors.Is(err, admitBooking.ErrInvalidInput):
		h.logger.Warn("POST /admission - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("POST /admission - Failed to check admission: error=%v", err)
		handlers.RespondInternalError(w)
	}
}
