package admit_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: admit_booking: invalid input", domain.ErrValidation)

	// ErrNotAvailable возвращается, когда время вне доступных интервалов дня
	ErrNotAvailable = fmt.Errorf("%w: admit_booking: time is outside of availability", domain.ErrNotAvailable)

	// ErrConstraintBlocked возвращается, когда время попадает в закрытый интервал
	ErrConstraintBlocked = fmt.Errorf("%w: admit_booking: time is blocked", domain.ErrConstraintBlocked)

	// ErrCapacityExceeded возвращается, когда на это время не хватает мест
	ErrCapacityExceeded = fmt.Errorf("%w: admit_booking: slot capacity exceeded", domain.ErrCapacityExceeded)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("admit_booking: internal error")
)
