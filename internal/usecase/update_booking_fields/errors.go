package update_booking_fields

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: update_booking_fields: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: update_booking_fields: booking not found", domain.ErrNotFound)

	// ErrBundleNotFound возвращается, когда новый пакет не найден
	ErrBundleNotFound = fmt.Errorf("%w: update_booking_fields: bundle not found", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_fields: internal error")
)
