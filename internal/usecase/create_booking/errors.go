package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrBundleNotFound возвращается, когда указанный пакет не найден
	ErrBundleNotFound = fmt.Errorf("%w: create_booking: bundle not found", domain.ErrNotFound)

	// ErrOrderIDExhausted возвращается, если не удалось подобрать свободный номер заказа
	ErrOrderIDExhausted = errors.New("create_booking: no free internal order id")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
