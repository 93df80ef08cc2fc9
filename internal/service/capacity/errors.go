package capacity

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректном значении вместимости
	ErrInvalidInput = fmt.Errorf("%w: capacity: invalid input", domain.ErrValidation)

	// ErrCapacityNotFound возвращается при обновлении несозданной вместимости
	ErrCapacityNotFound = fmt.Errorf("%w: capacity is not configured", domain.ErrNotFound)

	// ErrCapacityAlreadyExists возвращается при попытке создать вторую вместимость
	ErrCapacityAlreadyExists = errors.New("capacity: already exists")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("capacity: internal error")
)
