package constraints

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректной дате, времени или интервалах
	ErrInvalidInput = fmt.Errorf("%w: constraints: invalid input", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("constraints: internal error")
)
