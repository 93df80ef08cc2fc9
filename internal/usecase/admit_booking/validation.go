package admit_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if err := domain.ValidatePeople(req.People); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

// rejection ошибка отказа по первому нарушению
func rejection(override domain.Override) error {
	switch override {
	case domain.OverrideNotAvailable:
		return ErrNotAvailable
	case domain.OverrideConstraintBlocked:
		return ErrConstraintBlocked
	default:
		return ErrCapacityExceeded
	}
}

// Outcome метка решения для метрик
func Outcome(admission *domain.Admission) string {
	if admission.Overridden() {
		return "overridden"
	}
	return "accepted"
}

// RejectionOutcome метка отказа для метрик
func RejectionOutcome(err error) string {
	switch {
	case errors.Is(err, ErrNotAvailable):
		return string(domain.OverrideNotAvailable)
	case errors.Is(err, ErrConstraintBlocked):
		return string(domain.OverrideConstraintBlocked)
	case errors.Is(err, ErrCapacityExceeded):
		return string(domain.OverrideCapacityExceeded)
	}
	return ""
}
