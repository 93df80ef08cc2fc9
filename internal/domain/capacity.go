package domain

import (
	"fmt"
	"time"
)

// Capacity global singleton: max people at the same date+time
type Capacity struct {
	ID        int64
	Value     int
	UpdatedAt time.Time
}

// ValidateCapacity positive and bounded
func ValidateCapacity(value int) error {
	if value <= 0 || value > MaxCapacity {
		return fmt.Errorf("%w: capacity must be between 1 and %d, got %d", ErrValidation, MaxCapacity, value)
	}
	return nil
}
