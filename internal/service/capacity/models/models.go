package models

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// CapacityRequest запрос на создание или изменение вместимости
type CapacityRequest struct {
	Value int `json:"value"`
}

// CapacityResponse текущая вместимость
type CapacityResponse struct {
	Value     int        `json:"value"`
	IsDefault bool       `json:"isDefault"` // значение не сохранено, используется значение по умолчанию
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainCapacity конвертирует domain модель в DTO
func FromDomainCapacity(c *domain.Capacity) *CapacityResponse {
	updatedAt := c.UpdatedAt
	return &CapacityResponse{Value: c.Value, UpdatedAt: &updatedAt}
}
