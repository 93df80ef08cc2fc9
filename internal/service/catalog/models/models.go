package models

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// CatalogUnitResponse единица каталога
type CatalogUnitResponse struct {
	ID        int64  `json:"id"`
	Key       string `json:"key"` // "relax_60"
	Category  string `json:"category"`
	Duration  int    `json:"duration"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"` // "30.00"
}

// CatalogListResponse ответ со списком каталога
type CatalogListResponse struct {
	Units []CatalogUnitResponse `json:"units"`
}

// FromDomainUnit конвертирует domain модель в DTO
func FromDomainUnit(u *domain.CatalogUnit) CatalogUnitResponse {
	return CatalogUnitResponse{
		ID:        u.ID,
		Key:       u.Key.String(),
		Category:  string(u.Key.Category),
		Duration:  int(u.Key.Duration),
		Name:      u.Name,
		UnitPrice: u.UnitPrice.StringFixed(domain.MoneyPlaces),
	}
}

// FromDomainUnitList конвертирует список domain моделей в DTO
func FromDomainUnitList(units []*domain.CatalogUnit) *CatalogListResponse {
	resp := &CatalogListResponse{Units: make([]CatalogUnitResponse, 0, len(units))}
	for _, u := range units {
		resp.Units = append(resp.Units, FromDomainUnit(u))
	}
	return resp
}
