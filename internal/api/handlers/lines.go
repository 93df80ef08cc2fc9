package handlers

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// ServiceLineRequest строка услуг в теле запроса
type ServiceLineRequest struct {
	Category string `json:"category"` // relax | rock | exfoliation | none
	Duration int    `json:"duration"` // 15 | 30 | 60 | 0
	Quantity int    `json:"quantity"`
}

// ToDomainLines конвертирует строки запроса; валидирует use case
func ToDomainLines(lines []ServiceLineRequest) []domain.ServiceLine {
	result := make([]domain.ServiceLine, 0, len(lines))
	for _, l := range lines {
		result = append(result, domain.ServiceLine{
			Category: domain.Category(l.Category),
			Duration: domain.Duration(l.Duration),
			Quantity: l.Quantity,
		})
	}
	return result
}
