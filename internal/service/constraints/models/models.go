package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модели

// BlackoutRangeDTO закрытый интервал дня
type BlackoutRangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SaveRequest запрос на сохранение ограничений даты
// Передается либо Ranges, либо Cells (сетка ячеек); пустой список удаляет ограничения
type SaveRequest struct {
	Ranges []BlackoutRangeDTO `json:"ranges,omitempty"`
	Cells  []bool             `json:"cells,omitempty"`
}

// ToDomainRanges конвертирует интервалы запроса в domain
func ToDomainRanges(ranges []BlackoutRangeDTO) ([]domain.BlackoutRange, error) {
	result := make([]domain.BlackoutRange, 0, len(ranges))
	for i, r := range ranges {
		start, err := types.NewTimeStringFromString(r.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: range %d: invalid start %q", domain.ErrValidation, i, r.Start)
		}
		end, err := types.NewTimeStringFromString(r.End)
		if err != nil {
			return nil, fmt.Errorf("%w: range %d: invalid end %q", domain.ErrValidation, i, r.End)
		}
		result = append(result, domain.BlackoutRange{Start: start, End: end})
	}
	return result, nil
}

// Response модели

// GridResponse параметры сетки ячеек
type GridResponse struct {
	Start string `json:"start"`
	Step  int    `json:"stepMinutes"`
	Count int    `json:"count"`
}

// ConstraintResponse ограничения даты
type ConstraintResponse struct {
	Date      string             `json:"date"`
	Ranges    []BlackoutRangeDTO `json:"ranges"`
	Cells     []bool             `json:"cells"`
	Grid      GridResponse       `json:"grid"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty"`
}

// ConstraintListResponse список дат с ограничениями
type ConstraintListResponse struct {
	Constraints []ConstraintResponse `json:"constraints"`
}

// BlockedResponse результат проверки времени
type BlockedResponse struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Blocked bool   `json:"blocked"`
}

// Методы конвертации

// FromDomainConstraint конвертирует ограничения даты в DTO; rule может быть nil
func FromDomainConstraint(date time.Time, rule *domain.ConstraintRule, grid domain.CellGrid, cells []bool) ConstraintResponse {
	resp := ConstraintResponse{
		Date:   date.Format(domain.DateFormat),
		Ranges: []BlackoutRangeDTO{},
		Cells:  cells,
		Grid:   GridResponse{Start: grid.Start.String(), Step: grid.Step, Count: grid.Count},
	}
	if rule == nil {
		return resp
	}

	for _, r := range rule.Ranges {
		resp.Ranges = append(resp.Ranges, BlackoutRangeDTO{Start: r.Start.String(), End: r.End.String()})
	}
	updatedAt := rule.UpdatedAt
	resp.UpdatedAt = &updatedAt
	return resp
}
