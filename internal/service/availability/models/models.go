package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модели

// TimeRangeDTO интервал доступности
type TimeRangeDTO struct {
	Start    string `json:"start"` // "10:00"
	End      string `json:"end"`   // "14:00"
	Capacity int    `json:"capacity"`
}

// PublishRequest запрос на публикацию новой версии доступности
type PublishRequest struct {
	Kind          string         `json:"kind"`                 // weekday | specific_date
	Weekday       *int           `json:"weekday,omitempty"`    // 1 = понедельник ... 7 = воскресенье
	TargetDate    *string        `json:"targetDate,omitempty"` // "2025-07-14"
	Ranges        []TimeRangeDTO `json:"ranges"`
	EffectiveDate *string        `json:"effectiveDate,omitempty"` // по умолчанию - сейчас
}

// ToDomainRule конвертирует запрос в domain правило (без CreatedAt)
func (r *PublishRequest) ToDomainRule() (*domain.AvailabilityRule, error) {
	rule := &domain.AvailabilityRule{
		Kind:    domain.RuleKind(r.Kind),
		Weekday: r.Weekday,
		Ranges:  make([]domain.TimeRange, 0, len(r.Ranges)),
	}

	if r.TargetDate != nil {
		date, err := domain.ParseDate(*r.TargetDate)
		if err != nil {
			return nil, err
		}
		rule.TargetDate = &date
	}

	for i, rng := range r.Ranges {
		start, err := types.NewTimeStringFromString(rng.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: range %d: invalid start %q", domain.ErrValidation, i, rng.Start)
		}
		end, err := types.NewTimeStringFromString(rng.End)
		if err != nil {
			return nil, fmt.Errorf("%w: range %d: invalid end %q", domain.ErrValidation, i, rng.End)
		}
		rule.Ranges = append(rule.Ranges, domain.TimeRange{Start: start, End: end, Capacity: rng.Capacity})
	}

	return rule, nil
}

// Response модели

// ResolveResponse интервалы, действующие на дату
type ResolveResponse struct {
	Date     string         `json:"date"`
	RuleID   *int64         `json:"ruleId,omitempty"`
	RuleKind *string        `json:"ruleKind,omitempty"`
	Ranges   []TimeRangeDTO `json:"ranges"`
}

// VersionResponse версия правила с окном действия
type VersionResponse struct {
	RuleID        int64          `json:"ruleId"`
	Kind          string         `json:"kind"`
	Weekday       *int           `json:"weekday,omitempty"`
	TargetDate    *string        `json:"targetDate,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	EffectiveFrom string         `json:"effectiveFrom"`
	EffectiveTo   *string        `json:"effectiveTo,omitempty"` // nil - действует до сих пор
	Current       bool           `json:"current"`
	Ranges        []TimeRangeDTO `json:"ranges"`
}

// HistoryResponse история версий на дату
type HistoryResponse struct {
	Date     string            `json:"date"`
	Versions []VersionResponse `json:"versions"`
}

// PublishResponse ответ на публикацию версии
type PublishResponse struct {
	RuleID    int64     `json:"ruleId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainRanges конвертирует интервалы в DTO
func FromDomainRanges(ranges []domain.TimeRange) []TimeRangeDTO {
	result := make([]TimeRangeDTO, 0, len(ranges))
	for _, r := range ranges {
		result = append(result, TimeRangeDTO{Start: r.Start.String(), End: r.End.String(), Capacity: r.Capacity})
	}
	return result
}

// FromDomainResolved конвертирует выбранное правило в ответ; rule может быть nil
func FromDomainResolved(date time.Time, rule *domain.AvailabilityRule) *ResolveResponse {
	resp := &ResolveResponse{
		Date:   date.Format(domain.DateFormat),
		Ranges: []TimeRangeDTO{},
	}
	if rule == nil {
		return resp
	}

	kind := string(rule.Kind)
	resp.RuleID = &rule.ID
	resp.RuleKind = &kind
	resp.Ranges = FromDomainRanges(rule.Ranges)
	return resp
}

// FromDomainHistory конвертирует историю версий в ответ
func FromDomainHistory(date time.Time, history []domain.VersionedRule) *HistoryResponse {
	resp := &HistoryResponse{
		Date:     date.Format(domain.DateFormat),
		Versions: make([]VersionResponse, 0, len(history)),
	}

	for _, v := range history {
		item := VersionResponse{
			RuleID:        v.Rule.ID,
			Kind:          string(v.Rule.Kind),
			Weekday:       v.Rule.Weekday,
			CreatedAt:     v.Rule.CreatedAt,
			EffectiveFrom: v.EffectiveFrom.Format(domain.DateFormat),
			Current:       v.Current,
			Ranges:        FromDomainRanges(v.Rule.Ranges),
		}
		if v.Rule.TargetDate != nil {
			target := v.Rule.TargetDate.Format(domain.DateFormat)
			item.TargetDate = &target
		}
		if v.EffectiveTo != nil {
			to := v.EffectiveTo.Format(domain.DateFormat)
			item.EffectiveTo = &to
		}
		resp.Versions = append(resp.Versions, item)
	}

	return resp
}
