package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// RuleKind kind of an availability rule
type RuleKind string

const (
	RuleKindWeekday      RuleKind = "weekday"
	RuleKindSpecificDate RuleKind = "specific_date"
)

// IsValid returns true for known rule kinds
func (k RuleKind) IsValid() bool {
	return k == RuleKindWeekday || k == RuleKindSpecificDate
}

// TimeRange [Start, End) with capacity units
type TimeRange struct {
	Start    types.TimeString
	End      types.TimeString
	Capacity int
}

// Validate start < end, capacity >= 0
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start: %v", ErrValidation, err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end: %v", ErrValidation, err)
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("%w: range start %s must be before end %s", ErrValidation, r.Start, r.End)
	}
	if r.Capacity < 0 {
		return fmt.Errorf("%w: range capacity must be non-negative", ErrValidation)
	}
	return nil
}

// Contains start <= t < end
func (r TimeRange) Contains(t types.TimeString) bool {
	return !t.IsBefore(r.Start) && t.IsBefore(r.End)
}

// AvailabilityRule immutable version of availability for a weekday or a date
type AvailabilityRule struct {
	ID         int64
	Kind       RuleKind
	Weekday    *int       // ISO 1..7, for weekday rules
	TargetDate *time.Time // for specific_date rules
	Ranges     []TimeRange
	CreatedAt  time.Time // version stamp
}

// Validate checks the target and the ranges
func (r *AvailabilityRule) Validate() error {
	switch r.Kind {
	case RuleKindWeekday:
		if r.Weekday == nil || *r.Weekday < 1 || *r.Weekday > 7 {
			return fmt.Errorf("%w: weekday must be between 1 and 7", ErrValidation)
		}
		if r.TargetDate != nil {
			return fmt.Errorf("%w: weekday rule must not have a target date", ErrValidation)
		}
	case RuleKindSpecificDate:
		if r.TargetDate == nil || r.TargetDate.IsZero() {
			return fmt.Errorf("%w: target date is required", ErrValidation)
		}
		if r.Weekday != nil {
			return fmt.Errorf("%w: specific date rule must not have a weekday", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown rule kind %q", ErrValidation, r.Kind)
	}

	if len(r.Ranges) > MaxRangesPerRule {
		return fmt.Errorf("%w: too many ranges (%d)", ErrValidation, len(r.Ranges))
	}
	for i, rng := range r.Ranges {
		if err := rng.Validate(); err != nil {
			return fmt.Errorf("range %d: %w", i, err)
		}
	}
	return nil
}

// AppliesTo true if the rule targets the date (weekday or exact date)
func (r *AvailabilityRule) AppliesTo(date time.Time) bool {
	switch r.Kind {
	case RuleKindSpecificDate:
		return r.TargetDate != nil && SameDate(*r.TargetDate, date)
	case RuleKindWeekday:
		return r.Weekday != nil && *r.Weekday == ISOWeekday(date)
	}
	return false
}

// RangeAt returns the range containing t
func (r *AvailabilityRule) RangeAt(t types.TimeString) (TimeRange, bool) {
	for _, rng := range r.Ranges {
		if rng.Contains(t) {
			return rng, true
		}
	}
	return TimeRange{}, false
}

// newerThan later CreatedAt wins, ID breaks ties
func (r *AvailabilityRule) newerThan(other *AvailabilityRule) bool {
	if !r.CreatedAt.Equal(other.CreatedAt) {
		return r.CreatedAt.After(other.CreatedAt)
	}
	return r.ID > other.ID
}

// SelectCurrentRule picks the effective rule for the date:
// latest specific_date rule, else latest weekday rule, else nil
func SelectCurrentRule(rules []*AvailabilityRule, date time.Time) *AvailabilityRule {
	var specific, weekday *AvailabilityRule
	for _, r := range rules {
		if !r.AppliesTo(date) {
			continue
		}
		switch r.Kind {
		case RuleKindSpecificDate:
			if specific == nil || r.newerThan(specific) {
				specific = r
			}
		case RuleKindWeekday:
			if weekday == nil || r.newerThan(weekday) {
				weekday = r
			}
		}
	}
	if specific != nil {
		return specific
	}
	return weekday
}

// VersionedRule rule with its derived effective window
type VersionedRule struct {
	Rule          *AvailabilityRule
	EffectiveFrom time.Time
	EffectiveTo   *time.Time // nil = open-ended
	Current       bool
}

// BuildHistory sorts relevant rules by CreatedAt ascending and derives windows:
// each runs from its creation date to the day before the next rule's creation date
func BuildHistory(rules []*AvailabilityRule, date time.Time) []VersionedRule {
	relevant := make([]*AvailabilityRule, 0, len(rules))
	for _, r := range rules {
		if r.AppliesTo(date) {
			relevant = append(relevant, r)
		}
	}
	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[j].newerThan(relevant[i])
	})

	current := SelectCurrentRule(relevant, date)
	history := make([]VersionedRule, len(relevant))
	for i, r := range relevant {
		from := DateOnly(r.CreatedAt)
		v := VersionedRule{Rule: r, EffectiveFrom: from, Current: r == current}
		if i+1 < len(relevant) {
			to := DateOnly(relevant[i+1].CreatedAt).AddDate(0, 0, -1)
			if to.Before(from) {
				to = from
			}
			v.EffectiveTo = &to
		}
		history[i] = v
	}
	return history
}

// ISOWeekday 1 = Monday ... 7 = Sunday
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DateOnly drops the time of day (UTC calendar date).
// Times in other zones are converted to UTC first
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate compares calendar dates
func SameDate(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// ParseDate parses YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, s)
	}
	return t, nil
}
