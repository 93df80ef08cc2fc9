package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// BlackoutRange closed window [Start, End) inside a day
type BlackoutRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate start < end
func (r BlackoutRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start: %v", ErrValidation, err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end: %v", ErrValidation, err)
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("%w: blackout start %s must be before end %s", ErrValidation, r.Start, r.End)
	}
	return nil
}

// ConstraintRule blackout windows of a single date
type ConstraintRule struct {
	ID        int64
	Date      time.Time
	Ranges    []BlackoutRange
	UpdatedAt time.Time
}

// IsBlocked true iff t falls within [start, end) of any range
func (c *ConstraintRule) IsBlocked(t types.TimeString) bool {
	if c == nil {
		return false
	}
	for _, r := range c.Ranges {
		if !t.IsBefore(r.Start) && t.IsBefore(r.End) {
			return true
		}
	}
	return false
}

// ValidateBlackoutRanges validates every range of a day
func ValidateBlackoutRanges(ranges []BlackoutRange) error {
	if len(ranges) > MaxRangesPerRule {
		return fmt.Errorf("%w: too many ranges (%d)", ErrValidation, len(ranges))
	}
	for i, r := range ranges {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("range %d: %w", i, err)
		}
	}
	return nil
}

// CellGrid fixed grid of time cells used by the operator UI
type CellGrid struct {
	Start types.TimeString
	Step  int // minutes
	Count int
}

// DefaultCellGrid 10:00, 30 minutes, 25 cells
func DefaultCellGrid() CellGrid {
	return CellGrid{
		Start: types.TimeString(DefaultConstraintCellStart),
		Step:  DefaultConstraintCellStep,
		Count: DefaultConstraintCellCount,
	}
}

// Validate grid parameters must fit into a day
func (g CellGrid) Validate() error {
	if err := g.Start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid grid start: %v", ErrValidation, err)
	}
	if g.Step <= 0 || g.Count <= 0 {
		return fmt.Errorf("%w: grid step and count must be positive", ErrValidation)
	}
	if _, err := g.Start.AddMinutes(g.Step * (g.Count - 1)); err != nil {
		return fmt.Errorf("%w: grid does not fit into a day", ErrValidation)
	}
	return nil
}

// CellStart start time of cell i
func (g CellGrid) CellStart(i int) (types.TimeString, error) {
	return g.Start.AddMinutes(g.Step * i)
}

// ToCells marks cells whose start falls into a blackout range
func (g CellGrid) ToCells(rule *ConstraintRule) ([]bool, error) {
	cells := make([]bool, g.Count)
	for i := range cells {
		start, err := g.CellStart(i)
		if err != nil {
			return nil, err
		}
		cells[i] = rule.IsBlocked(start)
	}
	return cells, nil
}

// FromCells merges consecutive blocked cells into ranges
func (g CellGrid) FromCells(cells []bool) ([]BlackoutRange, error) {
	if len(cells) != g.Count {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", ErrValidation, g.Count, len(cells))
	}

	var ranges []BlackoutRange
	runStart := -1
	for i := 0; i <= len(cells); i++ {
		blocked := i < len(cells) && cells[i]
		if blocked && runStart < 0 {
			runStart = i
			continue
		}
		if blocked || runStart < 0 {
			continue
		}

		start, err := g.CellStart(runStart)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		end, err := g.Start.AddMinutes(g.Step * i)
		if err != nil {
			// последняя ячейка упирается в конец суток
			end = types.TimeString("23:59")
		}
		ranges = append(ranges, BlackoutRange{Start: start, End: end})
		runStart = -1
	}
	return ranges, nil
}
