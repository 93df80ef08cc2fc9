package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// generateTimeSlots возвращает ячейки сетки, начало которых попадает в интервалы действующей версии
func generateTimeSlots(rule *domain.AvailabilityRule, grid domain.CellGrid) ([]Slot, error) {
	if rule == nil {
		return []Slot{}, nil
	}

	slots := make([]Slot, 0, grid.Count)
	for i := 0; i < grid.Count; i++ {
		start, err := grid.CellStart(i)
		if err != nil {
			return nil, err
		}

		rng, ok := rule.RangeAt(start)
		if !ok {
			continue
		}
		slots = append(slots, Slot{StartTime: start, Range: rng})
	}
	return slots, nil
}

// occupancyByTime суммирует количество человек по точному времени начала
// Бронирования в другое время не учитываются, даже если их услуги пересекаются со слотом
func occupancyByTime(bookings []*domain.Booking) map[types.TimeString]int {
	occupied := make(map[types.TimeString]int, len(bookings))
	for _, b := range bookings {
		occupied[b.Time] += b.People
	}
	return occupied
}

// fillSlots заполняет занятость, закрытые интервалы и прошедшее время
func fillSlots(
	slots []Slot,
	date time.Time,
	now time.Time,
	constraint *domain.ConstraintRule,
	occupied map[types.TimeString]int,
	capacity int,
) {
	pastDate := isDateInPast(date, now)
	today := isSameDay(date, now)
	currentTime := types.NewTimeString(now)

	for i := range slots {
		s := &slots[i]
		s.Blocked = constraint.IsBlocked(s.StartTime)
		s.Started = pastDate || (today && s.StartTime.IsBefore(currentTime))
		s.Occupancy = domain.SlotOccupancy{
			Date:     date,
			Time:     s.StartTime,
			Occupied: occupied[s.StartTime],
			Capacity: capacity,
		}
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
