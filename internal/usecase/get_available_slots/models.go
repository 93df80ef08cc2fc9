package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модель запроса на получение слотов дня
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response модель ответа со слотами дня
type Response struct {
	Date     time.Time
	Capacity int    // общая вместимость на одно время
	Slots    []Slot // слоты сетки, попадающие в интервалы доступности
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString
	Range     domain.TimeRange // интервал доступности, содержащий слот
	Blocked   bool             // попадает в закрытый интервал даты
	Started   bool             // время уже прошло
	Occupancy domain.SlotOccupancy
}

// Bookable слот можно забронировать без force
func (s Slot) Bookable() bool {
	return !s.Blocked && !s.Started && !s.Occupancy.IsFull()
}
