package admit_booking

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модель запроса на проверку допуска
type Request struct {
	Date   time.Time        // Дата (без времени)
	Time   types.TimeString // Точное время начала
	People int              // Количество человек
	Force  bool             // Пропустить отказ, записав нарушения в Overrides
}

// Response результат проверки допуска
type Response struct {
	Admission     domain.Admission
	OccupiedAfter int // занятость слота, если бронирование будет создано
}
