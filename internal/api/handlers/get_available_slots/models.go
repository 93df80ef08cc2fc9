package get_available_slots

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date     string          `json:"date"`
	Capacity int             `json:"capacity"`
	Slots    []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime      string `json:"startTime"`
	RangeStart     string `json:"rangeStart"`
	RangeEnd       string `json:"rangeEnd"`
	RangeCapacity  int    `json:"rangeCapacity"`
	Occupied       int    `json:"occupied"`
	AvailableSpots int    `json:"availableSpots"` // отрицательное после принудительного допуска
	Blocked        bool   `json:"blocked"`
	Started        bool   `json:"started"`
	Bookable       bool   `json:"bookable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:      slot.StartTime.String(),
			RangeStart:     slot.Range.Start.String(),
			RangeEnd:       slot.Range.End.String(),
			RangeCapacity:  slot.Range.Capacity,
			Occupied:       slot.Occupancy.Occupied,
			AvailableSpots: slot.Occupancy.Remaining(),
			Blocked:        slot.Blocked,
			Started:        slot.Started,
			Bookable:       slot.Bookable(),
		}
	}

	return &AvailableSlotsResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Capacity: resp.Capacity,
		Slots:    slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметра пути
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{Date: date}, nil
}
