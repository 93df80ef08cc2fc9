package admit_booking

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	admitBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/admit_booking"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// AdmitBookingRequest HTTP request model
type AdmitBookingRequest struct {
	Date   string `json:"date"` // "2025-07-14"
	Time   string `json:"time"` // "10:00"
	People int    `json:"people"`
	Force  bool   `json:"force"`
}

// RangeResponse интервал доступности, в который попало время
type RangeResponse struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Capacity int    `json:"capacity"`
}

// AdmissionResponse HTTP response model
type AdmissionResponse struct {
	Accepted      bool           `json:"accepted"`
	Forced        bool           `json:"forced"`
	Overrides     []string       `json:"overrides"`
	Occupied      int            `json:"occupied"`
	Capacity      int            `json:"capacity"`
	OccupiedAfter int            `json:"occupiedAfter"`
	Range         *RangeResponse `json:"range,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AdmitBookingRequest) ToUseCaseRequest() (*admitBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &admitBooking.Request{
		Date:   date,
		Time:   t,
		People: r.People,
		Force:  r.Force,
	}, nil
}

// FromAdmission конвертирует результат допуска в HTTP response
func FromAdmission(a *domain.Admission, occupiedAfter int) *AdmissionResponse {
	resp := &AdmissionResponse{
		Accepted:      a.Accepted,
		Forced:        a.Forced,
		Overrides:     make([]string, 0, len(a.Overrides)),
		Occupied:      a.Occupancy.Occupied,
		Capacity:      a.Occupancy.Capacity,
		OccupiedAfter: occupiedAfter,
	}
	for _, o := range a.Overrides {
		resp.Overrides = append(resp.Overrides, string(o))
	}
	if a.Range != nil {
		resp.Range = &RangeResponse{
			Start:    a.Range.Start.String(),
			End:      a.Range.End.String(),
			Capacity: a.Range.Capacity,
		}
	}
	return resp
}
