package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

var (
	errInvalidDate   = errors.New("invalid date")
	errInvalidTime   = errors.New("invalid time")
	errInvalidAmount = errors.New("invalid amount")
)

// CreateBookingRequest HTTP request model
// Пакет задается либо bundleId, либо services
type CreateBookingRequest struct {
	Date        string                        `json:"date"` // "2025-07-14"
	Time        string                        `json:"time"` // "10:00"
	People      int                           `json:"people"`
	BundleID    *int64                        `json:"bundleId,omitempty"`
	Services    []handlers.ServiceLineRequest `json:"services,omitempty"`
	AmountPaid  *string                       `json:"amountPaid,omitempty"`  // "20.00"
	PaymentDate *string                       `json:"paymentDate,omitempty"` // "2025-07-10"
	ClientID    *int64                        `json:"clientId,omitempty"`
	Comment     *string                       `json:"comment,omitempty"`
	Force       bool                          `json:"force"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking   *models.BookingResponse `json:"booking"`
	Overrides []string                `json:"overrides"` // проверки допуска, пропущенные по force
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(creator *domain.Creator) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	paid := decimal.Zero
	if r.AmountPaid != nil {
		paid, err = decimal.NewFromString(*r.AmountPaid)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidAmount, err)
		}
	}

	var paymentDate *time.Time
	if r.PaymentDate != nil {
		d, err := domain.ParseDate(*r.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
		}
		paymentDate = &d
	}

	req := &createBooking.Request{
		Date:        date,
		Time:        t,
		People:      r.People,
		BundleID:    r.BundleID,
		AmountPaid:  paid,
		PaymentDate: paymentDate,
		ClientID:    r.ClientID,
		Creator:     creator,
		Comment:     r.Comment,
		Force:       r.Force,
	}
	if len(r.Services) > 0 {
		req.Lines = handlers.ToDomainLines(r.Services)
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	result := &CreateBookingResponse{
		Booking:   models.FromDomainBooking(resp.Booking, resp.Bundle),
		Overrides: make([]string, 0, len(resp.Admission.Overrides)),
	}
	for _, o := range resp.Admission.Overrides {
		result.Overrides = append(result.Overrides, string(o))
	}
	return result
}
