package update_booking_fields

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
	updateBookingFields "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_booking_fields"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

var (
	errInvalidDate   = errors.New("invalid date")
	errInvalidTime   = errors.New("invalid time")
	errInvalidAmount = errors.New("invalid amount")
)

// UpdateBookingFieldsRequest HTTP request model
// Отсутствующее поле не меняется
type UpdateBookingFieldsRequest struct {
	Date             *string `json:"date,omitempty"`
	Time             *string `json:"time,omitempty"`
	People           *int    `json:"people,omitempty"`
	PaymentDate      *string `json:"paymentDate,omitempty"`
	ClearPaymentDate bool    `json:"clearPaymentDate,omitempty"`
	AmountPaid       *string `json:"amountPaid,omitempty"`
	AmountPending    *string `json:"amountPending,omitempty"`
	BundleID         *int64  `json:"bundleId,omitempty"`
	Comment          *string `json:"comment,omitempty"`
	CheckedIn        *bool   `json:"checkedIn,omitempty"`
	CheckedOut       *bool   `json:"checkedOut,omitempty"`
	Message          *string `json:"message,omitempty"`
}

// UpdateBookingFieldsResponse HTTP response model
type UpdateBookingFieldsResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	Message string                  `json:"message"`
	Logged  bool                    `json:"logged"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingFieldsRequest) ToUseCaseRequest(bookingID int64) (*updateBookingFields.Request, error) {
	req := &updateBookingFields.Request{
		BookingID:        bookingID,
		People:           r.People,
		ClearPaymentDate: r.ClearPaymentDate,
		BundleID:         r.BundleID,
		Comment:          r.Comment,
		CheckedIn:        r.CheckedIn,
		CheckedOut:       r.CheckedOut,
		Message:          r.Message,
	}

	var err error
	if req.Date, err = parseOptionalDate(r.Date); err != nil {
		return nil, err
	}
	if req.PaymentDate, err = parseOptionalDate(r.PaymentDate); err != nil {
		return nil, err
	}
	if r.Time != nil {
		t, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
		}
		req.Time = &t
	}
	if req.AmountPaid, err = parseOptionalAmount(r.AmountPaid); err != nil {
		return nil, err
	}
	if req.AmountPending, err = parseOptionalAmount(r.AmountPending); err != nil {
		return nil, err
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBookingFields.Response) *UpdateBookingFieldsResponse {
	return &UpdateBookingFieldsResponse{
		Booking: models.FromDomainBooking(resp.Booking, nil),
		Message: resp.Message,
		Logged:  resp.Log != nil,
	}
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := domain.ParseDate(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}
	return &d, nil
}

func parseOptionalAmount(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidAmount, err)
	}
	return &d, nil
}
