package models

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Response модели

// CreatorResponse кто создал бронирование
type CreatorResponse struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

// BundleLineResponse строка пакета
type BundleLineResponse struct {
	Category  string `json:"category"`
	Duration  int    `json:"duration"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// BundleResponse пакет услуг
type BundleResponse struct {
	ID            int64                `json:"id"`
	Name          string               `json:"name"`
	Description   *string              `json:"description,omitempty"`
	Price         string               `json:"price"` // "45.00"
	Visible       bool                 `json:"visible"`
	UsesCapacity  bool                 `json:"usesCapacity"`
	UsesMassagist bool                 `json:"usesMassagist"`
	Lines         []BundleLineResponse `json:"lines"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64            `json:"id"`
	InternalOrderID string           `json:"internalOrderId"`
	ClientID        *int64           `json:"clientId,omitempty"`
	Creator         *CreatorResponse `json:"creator,omitempty"`
	Date            string           `json:"date"` // "2025-07-14"
	Time            string           `json:"time"` // "10:00"
	People          int              `json:"people"`
	Comment         *string          `json:"comment,omitempty"`
	BundleID        int64            `json:"bundleId"`
	Bundle          *BundleResponse  `json:"bundle,omitempty"`
	AmountPaid      string           `json:"amountPaid"`
	AmountPending   string           `json:"amountPending"` // отрицательное - к возврату
	PaymentDate     *string          `json:"paymentDate,omitempty"`
	CheckedIn       bool             `json:"checkedIn"`
	CheckedOut      bool             `json:"checkedOut"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// LogEntryResponse запись журнала изменений
type LogEntryResponse struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// LogListResponse журнал бронирования, новые записи первыми
type LogListResponse struct {
	BookingID int64              `json:"bookingId"`
	Entries   []LogEntryResponse `json:"entries"`
}

// Методы конвертации

// FromDomainBundle конвертирует пакет в DTO
func FromDomainBundle(b *domain.Bundle) *BundleResponse {
	if b == nil {
		return nil
	}

	resp := &BundleResponse{
		ID:            b.ID,
		Name:          b.Name,
		Description:   b.Description,
		Price:         b.Price.StringFixed(domain.MoneyPlaces),
		Visible:       b.Visible,
		UsesCapacity:  b.UsesCapacity,
		UsesMassagist: b.UsesMassagist,
		Lines:         make([]BundleLineResponse, 0, len(b.Lines)),
		CreatedAt:     b.CreatedAt,
	}
	for _, l := range b.Lines {
		resp.Lines = append(resp.Lines, BundleLineResponse{
			Category:  string(l.Key.Category),
			Duration:  int(l.Key.Duration),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(domain.MoneyPlaces),
		})
	}
	return resp
}

// FromDomainBooking конвертирует бронирование в DTO; bundle может быть nil
func FromDomainBooking(b *domain.Booking, bundle *domain.Bundle) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		InternalOrderID: b.InternalOrderID,
		ClientID:        b.ClientID,
		Date:            b.Date.Format(domain.DateFormat),
		Time:            b.Time.String(),
		People:          b.People,
		Comment:         b.Comment,
		BundleID:        b.BundleID,
		Bundle:          FromDomainBundle(bundle),
		AmountPaid:      b.AmountPaid.StringFixed(domain.MoneyPlaces),
		AmountPending:   b.AmountPending.StringFixed(domain.MoneyPlaces),
		CheckedIn:       b.CheckedIn,
		CheckedOut:      b.CheckedOut,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.Creator != nil {
		resp.Creator = &CreatorResponse{Kind: string(b.Creator.Kind), ID: b.Creator.ID}
	}
	if b.PaymentDate != nil {
		paid := b.PaymentDate.Format(domain.DateFormat)
		resp.PaymentDate = &paid
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		if item := FromDomainBooking(b, nil); item != nil {
			resp.Bookings = append(resp.Bookings, *item)
		}
	}
	return resp
}

// FromDomainLogs конвертирует журнал в DTO
func FromDomainLogs(bookingID int64, logs []*domain.BookingLog) *LogListResponse {
	resp := &LogListResponse{
		BookingID: bookingID,
		Entries:   make([]LogEntryResponse, 0, len(logs)),
	}
	for _, l := range logs {
		resp.Entries = append(resp.Entries, LogEntryResponse{ID: l.ID, Message: l.Message, CreatedAt: l.CreatedAt})
	}
	return resp
}
