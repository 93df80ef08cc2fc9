package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// CreatorKind kind of actor that originated a booking
type CreatorKind string

const (
	CreatorAdmin       CreatorKind = "admin"
	CreatorAgent       CreatorKind = "agent"
	CreatorGiftVoucher CreatorKind = "gift_voucher"
	CreatorWebBooking  CreatorKind = "web_booking"
)

// IsValid returns true for known creator kinds
func (k CreatorKind) IsValid() bool {
	switch k {
	case CreatorAdmin, CreatorAgent, CreatorGiftVoucher, CreatorWebBooking:
		return true
	}
	return false
}

// Creator tagged reference to the actor (resolved by its owning service)
type Creator struct {
	Kind CreatorKind
	ID   int64
}

// Validate kind must be known, id positive
func (c Creator) Validate() error {
	if !c.Kind.IsValid() {
		return fmt.Errorf("%w: unknown creator kind %q", ErrValidation, c.Kind)
	}
	if c.ID <= 0 {
		return fmt.Errorf("%w: creator id must be positive", ErrValidation)
	}
	return nil
}

// Booking represents a spa booking bound to a bundle
type Booking struct {
	ID              int64
	InternalOrderID string
	ClientID        *int64 // opaque customer reference
	Creator         *Creator
	Date            time.Time
	Time            types.TimeString
	People          int
	Comment         *string
	BundleID        int64

	AmountPaid    decimal.Decimal
	AmountPending decimal.Decimal // bundle price - paid, negative means refund due
	PaymentDate   *time.Time

	CheckedIn  bool
	CheckedOut bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingAmount bundle price minus amount paid, 2 places
func PendingAmount(price, paid decimal.Decimal) decimal.Decimal {
	return price.Sub(paid).Round(MoneyPlaces)
}

// RebindBundle points the booking at another bundle and recomputes pending
func (b *Booking) RebindBundle(bundle *Bundle) {
	b.BundleID = bundle.ID
	b.AmountPending = PendingAmount(bundle.Price, b.AmountPaid)
}

// ValidatePeople checks headcount bounds
func ValidatePeople(people int) error {
	if people < MinPeople || people > MaxPeople {
		return fmt.Errorf("%w: people must be between %d and %d, got %d", ErrValidation, MinPeople, MaxPeople, people)
	}
	return nil
}

// BookingLog append-only audit entry of a booking
type BookingLog struct {
	ID        int64
	BookingID int64
	Message   string
	CreatedAt time.Time
}

// FormatMoney "25.00 €"
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPlaces) + " " + CurrencySymbol
}
