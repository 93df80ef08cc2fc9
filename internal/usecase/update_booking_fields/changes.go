package update_booking_fields

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// emptyValue отображение незаданного значения в журнале
const emptyValue = "none"

// fieldChanges фразы об изменениях полей в порядке проверки
type fieldChanges []string

// add добавляет фразу "<field> changed from X to Y", если значения различаются
func (c *fieldChanges) add(field, from, to string) {
	if from == to {
		return
	}
	*c = append(*c, fmt.Sprintf("%s changed from %s to %s", field, from, to))
}

// Message фразы через ". " или NoChangesMessage
func (c fieldChanges) Message() string {
	if len(c) == 0 {
		return domain.NoChangesMessage
	}
	return strings.Join(c, ". ")
}

// diff сравнивает поля бронирования, попадающие в журнал
func diff(before, after *domain.Booking) fieldChanges {
	var changes fieldChanges
	changes.add("date", before.Date.Format(domain.DateFormat), after.Date.Format(domain.DateFormat))
	changes.add("time", before.Time.String(), after.Time.String())
	changes.add("people", fmt.Sprint(before.People), fmt.Sprint(after.People))
	changes.add("payment date", formatOptionalDate(before.PaymentDate), formatOptionalDate(after.PaymentDate))
	changes.add("amount paid", formatMoney(before.AmountPaid), formatMoney(after.AmountPaid))
	changes.add("amount pending", formatMoney(before.AmountPending), formatMoney(after.AmountPending))
	changes.add("bundle", fmt.Sprint(before.BundleID), fmt.Sprint(after.BundleID))
	return changes
}

func formatOptionalDate(d *time.Time) string {
	if d == nil {
		return emptyValue
	}
	return d.Format(domain.DateFormat)
}

func formatMoney(amount decimal.Decimal) string {
	return domain.FormatMoney(amount)
}
