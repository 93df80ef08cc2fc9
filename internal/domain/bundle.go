package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bundle priced reusable grouping of service lines
type Bundle struct {
	ID            int64
	Name          string
	Description   *string
	Price         decimal.Decimal
	Visible       bool
	UsesCapacity  bool
	UsesMassagist bool
	SignatureHash *string // NULL for bundles created outside the resolver
	Lines         []BundleLine
	CreatedAt     time.Time
}

// BundleLine constituent line of a bundle
type BundleLine struct {
	CatalogUnitID int64
	Key           CatalogKey
	UnitPrice     decimal.Decimal
	Quantity      int
}

// ServiceLines lines of the bundle as requested service lines
func (b *Bundle) ServiceLines() []ServiceLine {
	lines := make([]ServiceLine, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = ServiceLine{Category: l.Key.Category, Duration: l.Key.Duration, Quantity: l.Quantity}
	}
	return lines
}

// Signature signature of the bundle's own lines
func (b *Bundle) Signature() Signature {
	return SignatureOf(b.ServiceLines())
}

// Matches equivalence: same signature and same price
func (b *Bundle) Matches(sig Signature, price decimal.Decimal) bool {
	return b.Price.Equal(price) && b.Signature() == sig
}

// NewAutoBundle hidden bundle for the given lines and price
func NewAutoBundle(lines []ServiceLine, price decimal.Decimal, units map[CatalogKey]*CatalogUnit) *Bundle {
	normalized := NormalizeLines(lines)
	sig := SignatureOf(normalized)
	hash := sig.Hash(price)

	bundle := &Bundle{
		Name:          BundleName(normalized),
		Price:         price,
		Visible:       false,
		UsesCapacity:  true,
		SignatureHash: &hash,
		Lines:         make([]BundleLine, 0, len(normalized)),
	}
	for _, l := range normalized {
		if l.Category.IsMassage() {
			bundle.UsesMassagist = true
		}
		line := BundleLine{Key: l.Key(), Quantity: l.Quantity}
		if u, ok := units[l.Key()]; ok {
			line.CatalogUnitID = u.ID
			line.UnitPrice = u.UnitPrice
		}
		bundle.Lines = append(bundle.Lines, line)
	}
	return bundle
}
