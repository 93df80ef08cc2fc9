package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Category massage category of a catalog unit
type Category string

const (
	CategoryRelax       Category = "relax"
	CategoryRock        Category = "rock"
	CategoryExfoliation Category = "exfoliation"
	CategoryNone        Category = "none" // plain bath, no massage
)

// Duration duration class of a catalog unit in minutes
type Duration int

const (
	DurationNone Duration = 0
	Duration15   Duration = 15
	Duration30   Duration = 30
	Duration60   Duration = 60
)

var categoryLabels = map[Category]string{
	CategoryRelax:       "Relax",
	CategoryRock:        "Rock",
	CategoryExfoliation: "Exfoliation",
	CategoryNone:        "Plain",
}

// IsValid returns true for known categories
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// IsMassage returns true if the category needs a massagist
func (c Category) IsMassage() bool {
	return c != CategoryNone
}

// IsValid returns true for known duration classes
func (d Duration) IsValid() bool {
	switch d {
	case DurationNone, Duration15, Duration30, Duration60:
		return true
	}
	return false
}

// CatalogKey (category, duration) pair identifying a catalog unit
type CatalogKey struct {
	Category Category
	Duration Duration
}

// Validate checks the pair: none <=> 0
func (k CatalogKey) Validate() error {
	if !k.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, k.Category)
	}
	if !k.Duration.IsValid() {
		return fmt.Errorf("%w: unknown duration %d", ErrValidation, k.Duration)
	}
	if (k.Category == CategoryNone) != (k.Duration == DurationNone) {
		return fmt.Errorf("%w: category %q is incompatible with duration %d", ErrValidation, k.Category, k.Duration)
	}
	return nil
}

// String "relax_60"
func (k CatalogKey) String() string {
	return fmt.Sprintf("%s_%d", k.Category, k.Duration)
}

// DisplayName localized name: "Relax 60", "Plain"
func (k CatalogKey) DisplayName() string {
	label := categoryLabels[k.Category]
	if k.Category == CategoryNone {
		return label
	}
	return fmt.Sprintf("%s %d", label, k.Duration)
}

// ParseCatalogKey parses "relax_60"
func ParseCatalogKey(s string) (CatalogKey, error) {
	idx := strings.LastIndex(s, "_")
	if idx <= 0 || idx == len(s)-1 {
		return CatalogKey{}, fmt.Errorf("%w: malformed catalog key %q", ErrValidation, s)
	}
	minutes, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return CatalogKey{}, fmt.Errorf("%w: malformed catalog key %q", ErrValidation, s)
	}
	key := CatalogKey{Category: Category(s[:idx]), Duration: Duration(minutes)}
	if err := key.Validate(); err != nil {
		return CatalogKey{}, err
	}
	return key, nil
}

// CatalogUnit атомарная услуга с ценой
type CatalogUnit struct {
	ID        int64
	Key       CatalogKey
	Name      string
	UnitPrice decimal.Decimal
}

// CanonicalCatalogKeys the full set of units the engine can price
func CanonicalCatalogKeys() []CatalogKey {
	keys := []CatalogKey{{Category: CategoryNone, Duration: DurationNone}}
	for _, c := range []Category{CategoryRelax, CategoryRock, CategoryExfoliation} {
		for _, d := range []Duration{Duration15, Duration30, Duration60} {
			keys = append(keys, CatalogKey{Category: c, Duration: d})
		}
	}
	return keys
}

// PriceList unit prices by key
type PriceList map[CatalogKey]decimal.Decimal

// NewPriceList builds a price list from catalog units
func NewPriceList(units []*CatalogUnit) PriceList {
	prices := make(PriceList, len(units))
	for _, u := range units {
		prices[u.Key] = u.UnitPrice
	}
	return prices
}

// Missing returns keys of lines without a price, in input order
func (p PriceList) Missing(lines []ServiceLine) []CatalogKey {
	var missing []CatalogKey
	seen := make(map[CatalogKey]struct{})
	for _, l := range lines {
		key := l.Key()
		if _, ok := p[key]; ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		missing = append(missing, key)
	}
	return missing
}

// Total Σ unitPrice × quantity rounded to 2 places
func (p PriceList) Total(lines []ServiceLine) (decimal.Decimal, error) {
	if missing := p.Missing(lines); len(missing) > 0 {
		return decimal.Zero, fmt.Errorf("%w: no price for %v", ErrCatalogIncomplete, missing)
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(p[l.Key()].Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total.Round(MoneyPlaces), nil
}
