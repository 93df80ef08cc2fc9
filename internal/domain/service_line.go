package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ServiceLine requested (category, duration, quantity) triple
type ServiceLine struct {
	Category Category
	Duration Duration
	Quantity int
}

// Key catalog key of the line
func (l ServiceLine) Key() CatalogKey {
	return CatalogKey{Category: l.Category, Duration: l.Duration}
}

// Validate checks the catalog key and quantity bounds
func (l ServiceLine) Validate() error {
	if err := l.Key().Validate(); err != nil {
		return err
	}
	if l.Quantity < 1 || l.Quantity > MaxLineQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d, got %d", ErrValidation, MaxLineQuantity, l.Quantity)
	}
	return nil
}

// ValidateLines validates a non-empty list of lines
func ValidateLines(lines []ServiceLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: at least one service line is required", ErrValidation)
	}
	if len(lines) > MaxServiceLines {
		return fmt.Errorf("%w: too many service lines (%d)", ErrValidation, len(lines))
	}
	for i, l := range lines {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}
	return nil
}

// NormalizeLines merges lines with the same key and sorts by (category, duration)
func NormalizeLines(lines []ServiceLine) []ServiceLine {
	merged := make(map[CatalogKey]int, len(lines))
	for _, l := range lines {
		merged[l.Key()] += l.Quantity
	}

	out := make([]ServiceLine, 0, len(merged))
	for key, qty := range merged {
		out = append(out, ServiceLine{Category: key.Category, Duration: key.Duration, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].Duration != out[j].Duration {
			return out[i].Duration < out[j].Duration
		}
		return out[i].Quantity < out[j].Quantity
	})
	return out
}

// Signature canonical form of a line multiset: "exfoliation:30x1|relax:60x2"
type Signature string

// SignatureOf computes the signature of lines (normalized first)
func SignatureOf(lines []ServiceLine) Signature {
	normalized := NormalizeLines(lines)
	parts := make([]string, len(normalized))
	for i, l := range normalized {
		parts[i] = fmt.Sprintf("%s:%dx%d", l.Category, l.Duration, l.Quantity)
	}
	return Signature(strings.Join(parts, "|"))
}

// Hash idempotency key for signature + price
func (s Signature) Hash(price decimal.Decimal) string {
	sum := sha256.Sum256([]byte(string(s) + "@" + price.StringFixed(MoneyPlaces)))
	return hex.EncodeToString(sum[:])
}

// SameLines compares two multisets regardless of order and splitting
func SameLines(a, b []ServiceLine) bool {
	return SignatureOf(a) == SignatureOf(b)
}

// BundleName descriptive name: "2× Relax 60, 1× Plain"
// Massage lines go first, the plain bath last
func BundleName(lines []ServiceLine) string {
	normalized := NormalizeLines(lines)
	sort.SliceStable(normalized, func(i, j int) bool {
		mi, mj := normalized[i].Category.IsMassage(), normalized[j].Category.IsMassage()
		if mi != mj {
			return mi
		}
		if normalized[i].Duration != normalized[j].Duration {
			return normalized[i].Duration > normalized[j].Duration
		}
		return normalized[i].Category < normalized[j].Category
	})

	parts := make([]string, len(normalized))
	for i, l := range normalized {
		parts[i] = fmt.Sprintf("%d× %s", l.Quantity, l.Key().DisplayName())
	}
	return strings.Join(parts, ", ")
}
