package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrices() PriceList {
	return PriceList{
		{CategoryNone, DurationNone}:      decimal.RequireFromString("25.00"),
		{CategoryRelax, Duration60}:       decimal.RequireFromString("30.00"),
		{CategoryRelax, Duration30}:       decimal.RequireFromString("20.00"),
		{CategoryRock, Duration15}:        decimal.RequireFromString("15.00"),
		{CategoryExfoliation, Duration30}: decimal.RequireFromString("19.99"),
	}
}

func TestSignatureOf_OrderAndSplitIndependent(t *testing.T) {
	a := []ServiceLine{
		{Category: CategoryRelax, Duration: Duration60, Quantity: 2},
		{Category: CategoryNone, Duration: DurationNone, Quantity: 1},
	}
	b := []ServiceLine{
		{Category: CategoryNone, Duration: DurationNone, Quantity: 1},
		{Category: CategoryRelax, Duration: Duration60, Quantity: 1},
		{Category: CategoryRelax, Duration: Duration60, Quantity: 1},
	}

	assert.Equal(t, SignatureOf(a), SignatureOf(b))
	assert.Equal(t, Signature("none:0x1|relax:60x2"), SignatureOf(a))
	assert.True(t, SameLines(a, b))
}

func TestSignatureOf_DistinguishesQuantities(t *testing.T) {
	one := []ServiceLine{{Category: CategoryRelax, Duration: Duration60, Quantity: 1}}
	withBath := []ServiceLine{
		{Category: CategoryRelax, Duration: Duration60, Quantity: 1},
		{Category: CategoryNone, Duration: DurationNone, Quantity: 1},
	}
	assert.NotEqual(t, SignatureOf(one), SignatureOf(withBath))
}

func TestSignature_HashIncludesPrice(t *testing.T) {
	sig := Signature("relax:60x1")
	h1 := sig.Hash(decimal.RequireFromString("30"))
	h2 := sig.Hash(decimal.RequireFromString("30.00"))
	h3 := sig.Hash(decimal.RequireFromString("31.00"))

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestPriceList_TotalExact(t *testing.T) {
	prices := testPrices()
	lines := []ServiceLine{
		{Category: CategoryExfoliation, Duration: Duration30, Quantity: 3},
		{Category: CategoryRelax, Duration: Duration60, Quantity: 1},
	}

	total, err := prices.Total(lines)
	require.NoError(t, err)
	assert.Equal(t, "89.97", total.StringFixed(2))
}

func TestPriceList_TotalMissingUnit(t *testing.T) {
	prices := testPrices()
	lines := []ServiceLine{{Category: CategoryRock, Duration: Duration60, Quantity: 1}}

	_, err := prices.Total(lines)
	assert.ErrorIs(t, err, ErrCatalogIncomplete)
	assert.Equal(t, []CatalogKey{{CategoryRock, Duration60}}, prices.Missing(lines))
}

func TestBundleName(t *testing.T) {
	lines := []ServiceLine{
		{Category: CategoryNone, Duration: DurationNone, Quantity: 1},
		{Category: CategoryRelax, Duration: Duration60, Quantity: 2},
	}
	assert.Equal(t, "2× Relax 60, 1× Plain", BundleName(lines))
}

func TestValidateLines(t *testing.T) {
	assert.ErrorIs(t, ValidateLines(nil), ErrValidation)
	assert.ErrorIs(t, ValidateLines([]ServiceLine{{Category: CategoryRelax, Duration: Duration60, Quantity: 0}}), ErrValidation)
	assert.ErrorIs(t, ValidateLines([]ServiceLine{{Category: CategoryNone, Duration: Duration60, Quantity: 1}}), ErrValidation)
	assert.ErrorIs(t, ValidateLines([]ServiceLine{{Category: "hot", Duration: Duration60, Quantity: 1}}), ErrValidation)
	assert.NoError(t, ValidateLines([]ServiceLine{{Category: CategoryRock, Duration: Duration15, Quantity: 2}}))
}

func TestNewAutoBundle(t *testing.T) {
	units := map[CatalogKey]*CatalogUnit{
		{CategoryRelax, Duration60}: {ID: 7, Key: CatalogKey{CategoryRelax, Duration60}, UnitPrice: decimal.RequireFromString("30.00")},
	}
	lines := []ServiceLine{{Category: CategoryRelax, Duration: Duration60, Quantity: 1}}
	price := decimal.RequireFromString("30.00")

	b := NewAutoBundle(lines, price, units)

	assert.False(t, b.Visible)
	assert.True(t, b.UsesMassagist)
	assert.True(t, b.UsesCapacity)
	assert.Equal(t, "1× Relax 60", b.Name)
	require.NotNil(t, b.SignatureHash)
	assert.Equal(t, SignatureOf(lines).Hash(price), *b.SignatureHash)
	assert.Equal(t, int64(7), b.Lines[0].CatalogUnitID)
	assert.True(t, b.Matches(SignatureOf(lines), price))
}

func TestParseCatalogKey(t *testing.T) {
	key, err := ParseCatalogKey("relax_60")
	require.NoError(t, err)
	assert.Equal(t, CatalogKey{CategoryRelax, Duration60}, key)
	assert.Equal(t, "Relax 60", key.DisplayName())

	key, err = ParseCatalogKey("none_0")
	require.NoError(t, err)
	assert.Equal(t, "Plain", key.DisplayName())

	_, err = ParseCatalogKey("relax")
	assert.ErrorIs(t, err, ErrValidation)
}
