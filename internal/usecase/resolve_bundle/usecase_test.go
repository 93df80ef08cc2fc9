package resolve_bundle

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	bundleRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/bundle"
	"github.com/m04kA/SMC-SpaBookingService/pkg/locker"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

var (
	relax60 = domain.CatalogKey{Category: domain.CategoryRelax, Duration: domain.Duration60}
	plain   = domain.CatalogKey{Category: domain.CategoryNone, Duration: domain.DurationNone}
	rock15  = domain.CatalogKey{Category: domain.CategoryRock, Duration: domain.Duration15}
)

func unit(id int64, key domain.CatalogKey, price string) *domain.CatalogUnit {
	return &domain.CatalogUnit{ID: id, Key: key, Name: key.DisplayName(), UnitPrice: decimal.RequireFromString(price)}
}

func catalogUnits() []*domain.CatalogUnit {
	return []*domain.CatalogUnit{
		unit(1, plain, "25.00"),
		unit(2, relax60, "30.00"),
		unit(3, rock15, "5.00"),
	}
}

type fixture struct {
	catalog *mockCatalogRepo
	bundles *mockBundleRepo
	locker  *fakeLocker
	metrics *mockMetrics
	uc      *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		catalog: &mockCatalogRepo{},
		bundles: &mockBundleRepo{},
		locker:  &fakeLocker{},
		metrics: &mockMetrics{},
	}
	f.catalog.On("GetByKeys", mock.Anything, mock.Anything).Return(catalogUnits(), nil)
	f.uc = NewUseCase(f.catalog, f.bundles, f.locker, time.Second, inlineTxManager{}, f.metrics, logger.NewNop())
	return f
}

func price(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func withID(b *domain.Bundle, id int64) *domain.Bundle {
	b.ID = id
	return b
}

func TestExecute_CreatesThenReuses(t *testing.T) {
	f := newFixture()
	lines := []domain.ServiceLine{{Category: domain.CategoryRelax, Duration: domain.Duration60, Quantity: 1}}

	var stored *domain.Bundle
	f.bundles.On("FindByPrice", mock.Anything, price("30")).Return([]*domain.Bundle{}, nil).Once()
	f.bundles.On("Create", mock.Anything, mock.AnythingOfType("*domain.Bundle")).
		Run(func(args mock.Arguments) {
			stored = withID(args.Get(1).(*domain.Bundle), 11)
		}).
		Return(func(_ context.Context, b *domain.Bundle) *domain.Bundle { return b }, nil).Once()
	f.metrics.On("RecordBundleResolution", "created").Once()
	f.metrics.On("RecordBundleResolution", "reused").Once()

	first, err := f.uc.Execute(context.Background(), &Request{Lines: lines})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "30.00", first.Bundle.Price.StringFixed(2))
	assert.Equal(t, "1× Relax 60", first.Bundle.Name)
	assert.False(t, first.Bundle.Visible)
	assert.True(t, first.Bundle.UsesMassagist)

	f.bundles.On("FindByPrice", mock.Anything, price("30")).Return([]*domain.Bundle{stored}, nil).Once()

	second, err := f.uc.Execute(context.Background(), &Request{Lines: lines})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Bundle.ID, second.Bundle.ID)

	f.bundles.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
	assert.Len(t, f.locker.keys, 2)
	assert.Equal(t, f.locker.keys[0], f.locker.keys[1])
}

func TestExecute_SamePriceDifferentSignatureCreatesDistinctBundle(t *testing.T) {
	f := newFixture()

	// существующий пакет за 55.00: 11 × Rock 15
	existing := &domain.Bundle{
		ID:    5,
		Name:  "11× Rock 15",
		Price: decimal.RequireFromString("55.00"),
		Lines: []domain.BundleLine{{Key: rock15, Quantity: 11, CatalogUnitID: 3}},
	}
	f.bundles.On("FindByPrice", mock.Anything, price("55")).Return([]*domain.Bundle{existing}, nil).Once()
	f.bundles.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Bundle) bool {
		return b.Name == "1× Relax 60, 1× Plain" && !b.Visible && len(b.Lines) == 2
	})).Return(&domain.Bundle{ID: 6, Price: decimal.RequireFromString("55.00")}, nil).Once()
	f.metrics.On("RecordBundleResolution", "created").Once()

	resp, err := f.uc.Execute(context.Background(), &Request{Lines: []domain.ServiceLine{
		{Category: domain.CategoryRelax, Duration: domain.Duration60, Quantity: 1},
		{Category: domain.CategoryNone, Duration: domain.DurationNone, Quantity: 1},
	}})

	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Equal(t, int64(6), resp.Bundle.ID)
	f.bundles.AssertExpectations(t)
}

func TestExecute_ReusesVisibleBundleWithSameLines(t *testing.T) {
	f := newFixture()

	promo := &domain.Bundle{
		ID:      2,
		Name:    "Relax for two",
		Price:   decimal.RequireFromString("60.00"),
		Visible: true,
		Lines:   []domain.BundleLine{{Key: relax60, Quantity: 2, CatalogUnitID: 2}},
	}
	f.bundles.On("FindByPrice", mock.Anything, price("60")).Return([]*domain.Bundle{promo}, nil).Once()
	f.metrics.On("RecordBundleResolution", "reused").Once()

	// две строки одной услуги объединяются в 2 × Relax 60
	resp, err := f.uc.Execute(context.Background(), &Request{Lines: []domain.ServiceLine{
		{Category: domain.CategoryRelax, Duration: domain.Duration60, Quantity: 1},
		{Category: domain.CategoryRelax, Duration: domain.Duration60, Quantity: 1},
	}})

	require.NoError(t, err)
	assert.False(t, resp.Created)
	assert.Equal(t, int64(2), resp.Bundle.ID)
	f.bundles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_RaceRetryFindsWinner(t *testing.T) {
	f := newFixture()
	lines := []domain.ServiceLine{{Category: domain.CategoryRock, Duration: domain.Duration15, Quantity: 3}}
	winner := &domain.Bundle{
		ID:    44,
		Price: decimal.RequireFromString("15.00"),
		Lines: []domain.BundleLine{{Key: rock15, Quantity: 3, CatalogUnitID: 3}},
	}

	f.bundles.On("FindByPrice", mock.Anything, price("15")).Return([]*domain.Bundle{}, nil).Once()
	f.bundles.On("Create", mock.Anything, mock.Anything).Return(nil, bundleRepo.ErrDuplicateSignature).Once()
	f.bundles.On("FindByPrice", mock.Anything, price("15")).Return([]*domain.Bundle{winner}, nil).Once()
	f.metrics.On("RecordBundleResolution", "race_retry").Once()
	f.metrics.On("RecordBundleResolution", "reused").Once()

	resp, err := f.uc.Execute(context.Background(), &Request{Lines: lines})

	require.NoError(t, err)
	assert.Equal(t, int64(44), resp.Bundle.ID)
	f.metrics.AssertExpectations(t)
}

func TestExecute_RaceConflictAfterRetry(t *testing.T) {
	f := newFixture()
	lines := []domain.ServiceLine{{Category: domain.CategoryRock, Duration: domain.Duration15, Quantity: 3}}

	f.bundles.On("FindByPrice", mock.Anything, price("15")).Return([]*domain.Bundle{}, nil).Twice()
	f.bundles.On("Create", mock.Anything, mock.Anything).Return(nil, bundleRepo.ErrDuplicateSignature).Twice()
	f.metrics.On("RecordBundleResolution", "race_retry").Once()
	f.metrics.On("RecordBundleResolution", "race_conflict").Once()

	_, err := f.uc.Execute(context.Background(), &Request{Lines: lines})

	assert.ErrorIs(t, err, domain.ErrBundleRaceConflict)
	f.bundles.AssertExpectations(t)
}

func TestExecute_CatalogIncomplete(t *testing.T) {
	f := &fixture{catalog: &mockCatalogRepo{}, bundles: &mockBundleRepo{}, locker: &fakeLocker{}, metrics: &mockMetrics{}}
	f.catalog.On("GetByKeys", mock.Anything, mock.Anything).Return([]*domain.CatalogUnit{unit(1, plain, "25")}, nil)
	f.uc = NewUseCase(f.catalog, f.bundles, f.locker, time.Second, inlineTxManager{}, f.metrics, logger.NewNop())

	_, err := f.uc.Execute(context.Background(), &Request{Lines: []domain.ServiceLine{
		{Category: domain.CategoryExfoliation, Duration: domain.Duration30, Quantity: 1},
	}})

	assert.ErrorIs(t, err, domain.ErrCatalogIncomplete)
	f.bundles.AssertNotCalled(t, "FindByPrice", mock.Anything, mock.Anything)
}

func TestExecute_InvalidLines(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Lines: []domain.ServiceLine{
		{Category: domain.CategoryRelax, Duration: domain.Duration60, Quantity: 0},
	}})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_LockFailureDoesNotBlockResolution(t *testing.T) {
	f := newFixture()
	f.locker.err = locker.ErrLockBackend

	existing := &domain.Bundle{
		ID:    3,
		Price: decimal.RequireFromString("25.00"),
		Lines: []domain.BundleLine{{Key: plain, Quantity: 1, CatalogUnitID: 1}},
	}
	f.bundles.On("FindByPrice", mock.Anything, price("25")).Return([]*domain.Bundle{existing}, nil).Once()
	f.metrics.On("RecordBundleResolution", "reused").Once()

	resp, err := f.uc.Execute(context.Background(), &Request{Lines: []domain.ServiceLine{
		{Category: domain.CategoryNone, Duration: domain.DurationNone, Quantity: 1},
	}})

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Bundle.ID)
}
