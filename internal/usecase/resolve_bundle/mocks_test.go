package resolve_bundle

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/locker"
)

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) GetByKeys(ctx context.Context, keys []domain.CatalogKey) ([]*domain.CatalogUnit, error) {
	args := m.Called(ctx, keys)
	units, _ := args.Get(0).([]*domain.CatalogUnit)
	return units, args.Error(1)
}

type mockBundleRepo struct {
	mock.Mock
}

func (m *mockBundleRepo) FindByPrice(ctx context.Context, price decimal.Decimal) ([]*domain.Bundle, error) {
	args := m.Called(ctx, price)
	bundles, _ := args.Get(0).([]*domain.Bundle)
	return bundles, args.Error(1)
}

func (m *mockBundleRepo) Create(ctx context.Context, bundle *domain.Bundle) (*domain.Bundle, error) {
	args := m.Called(ctx, bundle)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Bundle) *domain.Bundle); ok {
		return fn(ctx, bundle), args.Error(1)
	}
	created, _ := args.Get(0).(*domain.Bundle)
	return created, args.Error(1)
}

// fakeLocker запоминает взятые ключи
type fakeLocker struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (l *fakeLocker) Lock(_ context.Context, key string, _ time.Duration) (locker.Unlock, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	l.keys = append(l.keys, key)
	l.mu.Unlock()
	return func() {}, nil
}

type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordBundleResolution(result string) {
	m.Called(result)
}
