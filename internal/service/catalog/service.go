package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// List возвращает весь каталог
func (s *Service) List(ctx context.Context) (*models.CatalogListResponse, error) {
	units, err := s.catalogRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListCatalog: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCatalog - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainUnitList(units), nil
}

// EnsureSeeded создает недостающие единицы каталога по ценам из конфигурации
// Существующие единицы не меняются, повторный вызов ничего не делает
// prices: "relax_60" -> "30.00"
func (s *Service) EnsureSeeded(ctx context.Context, prices map[string]string) (int64, error) {
	s.logger.Info("EnsureSeeded: seeding %d catalog units", len(prices))

	// 1. Разбираем ключи и цены
	units, err := parseUnits(prices)
	if err != nil {
		s.logger.Warn("EnsureSeeded: invalid catalog prices: %v", err)
		return 0, err
	}

	// 2. Предупреждаем о неполном каталоге: такие услуги нельзя будет оценить
	present := make(map[domain.CatalogKey]struct{}, len(units))
	for _, u := range units {
		present[u.Key] = struct{}{}
	}
	for _, key := range domain.CanonicalCatalogKeys() {
		if _, ok := present[key]; !ok {
			s.logger.Warn("EnsureSeeded: no price configured for %s", key)
		}
	}

	// 3. Вставляем только отсутствующие
	created, err := s.catalogRepo.EnsureUnits(ctx, units)
	if err != nil {
		s.logger.Error("EnsureSeeded: repository error: %v", err)
		return 0, fmt.Errorf("%w: EnsureSeeded - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureSeeded: %d new catalog units created", created)
	return created, nil
}

// parseUnits конвертирует карту цен в единицы каталога в стабильном порядке
func parseUnits(prices map[string]string) ([]*domain.CatalogUnit, error) {
	units := make([]*domain.CatalogUnit, 0, len(prices))
	for raw, rawPrice := range prices {
		key, err := domain.ParseCatalogKey(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: price of %s is not a number: %q", ErrInvalidInput, raw, rawPrice)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: price of %s must be non-negative", ErrInvalidInput, raw)
		}
		units = append(units, &domain.CatalogUnit{
			Key:       key,
			Name:      key.DisplayName(),
			UnitPrice: price.Round(domain.MoneyPlaces),
		})
	}

	sort.Slice(units, func(i, j int) bool {
		return units[i].Key.String() < units[j].Key.String()
	})
	return units, nil
}
