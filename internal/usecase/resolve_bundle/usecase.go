package resolve_bundle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	bundleRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/bundle"
)

// UseCase use case поиска или создания пакета услуг по набору строк
// Пакеты эквивалентны, если совпадают отсортированный набор строк и цена
type UseCase struct {
	catalogRepo CatalogRepository
	bundleRepo  BundleRepository
	locker      Locker
	lockTTL     time.Duration
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	bundleRepo BundleRepository,
	locker Locker,
	lockTTL time.Duration,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		bundleRepo:  bundleRepo,
		locker:      locker,
		lockTTL:     lockTTL,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute находит пакет с тем же набором строк и ценой или создает скрытый пакет
// Вызов внутри транзакции использует её; иначе открывается своя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация строк
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveBundle: validation failed: %v", err)
		return nil, err
	}
	lines := domain.NormalizeLines(req.Lines)
	sig := domain.SignatureOf(lines)

	// 2. Цена из каталога: Σ цена единицы × количество
	units, err := uc.catalogRepo.GetByKeys(ctx, catalogKeys(lines))
	if err != nil {
		uc.logger.Error("ResolveBundle: failed to get catalog units: %v", err)
		return nil, fmt.Errorf("%w: failed to get catalog units: %w", ErrInternal, err)
	}
	total, err := domain.NewPriceList(units).Total(lines)
	if err != nil {
		uc.logger.Warn("ResolveBundle: signature=%s: %v", sig, err)
		return nil, fmt.Errorf("%w: %v", ErrCatalogIncomplete, err)
	}
	hash := sig.Hash(total)

	uc.logger.Info("ResolveBundle: signature=%s, price=%s", sig, total.StringFixed(domain.MoneyPlaces))

	// 3. Сериализуем создание одинаковых пакетов
	// Без блокировки корректность держит уникальный signature_hash, поэтому ошибка блокировки не фатальна
	unlock, err := uc.locker.Lock(ctx, lockKey(hash), uc.lockTTL)
	if err != nil {
		uc.logger.Warn("ResolveBundle: proceeding without lock for signature=%s: %v", sig, err)
	} else {
		defer unlock()
	}

	byKey := make(map[domain.CatalogKey]*domain.CatalogUnit, len(units))
	for _, u := range units {
		byKey[u.Key] = u
	}

	// 4. Поиск или создание; при гонке - один повтор, перечитывание находит победителя
	var result *Response
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		result, err = uc.findOrCreate(txCtx, lines, sig, total, byKey)
		if !errors.Is(err, bundleRepo.ErrDuplicateSignature) {
			return err
		}

		uc.logger.Warn("ResolveBundle: concurrent creation of signature=%s, retrying", sig)
		uc.metrics.RecordBundleResolution("race_retry")

		result, err = uc.findOrCreate(txCtx, lines, sig, total, byKey)
		if errors.Is(err, bundleRepo.ErrDuplicateSignature) {
			return ErrBundleRaceConflict
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrBundleRaceConflict) {
			uc.logger.Error("ResolveBundle: race conflict persisted for signature=%s", sig)
			uc.metrics.RecordBundleResolution("race_conflict")
			return nil, err
		}
		uc.logger.Error("ResolveBundle: failed to resolve bundle for signature=%s: %v", sig, err)
		return nil, fmt.Errorf("%w: failed to resolve bundle: %w", ErrInternal, err)
	}

	if result.Created {
		uc.metrics.RecordBundleResolution("created")
		uc.logger.Info("ResolveBundle: created bundle id=%d %q", result.Bundle.ID, result.Bundle.Name)
	} else {
		uc.metrics.RecordBundleResolution("reused")
		uc.logger.Info("ResolveBundle: reused bundle id=%d %q", result.Bundle.ID, result.Bundle.Name)
	}
	return result, nil
}

// findOrCreate первый пакет с той же ценой и тем же набором строк, иначе новый скрытый пакет
func (uc *UseCase) findOrCreate(
	ctx context.Context,
	lines []domain.ServiceLine,
	sig domain.Signature,
	total decimal.Decimal,
	units map[domain.CatalogKey]*domain.CatalogUnit,
) (*Response, error) {
	candidates, err := uc.bundleRepo.FindByPrice(ctx, total)
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		if c.Matches(sig, total) {
			return &Response{Bundle: c}, nil
		}
	}

	created, err := uc.bundleRepo.Create(ctx, domain.NewAutoBundle(lines, total, units))
	if err != nil {
		return nil, err
	}
	return &Response{Bundle: created, Created: true}, nil
}
