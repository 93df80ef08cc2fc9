package resolve_bundle

import (
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// validateRequest валидирует строки услуг
func validateRequest(req *Request) error {
	if err := domain.ValidateLines(req.Lines); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// lockKey ключ блокировки создания пакета
func lockKey(hash string) string {
	return "bundle:" + hash
}

// catalogKeys уникальные ключи каталога строк (строки уже нормализованы)
func catalogKeys(lines []domain.ServiceLine) []domain.CatalogKey {
	keys := make([]domain.CatalogKey, len(lines))
	for i, l := range lines {
		keys[i] = l.Key()
	}
	return keys
}
