package resolve_bundle

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных строках услуг
	ErrInvalidInput = fmt.Errorf("%w: resolve_bundle: invalid service lines", domain.ErrValidation)

	// ErrCatalogIncomplete возвращается, когда для услуги нет цены в каталоге
	ErrCatalogIncomplete = fmt.Errorf("%w: resolve_bundle: missing catalog unit", domain.ErrCatalogIncomplete)

	// ErrBundleRaceConflict возвращается, если пакет не удалось ни найти, ни создать после повтора
	ErrBundleRaceConflict = fmt.Errorf("%w: resolve_bundle: concurrent bundle creation", domain.ErrBundleRaceConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_bundle: internal error")
)
