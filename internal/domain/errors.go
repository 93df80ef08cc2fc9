package domain

import "errors"

// Базовые категории ошибок. Ошибки пакетов оборачивают их через %w,
// поэтому errors.Is работает на любом уровне (usecase, handler)
var (
	// ErrValidation некорректные входные данные
	ErrValidation = errors.New("validation error")

	// ErrCatalogIncomplete для запрошенной услуги нет цены в каталоге
	ErrCatalogIncomplete = errors.New("catalog incomplete")

	// ErrConstraintBlocked время попадает в закрытый интервал дня
	ErrConstraintBlocked = errors.New("constraint blocked")

	// ErrCapacityExceeded превышена общая вместимость слота
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrNotAvailable время вне доступных интервалов дня
	ErrNotAvailable = errors.New("not available")

	// ErrNotFound сущность не найдена
	ErrNotFound = errors.New("not found")

	// ErrBundleRaceConflict параллельное создание одинакового пакета
	ErrBundleRaceConflict = errors.New("bundle race conflict")
)
