package capacity

import "errors"

var (
	// ErrCapacityNotFound возвращается, когда вместимость ещё не задана
	ErrCapacityNotFound = errors.New("capacity.repository: capacity not found")

	// ErrCapacityAlreadyExists возвращается при попытке создать второй экземпляр
	ErrCapacityAlreadyExists = errors.New("capacity.repository: capacity already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("capacity.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("capacity.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("capacity.repository: failed to scan row")
)
