package constraint

import "errors"

var (
	// ErrConstraintNotFound возвращается, когда для даты нет закрытых интервалов
	ErrConstraintNotFound = errors.New("constraint.repository: constraint not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("constraint.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("constraint.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("constraint.repository: failed to scan row")
)
