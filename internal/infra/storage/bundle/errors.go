package bundle

import "errors"

var (
	// ErrBundleNotFound возвращается, когда пакет не найден
	ErrBundleNotFound = errors.New("bundle.repository: bundle not found")

	// ErrDuplicateSignature возвращается, когда пакет с таким хэшем сигнатуры уже создан
	ErrDuplicateSignature = errors.New("bundle.repository: duplicate signature hash")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bundle.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bundle.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bundle.repository: failed to scan row")
)
