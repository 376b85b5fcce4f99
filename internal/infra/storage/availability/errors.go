package availability

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	// (REMOVE_HOURS/MODIFY_HOURS требуют точного совпадения день/время)
	ErrWindowNotFound = errors.New("availability.repository: availability window not found")

	// ErrWindowExists возвращается при попытке вставить дубликат окна
	ErrWindowExists = errors.New("availability.repository: availability window already exists")

	// ErrBlockNotFound возвращается, когда блокировка даты не найдена
	ErrBlockNotFound = errors.New("availability.repository: date block not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
