package encounter

import "errors"

var (
	// ErrEncounterNotFound возвращается, когда приём не найден
	ErrEncounterNotFound = errors.New("encounter.repository: encounter not found")

	// ErrStatusNotUpdated возвращается, когда условное обновление статуса
	// не затронуло ни одной строки (статус уже изменился конкурентно)
	ErrStatusNotUpdated = errors.New("encounter.repository: status precondition failed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("encounter.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("encounter.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("encounter.repository: failed to scan row")
)
