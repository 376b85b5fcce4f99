package schedulerequest

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("schedulerequest.repository: request not found")

	// ErrAlreadyReviewed возвращается, когда условное обновление статуса
	// не нашло заявку в статусе pending
	ErrAlreadyReviewed = errors.New("schedulerequest.repository: request already reviewed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedulerequest.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedulerequest.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedulerequest.repository: failed to scan row")
)
