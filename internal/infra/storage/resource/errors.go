package resource

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("resource.repository: resource not found")

	// ErrBookingNotFound возвращается, когда бронирование ресурса не найдено
	ErrBookingNotFound = errors.New("resource.repository: resource booking not found")

	// ErrOverlapConstraint возвращается, когда вставка нарушила exclusion
	// constraint на пересечение подтверждённых бронирований
	ErrOverlapConstraint = errors.New("resource.repository: overlapping confirmed booking")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("resource.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("resource.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("resource.repository: failed to scan row")
)
