package maintenanceservice

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не известен сервису обслуживания
	ErrResourceNotFound = errors.New("maintenanceservice client: resource not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("maintenanceservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("maintenanceservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation:
	// сервис обслуживания недоступен, используем статус ресурса из БД
	ErrServiceDegraded = errors.New("maintenanceservice unavailable: graceful degradation applied")
)
