package encounters

import "errors"

var (
	// ErrEncounterNotFound возвращается, когда приём не найден
	ErrEncounterNotFound = errors.New("encounter not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid encounter status transition")

	// ErrInvalidStatus возвращается при неизвестном статусе в запросе
	ErrInvalidStatus = errors.New("invalid encounter status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
