package schedulerequests

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("schedule change request not found")

	// ErrProfessionalNotFound возвращается, когда врач не найден
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrInvalidPayload возвращается, когда payload не соответствует типу заявки
	ErrInvalidPayload = errors.New("invalid schedule change payload")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
