package staffservice

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда врач не найден
	ErrProfessionalNotFound = errors.New("staffservice client: professional not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffservice client: invalid response")
)
