package create_encounter

import "errors"

var (
	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("create_encounter: patient not found")

	// ErrProfessionalNotFound возвращается, когда врач не найден
	ErrProfessionalNotFound = errors.New("create_encounter: professional not found")

	// ErrResourceNotFound возвращается, когда запрошенный ресурс не существует
	ErrResourceNotFound = errors.New("create_encounter: resource not found")

	// ErrResourceUnavailable возвращается, когда ресурс не бронируем
	// (maintenance/retired или is_bookable=false)
	ErrResourceUnavailable = errors.New("create_encounter: resource unavailable")

	// ErrConflict возвращается, когда интервал пересекается с существующим
	// приёмом врача или подтверждённым бронированием ресурса.
	// Текст ошибки называет первый конфликтующий ресурс или врача.
	ErrConflict = errors.New("create_encounter: scheduling conflict")

	// ErrInvalidDate возвращается при дате приёма в прошлом
	ErrInvalidDate = errors.New("create_encounter: invalid encounter date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advance_booking_days
	ErrDateTooFarInFuture = errors.New("create_encounter: date is too far in the future")

	// ErrTooLateToBook возвращается, когда бронирование нарушает min_notice_minutes
	ErrTooLateToBook = errors.New("create_encounter: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_encounter: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_encounter: internal error")
)
