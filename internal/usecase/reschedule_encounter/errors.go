package reschedule_encounter

import "errors"

var (
	// ErrEncounterNotFound возвращается, когда приём не найден
	ErrEncounterNotFound = errors.New("reschedule_encounter: encounter not found")

	// ErrInvalidTransition возвращается, когда приём не в статусе scheduled
	ErrInvalidTransition = errors.New("reschedule_encounter: encounter cannot be rescheduled in its current status")

	// ErrConflict возвращается, когда новый интервал пересекается с другим
	// приёмом врача или подтверждённым бронированием ресурса
	ErrConflict = errors.New("reschedule_encounter: scheduling conflict")

	// ErrInvalidDate возвращается при новой дате приёма в прошлом
	ErrInvalidDate = errors.New("reschedule_encounter: invalid encounter date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advance_booking_days
	ErrDateTooFarInFuture = errors.New("reschedule_encounter: date is too far in the future")

	// ErrTooLateToBook возвращается, когда перенос нарушает min_notice_minutes
	ErrTooLateToBook = errors.New("reschedule_encounter: too late to move to this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_encounter: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_encounter: internal error")
)
