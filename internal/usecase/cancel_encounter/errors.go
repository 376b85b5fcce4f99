package cancel_encounter

import "errors"

var (
	// ErrEncounterNotFound возвращается, когда приём не найден
	ErrEncounterNotFound = errors.New("cancel_encounter: encounter not found")

	// ErrInvalidTransition возвращается, когда приём нельзя отменить
	// в его текущем статусе
	ErrInvalidTransition = errors.New("cancel_encounter: encounter cannot be cancelled in its current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_encounter: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_encounter: internal error")
)
