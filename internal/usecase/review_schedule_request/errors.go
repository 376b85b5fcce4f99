package review_schedule_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("review_schedule_request: request not found")

	// ErrInvalidTransition возвращается при повторном рассмотрении:
	// approved и rejected считаются терминальными статусами
	ErrInvalidTransition = errors.New("review_schedule_request: request already reviewed")

	// ErrSelfReview возвращается при попытке врача рассмотреть свою заявку
	ErrSelfReview = errors.New("review_schedule_request: reviewer cannot review own request")

	// ErrWindowNotFound возвращается, когда заявка ссылается на несуществующее
	// окно доступности (REMOVE_HOURS/MODIFY_HOURS/CHANGE_SERVICE_TYPE)
	ErrWindowNotFound = errors.New("review_schedule_request: availability window not found")

	// ErrWindowExists возвращается, когда ADD_HOURS добавляет дубликат окна
	ErrWindowExists = errors.New("review_schedule_request: availability window already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("review_schedule_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("review_schedule_request: internal error")
)
