package review_schedule_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	reviewScheduleRequest "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/review_schedule_request"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidAction      = "некорректное действие, ожидается approve или reject"
	msgRequestNotFound    = "заявка не найдена"
	msgAlreadyReviewed    = "заявка уже рассмотрена"
	msgSelfReview         = "нельзя рассматривать собственную заявку"
	msgWindowNotFound     = "окно доступности из заявки не найдено"
	msgWindowExists       = "окно доступности из заявки уже существует"
)

type Handler struct {
	useCase ReviewScheduleRequestUseCase
	logger  Logger
}

func NewHandler(useCase ReviewScheduleRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/schedule-requests/{requestId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil || requestID <= 0 {
		h.logger.Warn("PATCH /schedule-requests/{id}/review - Invalid request ID: %s", vars["requestId"])
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	reviewerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /schedule-requests/{id}/review - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req ReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /schedule-requests/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var decision reviewScheduleRequest.Decision
	switch req.Action {
	case "approve":
		decision = reviewScheduleRequest.DecisionApprove
	case "reject":
		decision = reviewScheduleRequest.DecisionReject
	default:
		h.logger.Warn("PATCH /schedule-requests/{id}/review - Invalid action: %s", req.Action)
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &reviewScheduleRequest.Request{
		RequestID:  requestID,
		ReviewerID: reviewerID,
		Decision:   decision,
		Notes:      req.ReviewNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, reviewScheduleRequest.ErrRequestNotFound):
			h.logger.Warn("PATCH /schedule-requests/{id}/review - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, reviewScheduleRequest.ErrInvalidTransition):
			h.logger.Warn("PATCH /schedule-requests/{id}/review - Already reviewed: request_id=%d", requestID)
			handlers.RespondConflict(w, msgAlreadyReviewed)

		case errors.Is(err, reviewScheduleRequest.ErrSelfReview):
			h.logger.Warn("PATCH /schedule-requests/{id}/review - Self review: request_id=%d, reviewer=%d",
				requestID, reviewerID)
			handlers.RespondForbidden(w, msgSelfReview)

		case errors.Is(err, reviewScheduleRequest.ErrWindowNotFound):
			h.logger.Warn("PATCH /schedule-requests/{id}/review - Window not found: request_id=%d: %v", requestID, err)
			handlers.RespondUnprocessableEntity(w, msgWindowNotFound)

		case errors.Is(err, reviewScheduleRequest.ErrWindowExists):
			h.logger.Warn("PATCH /schedule-requests/{id}/review - Window exists: request_id=%d: %v", requestID, err)
			handlers.RespondUnprocessableEntity(w, msgWindowExists)

		case errors.Is(err, reviewScheduleRequest.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		default:
			h.logger.Error("PATCH /schedule-requests/{id}/review - Failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /schedule-requests/{id}/review - Request reviewed: request_id=%d -> %s by reviewer=%d",
		requestID, result.Status, reviewerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
