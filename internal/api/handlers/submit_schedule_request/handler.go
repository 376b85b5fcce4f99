package submit_schedule_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	scheduleRequestsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/schedulerequests"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/schedulerequests/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidPayload       = "данные заявки не соответствуют её типу"
	msgProfessionalNotFound = "врач не найден"
	msgInvalidInput         = "некорректные входные данные"
)

// SubmitScheduleRequestRequest HTTP request model
type SubmitScheduleRequestRequest struct {
	ProfessionalID int64                     `json:"professionalId"`
	RequestType    string                    `json:"requestType"`
	RequestData    domain.ScheduleChangeData `json:"requestData"`
	Reason         *string                   `json:"reason,omitempty"`
}

type Handler struct {
	service ScheduleRequestsService
	logger  Logger
}

func NewHandler(service ScheduleRequestsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedule-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitScheduleRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Submit(r.Context(), &models.SubmitRequest{
		ProfessionalID: req.ProfessionalID,
		RequestType:    req.RequestType,
		Data:           req.RequestData,
		Reason:         req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduleRequestsService.ErrInvalidPayload):
			h.logger.Warn("POST /schedule-requests - Invalid payload: professional=%d, type=%s: %v",
				req.ProfessionalID, req.RequestType, err)
			handlers.RespondBadRequest(w, msgInvalidPayload)

		case errors.Is(err, scheduleRequestsService.ErrProfessionalNotFound):
			h.logger.Warn("POST /schedule-requests - Professional not found: professional=%d", req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, scheduleRequestsService.ErrInvalidInput):
			h.logger.Warn("POST /schedule-requests - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /schedule-requests - Failed: professional=%d, type=%s, error=%v",
				req.ProfessionalID, req.RequestType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule-requests - Request submitted: request_id=%d, professional=%d, type=%s",
		result.ID, req.ProfessionalID, req.RequestType)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
