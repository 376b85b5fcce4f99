package create_encounter

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	createEncounter "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/create_encounter"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgConflict             = "интервал пересекается с существующим приёмом или бронированием"
	msgPatientNotFound      = "пациент не найден"
	msgProfessionalNotFound = "врач не найден"
	msgResourceNotFound     = "ресурс не найден"
	msgResourceUnavailable  = "ресурс недоступен для бронирования"
	msgInvalidDate          = "некорректная дата приёма"
	msgDateTooFar           = "дата приёма слишком далеко в будущем"
	msgTooLateToBook        = "слишком поздно для бронирования этого слота"
	msgInvalidInput         = "некорректные входные данные"
)

type Handler struct {
	useCase CreateEncounterUseCase
	logger  Logger
}

func NewHandler(useCase CreateEncounterUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/encounters
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateEncounterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /encounters - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /encounters - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createEncounter.ErrConflict):
			h.logger.Warn("POST /encounters - Conflict: patient=%d, professional=%d: %v",
				req.PatientID, req.ProfessionalID, err)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createEncounter.ErrPatientNotFound):
			h.logger.Warn("POST /encounters - Patient not found: patient=%d", req.PatientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, createEncounter.ErrProfessionalNotFound):
			h.logger.Warn("POST /encounters - Professional not found: professional=%d", req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, createEncounter.ErrResourceNotFound):
			h.logger.Warn("POST /encounters - Resource not found: %v", err)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createEncounter.ErrResourceUnavailable):
			h.logger.Warn("POST /encounters - Resource unavailable: %v", err)
			handlers.RespondUnprocessableEntity(w, msgResourceUnavailable)

		case errors.Is(err, createEncounter.ErrInvalidDate):
			h.logger.Warn("POST /encounters - Invalid date: patient=%d", req.PatientID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createEncounter.ErrDateTooFarInFuture):
			h.logger.Warn("POST /encounters - Date too far in future: patient=%d", req.PatientID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createEncounter.ErrTooLateToBook):
			h.logger.Warn("POST /encounters - Too late to book: patient=%d", req.PatientID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createEncounter.ErrInvalidInput):
			h.logger.Warn("POST /encounters - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /encounters - Failed to create encounter: patient=%d, professional=%d, error=%v",
				req.PatientID, req.ProfessionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /encounters - Encounter created: encounter_id=%d, patient=%d, professional=%d",
		result.ID, req.PatientID, req.ProfessionalID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
