package reschedule_encounter

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	rescheduleEncounter "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/reschedule_encounter"
)

const (
	msgInvalidEncounterID = "некорректный ID приёма"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgEncounterNotFound  = "приём не найден"
	msgCannotReschedule   = "приём нельзя перенести в текущем статусе"
	msgConflict           = "новый интервал пересекается с существующим приёмом или бронированием"
	msgInvalidDate        = "некорректная дата приёма"
	msgDateTooFar         = "дата приёма слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для переноса на этот слот"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase RescheduleEncounterUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleEncounterUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/encounters/{encounterId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	encounterID, err := strconv.ParseInt(vars["encounterId"], 10, 64)
	if err != nil || encounterID <= 0 {
		h.logger.Warn("PATCH /encounters/{id}/reschedule - Invalid encounter ID: %s", vars["encounterId"])
		handlers.RespondBadRequest(w, msgInvalidEncounterID)
		return
	}

	var req RescheduleEncounterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /encounters/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(encounterID)
	if err != nil {
		h.logger.Warn("PATCH /encounters/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleEncounter.ErrEncounterNotFound):
			h.logger.Warn("PATCH /encounters/{id}/reschedule - Encounter not found: encounter_id=%d", encounterID)
			handlers.RespondNotFound(w, msgEncounterNotFound)

		case errors.Is(err, rescheduleEncounter.ErrInvalidTransition):
			h.logger.Warn("PATCH /encounters/{id}/reschedule - Invalid status: encounter_id=%d: %v", encounterID, err)
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, rescheduleEncounter.ErrConflict):
			h.logger.Warn("PATCH /encounters/{id}/reschedule - Conflict: encounter_id=%d: %v", encounterID, err)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, rescheduleEncounter.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rescheduleEncounter.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, rescheduleEncounter.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, rescheduleEncounter.ErrInvalidInput):
			h.logger.Warn("PATCH /encounters/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /encounters/{id}/reschedule - Failed: encounter_id=%d, error=%v", encounterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /encounters/{id}/reschedule - Encounter rescheduled: encounter_id=%d", encounterID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
