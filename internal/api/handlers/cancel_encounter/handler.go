package cancel_encounter

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	cancelEncounter "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/cancel_encounter"
)

const (
	msgInvalidEncounterID = "некорректный ID приёма"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEncounterNotFound  = "приём не найден"
	msgCannotCancel       = "приём нельзя отменить в текущем статусе"
)

type Handler struct {
	useCase CancelEncounterUseCase
	logger  Logger
}

func NewHandler(useCase CancelEncounterUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/encounters/{encounterId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	encounterID, err := strconv.ParseInt(vars["encounterId"], 10, 64)
	if err != nil || encounterID <= 0 {
		h.logger.Warn("PATCH /encounters/{id}/cancel - Invalid encounter ID: %s", vars["encounterId"])
		handlers.RespondBadRequest(w, msgInvalidEncounterID)
		return
	}

	// Тело опционально: отмена без причины допустима
	var req CancelEncounterRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /encounters/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &cancelEncounter.Request{
		EncounterID: encounterID,
		Reason:      req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelEncounter.ErrEncounterNotFound):
			h.logger.Warn("PATCH /encounters/{id}/cancel - Encounter not found: encounter_id=%d", encounterID)
			handlers.RespondNotFound(w, msgEncounterNotFound)

		case errors.Is(err, cancelEncounter.ErrInvalidTransition):
			h.logger.Warn("PATCH /encounters/{id}/cancel - Cannot cancel: encounter_id=%d: %v", encounterID, err)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, cancelEncounter.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidEncounterID)

		default:
			h.logger.Error("PATCH /encounters/{id}/cancel - Failed: encounter_id=%d, error=%v", encounterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /encounters/{id}/cancel - Encounter cancelled: encounter_id=%d", encounterID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
