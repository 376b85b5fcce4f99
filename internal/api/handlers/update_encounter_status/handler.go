package update_encounter_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	encountersService "github.com/m04kA/SMC-ClinicScheduler/internal/service/encounters"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/encounters/models"
)

const (
	msgInvalidEncounterID = "некорректный ID приёма"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEncounterNotFound  = "приём не найден"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgInvalidStatus      = "некорректный статус, ожидается in_progress, completed или no_show"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // in_progress | completed | no_show
}

type Handler struct {
	service EncountersService
	logger  Logger
}

func NewHandler(service EncountersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/encounters/{encounterId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	encounterID, err := strconv.ParseInt(vars["encounterId"], 10, 64)
	if err != nil || encounterID <= 0 {
		h.logger.Warn("PATCH /encounters/{id}/status - Invalid encounter ID: %s", vars["encounterId"])
		handlers.RespondBadRequest(w, msgInvalidEncounterID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /encounters/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), &models.UpdateStatusRequest{
		EncounterID: encounterID,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, encountersService.ErrEncounterNotFound):
			h.logger.Warn("PATCH /encounters/{id}/status - Encounter not found: encounter_id=%d", encounterID)
			handlers.RespondNotFound(w, msgEncounterNotFound)

		case errors.Is(err, encountersService.ErrInvalidTransition):
			h.logger.Warn("PATCH /encounters/{id}/status - Invalid transition: encounter_id=%d, status=%s",
				encounterID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, encountersService.ErrInvalidStatus):
			h.logger.Warn("PATCH /encounters/{id}/status - Invalid status: %s", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, encountersService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidEncounterID)

		default:
			h.logger.Error("PATCH /encounters/{id}/status - Failed: encounter_id=%d, error=%v", encounterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /encounters/{id}/status - Status updated: encounter_id=%d -> %s", encounterID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
