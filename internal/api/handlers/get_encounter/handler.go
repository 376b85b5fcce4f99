package get_encounter

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	encountersService "github.com/m04kA/SMC-ClinicScheduler/internal/service/encounters"
)

const (
	msgInvalidEncounterID = "некорректный ID приёма"
	msgEncounterNotFound  = "приём не найден"
)

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

// Handle GET /api/v1/encounters/{encounterId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	encounterID, err := strconv.ParseInt(vars["encounterId"], 10, 64)
	if err != nil || encounterID <= 0 {
		h.logger.Warn("GET /encounters/{id} - Invalid encounter ID: %s", vars["encounterId"])
		handlers.RespondBadRequest(w, msgInvalidEncounterID)
		return
	}

	result, err := h.service.GetByID(r.Context(), encounterID)
	if err != nil {
		switch {
		case errors.Is(err, encountersService.ErrEncounterNotFound):
			h.logger.Warn("GET /encounters/{id} - Encounter not found: encounter_id=%d", encounterID)
			handlers.RespondNotFound(w, msgEncounterNotFound)

		case errors.Is(err, encountersService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidEncounterID)

		default:
			h.logger.Error("GET /encounters/{id} - Failed to fetch encounter: encounter_id=%d, error=%v",
				encounterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /encounters/{id} - Encounter fetched: encounter_id=%d", encounterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
