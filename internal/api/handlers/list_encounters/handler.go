package list_encounters

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	encountersService "github.com/m04kA/SMC-ClinicScheduler/internal/service/encounters"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/encounters/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID врача"
	msgInvalidDateParams     = "некорректные параметры startDate/endDate, ожидается YYYY-MM-DD"
	msgInvalidInput          = "некорректные входные данные"
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

// Handle GET /api/v1/professionals/{professionalId}/encounters?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD&includeCancelled=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil || professionalID <= 0 {
		h.logger.Warn("GET /professionals/{id}/encounters - Invalid professional ID: %s", vars["professionalId"])
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("startDate"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateParams)
		return
	}
	endDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("endDate"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateParams)
		return
	}

	includeCancelled := r.URL.Query().Get("includeCancelled") == "true"

	result, err := h.service.List(r.Context(), &models.ListEncountersRequest{
		ProfessionalID:   professionalID,
		From:             startDate,
		To:               endDate.AddDate(0, 0, 1),
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		switch {
		case errors.Is(err, encountersService.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/encounters - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /professionals/{id}/encounters - Failed: professional=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/encounters - %d encounters for professional=%d",
		result.Total, professionalID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
