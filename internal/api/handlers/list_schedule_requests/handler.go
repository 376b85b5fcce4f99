package list_schedule_requests

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	scheduleRequestsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/schedulerequests"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/schedulerequests/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID врача"
	msgInvalidStatus         = "некорректный статус, ожидается pending, approved или rejected"
)

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

// Handle GET /api/v1/professionals/{professionalId}/schedule-requests?status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil || professionalID <= 0 {
		h.logger.Warn("GET /professionals/{id}/schedule-requests - Invalid professional ID: %s", vars["professionalId"])
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.List(r.Context(), &models.ListRequest{
		ProfessionalID: professionalID,
		Status:         status,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduleRequestsService.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/schedule-requests - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /professionals/{id}/schedule-requests - Failed: professional=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/schedule-requests - %d requests for professional=%d",
		result.Total, professionalID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
