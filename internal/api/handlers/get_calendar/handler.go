package get_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	calendarService "github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID врача"
	msgInvalidDateParams     = "некорректные параметры startDate/endDate, ожидается YYYY-MM-DD"
	msgRangeTooWide          = "слишком широкий период запроса"
	msgInvalidInput          = "некорректные входные данные"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/calendar?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil || professionalID <= 0 {
		h.logger.Warn("GET /professionals/{id}/calendar - Invalid professional ID: %s", vars["professionalId"])
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/calendar - Invalid startDate: %s", r.URL.Query().Get("startDate"))
		handlers.RespondBadRequest(w, msgInvalidDateParams)
		return
	}
	endDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/calendar - Invalid endDate: %s", r.URL.Query().Get("endDate"))
		handlers.RespondBadRequest(w, msgInvalidDateParams)
		return
	}

	// [startDate, endDate] включительно на уровне API, внутри полуинтервал
	result, err := h.service.GetEvents(r.Context(), &models.GetCalendarRequest{
		ProfessionalID: professionalID,
		From:           startDate,
		To:             endDate.AddDate(0, 0, 1),
	})
	if err != nil {
		switch {
		case errors.Is(err, calendarService.ErrRangeTooWide):
			h.logger.Warn("GET /professionals/{id}/calendar - Range too wide: professional=%d", professionalID)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, calendarService.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/calendar - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /professionals/{id}/calendar - Failed: professional=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/calendar - %d events for professional=%d",
		len(result.Events), professionalID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
