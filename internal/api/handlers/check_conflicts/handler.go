package check_conflicts

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	conflictsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/conflicts"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/conflicts/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

const (
	msgInvalidProfessionalID = "некорректный ID врача"
	msgInvalidDateTimeParams = "некорректные параметры date/startTime/endTime"
	msgInvalidResourceIDs    = "некорректный параметр resourceIds"
	msgInvalidInput          = "некорректные входные данные"
)

type Handler struct {
	service ConflictsService
	logger  Logger
}

func NewHandler(service ConflictsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/conflicts?date=YYYY-MM-DD&startTime=HH:MM&endTime=HH:MM&resourceIds=1,2
// Предварительная read-only проверка; авторитетная выполняется в
// транзакции бронирования.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil || professionalID <= 0 {
		h.logger.Warn("GET /professionals/{id}/conflicts - Invalid professional ID: %s", vars["professionalId"])
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	interval, err := parseInterval(r)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/conflicts - Invalid date/time params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTimeParams)
		return
	}

	resourceIDs, err := parseResourceIDs(r.URL.Query().Get("resourceIds"))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/conflicts - Invalid resourceIds: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceIDs)
		return
	}

	var excludeEncounterID *int64
	if raw := r.URL.Query().Get("excludeEncounterId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		excludeEncounterID = &id
	}

	result, err := h.service.Check(r.Context(), &models.CheckConflictsRequest{
		ProfessionalID:     professionalID,
		Interval:           interval,
		ResourceIDs:        resourceIDs,
		ExcludeEncounterID: excludeEncounterID,
	})
	if err != nil {
		switch {
		case errors.Is(err, conflictsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /professionals/{id}/conflicts - Failed: professional=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/conflicts - professional=%d, hasConflict=%v",
		professionalID, result.HasConflict)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseInterval(r *http.Request) (domain.TimeRange, error) {
	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		return domain.TimeRange{}, err
	}

	startTime, err := types.NewTimeStringFromString(r.URL.Query().Get("startTime"))
	if err != nil {
		return domain.TimeRange{}, err
	}
	endTime, err := types.NewTimeStringFromString(r.URL.Query().Get("endTime"))
	if err != nil {
		return domain.TimeRange{}, err
	}

	start, err := startTime.OnDate(date)
	if err != nil {
		return domain.TimeRange{}, err
	}
	end, err := endTime.OnDate(date)
	if err != nil {
		return domain.TimeRange{}, err
	}

	return domain.TimeRange{Start: start, End: end}, nil
}

func parseResourceIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || id <= 0 {
			return nil, errors.New("resource ids must be positive integers")
		}
		ids = append(ids, id)
	}

	return ids, nil
}
