package update_encounter_status

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/encounters/models"
)

type EncountersService interface {
	UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.EncounterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
