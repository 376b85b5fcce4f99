package get_encounter

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/encounters/models"
)

type EncountersService interface {
	GetByID(ctx context.Context, id int64) (*models.EncounterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
