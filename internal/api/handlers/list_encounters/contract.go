package list_encounters

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/encounters/models"
)

type EncountersService interface {
	List(ctx context.Context, req *models.ListEncountersRequest) (*models.EncounterListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
