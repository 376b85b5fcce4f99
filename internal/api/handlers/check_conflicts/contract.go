package check_conflicts

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/conflicts/models"
)

type ConflictsService interface {
	Check(ctx context.Context, req *models.CheckConflictsRequest) (*models.CheckConflictsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
