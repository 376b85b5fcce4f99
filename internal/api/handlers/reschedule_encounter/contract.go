package reschedule_encounter

import (
	"context"

	rescheduleEncounter "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/reschedule_encounter"
)

type RescheduleEncounterUseCase interface {
	Execute(ctx context.Context, req *rescheduleEncounter.Request) (*rescheduleEncounter.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
