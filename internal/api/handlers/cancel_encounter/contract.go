package cancel_encounter

import (
	"context"

	cancelEncounter "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/cancel_encounter"
)

type CancelEncounterUseCase interface {
	Execute(ctx context.Context, req *cancelEncounter.Request) (*cancelEncounter.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
