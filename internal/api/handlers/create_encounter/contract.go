package create_encounter

import (
	"context"

	createEncounter "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/create_encounter"
)

type CreateEncounterUseCase interface {
	Execute(ctx context.Context, req *createEncounter.Request) (*createEncounter.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
