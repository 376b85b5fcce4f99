package review_schedule_request

import (
	"context"

	reviewScheduleRequest "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/review_schedule_request"
)

type ReviewScheduleRequestUseCase interface {
	Execute(ctx context.Context, req *reviewScheduleRequest.Request) (*reviewScheduleRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
