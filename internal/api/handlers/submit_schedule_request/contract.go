package submit_schedule_request

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/schedulerequests/models"
)

type ScheduleRequestsService interface {
	Submit(ctx context.Context, req *models.SubmitRequest) (*models.ScheduleRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
