package list_schedule_requests

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/schedulerequests/models"
)

type ScheduleRequestsService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.ScheduleRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
