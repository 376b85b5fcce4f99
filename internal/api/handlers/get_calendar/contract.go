package get_calendar

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar/models"
)

type CalendarService interface {
	GetEvents(ctx context.Context, req *models.GetCalendarRequest) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
