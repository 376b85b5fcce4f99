package review_schedule_request

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// ScheduleRequestRepository интерфейс репозитория заявок на изменение расписания
type ScheduleRequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduleChangeRequest, error)
	Review(ctx context.Context, id int64, status domain.ScheduleRequestStatus, reviewerID int64, notes *string) error
}

// AvailabilityRepository интерфейс репозитория расписания
type AvailabilityRepository interface {
	CreateWindow(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, professionalID int64, dayOfWeek int, start, end types.TimeString) error
	UpdateWindowTimes(ctx context.Context, professionalID int64, dayOfWeek int, oldStart, oldEnd, newStart, newEnd types.TimeString) error
	UpdateWindowServiceType(ctx context.Context, professionalID int64, dayOfWeek int, start, end types.TimeString, serviceType domain.ServiceType) error
	CreateBlock(ctx context.Context, b *domain.DateBlock) (bool, error)
	DeleteBlocksForDate(ctx context.Context, professionalID int64, date time.Time) (int64, error)
}

// CalendarInvalidator интерфейс инвалидации кеша календаря
type CalendarInvalidator interface {
	Invalidate(ctx context.Context, professionalID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
