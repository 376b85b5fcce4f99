package schedulerequests

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// ScheduleRequestRepository интерфейс репозитория заявок
type ScheduleRequestRepository interface {
	Create(ctx context.Context, req *domain.ScheduleChangeRequest) (*domain.ScheduleChangeRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduleChangeRequest, error)
	ListByProfessional(ctx context.Context, professionalID int64, status *domain.ScheduleRequestStatus) ([]*domain.ScheduleChangeRequest, error)
}

// StaffServiceClient интерфейс клиента сервиса персонала
type StaffServiceClient interface {
	ProfessionalExists(ctx context.Context, professionalID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
