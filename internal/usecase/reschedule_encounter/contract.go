package reschedule_encounter

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/notifyservice"
)

// EncounterRepository интерфейс репозитория приёмов
type EncounterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Encounter, error)
	FindOverlapping(ctx context.Context, professionalID int64, rng domain.TimeRange, excludeID *int64) ([]*domain.Encounter, error)
	UpdateInterval(ctx context.Context, id int64, rng domain.TimeRange) error
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	ListBookingsByEncounter(ctx context.Context, encounterID int64) ([]*domain.ResourceBooking, error)
	FindConfirmedOverlaps(ctx context.Context, resourceIDs []int64, rng domain.TimeRange, excludeEncounterID *int64) ([]*domain.ResourceBooking, error)
	UpdateBookingIntervalsByEncounter(ctx context.Context, encounterID int64, rng domain.TimeRange) error
}

// NotifyServiceClient интерфейс клиента сервиса уведомлений
type NotifyServiceClient interface {
	NotifyBookingChange(ctx context.Context, encounterID int64, kind notifyservice.ChangeKind) error
}

// CalendarInvalidator интерфейс инвалидации кеша календаря
type CalendarInvalidator interface {
	Invalidate(ctx context.Context, professionalID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
