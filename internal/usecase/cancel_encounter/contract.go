package cancel_encounter

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/notifyservice"
)

// EncounterRepository интерфейс репозитория приёмов
type EncounterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Encounter, error)
	Cancel(ctx context.Context, id int64, reason *string) error
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	CancelBookingsByEncounter(ctx context.Context, encounterID int64) error
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
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
