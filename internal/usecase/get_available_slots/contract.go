package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// AvailabilityRepository интерфейс репозитория расписания
type AvailabilityRepository interface {
	ListWindowsForDay(ctx context.Context, professionalID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
	ListBlocksForDate(ctx context.Context, professionalID int64, date time.Time) ([]*domain.DateBlock, error)
}

// EncounterRepository интерфейс репозитория приёмов
type EncounterRepository interface {
	ListByProfessionalAndRange(ctx context.Context, professionalID int64, from, to time.Time, includeCancelled bool) ([]*domain.Encounter, error)
}

// StaffServiceClient интерфейс клиента сервиса персонала
type StaffServiceClient interface {
	ProfessionalExists(ctx context.Context, professionalID int64) (bool, error)
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
