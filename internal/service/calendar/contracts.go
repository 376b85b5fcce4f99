package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// EncounterRepository интерфейс репозитория приёмов
type EncounterRepository interface {
	ListByProfessionalAndRange(ctx context.Context, professionalID int64, from, to time.Time, includeCancelled bool) ([]*domain.Encounter, error)
}

// AvailabilityRepository интерфейс репозитория расписания
type AvailabilityRepository interface {
	ListBlocksInRange(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.DateBlock, error)
}

// EventCache интерфейс кеша событий календаря
type EventCache interface {
	Get(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.CalendarEvent, error)
	Set(ctx context.Context, professionalID int64, from, to time.Time, events []*domain.CalendarEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
