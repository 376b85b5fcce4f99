package encounters

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// EncounterRepository интерфейс репозитория приёмов
type EncounterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Encounter, error)
	ListByProfessionalAndRange(ctx context.Context, professionalID int64, from, to time.Time, includeCancelled bool) ([]*domain.Encounter, error)
	UpdateStatusFrom(ctx context.Context, id int64, allowed []domain.EncounterStatus, to domain.EncounterStatus) error
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	ListBookingsByEncounter(ctx context.Context, encounterID int64) ([]*domain.ResourceBooking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
