package conflicts

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// EncounterRepository интерфейс репозитория приёмов
type EncounterRepository interface {
	FindOverlapping(ctx context.Context, professionalID int64, rng domain.TimeRange, excludeID *int64) ([]*domain.Encounter, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	FindConfirmedOverlaps(ctx context.Context, resourceIDs []int64, rng domain.TimeRange, excludeEncounterID *int64) ([]*domain.ResourceBooking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
