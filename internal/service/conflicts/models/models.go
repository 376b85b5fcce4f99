package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// CheckConflictsRequest запрос проверки конфликтов для интервала
type CheckConflictsRequest struct {
	ProfessionalID     int64            `json:"professionalId"`
	Interval           domain.TimeRange `json:"-"`
	ResourceIDs        []int64          `json:"resourceIds,omitempty"`
	ExcludeEncounterID *int64           `json:"excludeEncounterId,omitempty"`
}

// Conflict описание одного конфликта
type Conflict struct {
	Kind        string `json:"kind"` // professional | resource
	EncounterID int64  `json:"encounterId"`
	ResourceID  *int64 `json:"resourceId,omitempty"`
	Start       string `json:"start"` // ISO 8601
	End         string `json:"end"`   // ISO 8601
}

// CheckConflictsResponse ответ со списком конфликтов
type CheckConflictsResponse struct {
	HasConflict bool       `json:"hasConflict"`
	Conflicts   []Conflict `json:"conflicts"`
}

// FromDomainEncounterConflict конвертирует конфликтующий приём врача
func FromDomainEncounterConflict(enc *domain.Encounter) Conflict {
	return Conflict{
		Kind:        "professional",
		EncounterID: enc.ID,
		Start:       enc.ScheduledStart.Format(time.RFC3339),
		End:         enc.ScheduledEnd.Format(time.RFC3339),
	}
}

// FromDomainBookingConflict конвертирует конфликтующее бронирование ресурса
func FromDomainBookingConflict(b *domain.ResourceBooking) Conflict {
	resourceID := b.ResourceID
	return Conflict{
		Kind:        "resource",
		EncounterID: b.EncounterID,
		ResourceID:  &resourceID,
		Start:       b.StartTime.Format(time.RFC3339),
		End:         b.EndTime.Format(time.RFC3339),
	}
}
