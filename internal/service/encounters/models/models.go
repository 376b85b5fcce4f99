package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса приёма
type UpdateStatusRequest struct {
	EncounterID int64  `json:"encounterId"`
	Status      string `json:"status"` // in_progress | completed | no_show
}

// ListEncountersRequest запрос списка приёмов врача за период
type ListEncountersRequest struct {
	ProfessionalID   int64     `json:"professionalId"`
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	IncludeCancelled bool      `json:"includeCancelled,omitempty"`
}

// Response модели

// BookedResource бронирование ресурса в составе приёма
type BookedResource struct {
	BookingID  int64  `json:"bookingId"`
	ResourceID int64  `json:"resourceId"`
	Status     string `json:"status"`
}

// EncounterResponse ответ с данными приёма
type EncounterResponse struct {
	ID             int64  `json:"id"`
	PatientID      int64  `json:"patientId"`
	ProfessionalID int64  `json:"professionalId"`
	ScheduledStart string `json:"scheduledStart"` // ISO 8601
	ScheduledEnd   string `json:"scheduledEnd"`   // ISO 8601
	Status         string `json:"status"`

	Resources []BookedResource `json:"resources,omitempty"`
	Notes     *string          `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EncounterListResponse ответ со списком приёмов
type EncounterListResponse struct {
	Encounters []EncounterResponse `json:"encounters"`
	Total      int                 `json:"total"`
}

// FromDomainEncounter конвертирует domain модель в response
func FromDomainEncounter(enc *domain.Encounter, bookings []*domain.ResourceBooking) *EncounterResponse {
	resp := &EncounterResponse{
		ID:             enc.ID,
		PatientID:      enc.PatientID,
		ProfessionalID: enc.ProfessionalID,
		ScheduledStart: enc.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:   enc.ScheduledEnd.Format(time.RFC3339),
		Status:         string(enc.Status),
		Notes:          enc.Notes,
		CreatedAt:      enc.CreatedAt,
		UpdatedAt:      enc.UpdatedAt,
	}

	resp.CancellationReason = enc.CancellationReason
	if enc.CancelledAt != nil {
		cancelledAt := enc.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	for _, b := range bookings {
		resp.Resources = append(resp.Resources, BookedResource{
			BookingID:  b.ID,
			ResourceID: b.ResourceID,
			Status:     string(b.Status),
		})
	}

	return resp
}

// FromDomainEncounterList конвертирует список domain моделей в response
func FromDomainEncounterList(encounters []*domain.Encounter) *EncounterListResponse {
	resp := &EncounterListResponse{
		Encounters: make([]EncounterResponse, 0, len(encounters)),
		Total:      len(encounters),
	}
	for _, enc := range encounters {
		resp.Encounters = append(resp.Encounters, *FromDomainEncounter(enc, nil))
	}
	return resp
}
