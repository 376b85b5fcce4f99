package cancel_encounter

import (
	"time"

	cancelEncounter "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/cancel_encounter"
)

// CancelEncounterRequest HTTP request model
type CancelEncounterRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// EncounterResponse HTTP response model
type EncounterResponse struct {
	ID                 int64   `json:"id"`
	PatientID          int64   `json:"patientId"`
	ProfessionalID     int64   `json:"professionalId"`
	ScheduledStart     string  `json:"scheduledStart"` // ISO 8601
	ScheduledEnd       string  `json:"scheduledEnd"`   // ISO 8601
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelEncounter.Response) *EncounterResponse {
	out := &EncounterResponse{
		ID:                 resp.ID,
		PatientID:          resp.PatientID,
		ProfessionalID:     resp.ProfessionalID,
		ScheduledStart:     resp.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:       resp.ScheduledEnd.Format(time.RFC3339),
		Status:             resp.Status,
		CancellationReason: resp.CancellationReason,
	}
	if resp.CancelledAt != nil {
		cancelledAt := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledAt
	}
	return out
}
