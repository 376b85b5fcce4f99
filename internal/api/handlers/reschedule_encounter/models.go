package reschedule_encounter

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	rescheduleEncounter "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/reschedule_encounter"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// RescheduleEncounterRequest HTTP request model
type RescheduleEncounterRequest struct {
	Date      string `json:"date"`      // "2026-03-15"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "09:30"
}

// BookedResource бронирование ресурса в HTTP ответе
type BookedResource struct {
	BookingID  int64  `json:"bookingId"`
	ResourceID int64  `json:"resourceId"`
	Status     string `json:"status"`
}

// EncounterResponse HTTP response model
type EncounterResponse struct {
	ID             int64            `json:"id"`
	PatientID      int64            `json:"patientId"`
	ProfessionalID int64            `json:"professionalId"`
	ScheduledStart string           `json:"scheduledStart"` // ISO 8601
	ScheduledEnd   string           `json:"scheduledEnd"`   // ISO 8601
	Status         string           `json:"status"`
	Resources      []BookedResource `json:"resources,omitempty"`
	UpdatedAt      string           `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleEncounterRequest) ToUseCaseRequest(encounterID int64) (*rescheduleEncounter.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	start, err := startTime.OnDate(date)
	if err != nil {
		return nil, err
	}
	end, err := endTime.OnDate(date)
	if err != nil {
		return nil, err
	}

	return &rescheduleEncounter.Request{
		EncounterID: encounterID,
		NewInterval: domain.TimeRange{Start: start, End: end},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleEncounter.Response) *EncounterResponse {
	out := &EncounterResponse{
		ID:             resp.ID,
		PatientID:      resp.PatientID,
		ProfessionalID: resp.ProfessionalID,
		ScheduledStart: resp.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:   resp.ScheduledEnd.Format(time.RFC3339),
		Status:         resp.Status,
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
	for _, res := range resp.Resources {
		out.Resources = append(out.Resources, BookedResource{
			BookingID:  res.BookingID,
			ResourceID: res.ResourceID,
			Status:     res.Status,
		})
	}
	return out
}
