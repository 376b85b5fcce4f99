package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/get_available_slots"
)

// Slot доступный слот в HTTP ответе
type Slot struct {
	StartTime       string `json:"startTime"` // "09:00"
	EndTime         string `json:"endTime"`   // "09:30"
	DurationMinutes int    `json:"durationMinutes"`
	ServiceType     string `json:"serviceType"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	ProfessionalID int64  `json:"professionalId"`
	Date           string `json:"date"` // "2026-03-15"
	Slots          []Slot `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	out := &SlotsResponse{
		ProfessionalID: resp.ProfessionalID,
		Date:           resp.Date,
		Slots:          make([]Slot, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, Slot{
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			DurationMinutes: s.DurationMinutes,
			ServiceType:     string(s.ServiceType),
		})
	}
	return out
}
