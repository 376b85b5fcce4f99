package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// GetCalendarRequest запрос событий календаря врача за период
type GetCalendarRequest struct {
	ProfessionalID int64     `json:"professionalId"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
}

// CalendarEvent событие календаря в ответе
type CalendarEvent struct {
	Type  string `json:"type"`  // encounter | blocked
	Start string `json:"start"` // ISO 8601
	End   string `json:"end"`   // ISO 8601

	EncounterID     *int64  `json:"encounterId,omitempty"`
	PatientID       *int64  `json:"patientId,omitempty"`
	EncounterStatus *string `json:"encounterStatus,omitempty"`

	BlockType *string `json:"blockType,omitempty"`
	FullDay   bool    `json:"fullDay,omitempty"`
}

// CalendarResponse ответ с событиями календаря, отсортированными по началу
type CalendarResponse struct {
	ProfessionalID int64           `json:"professionalId"`
	From           string          `json:"from"` // YYYY-MM-DD
	To             string          `json:"to"`   // YYYY-MM-DD
	Events         []CalendarEvent `json:"events"`
}

// FromDomainEvents конвертирует события проекции в response
func FromDomainEvents(professionalID int64, from, to time.Time, events []*domain.CalendarEvent) *CalendarResponse {
	resp := &CalendarResponse{
		ProfessionalID: professionalID,
		From:           from.Format(domain.DateFormat),
		To:             to.Format(domain.DateFormat),
		Events:         make([]CalendarEvent, 0, len(events)),
	}

	for _, e := range events {
		ev := CalendarEvent{
			Type:        string(e.Type),
			Start:       e.Start.Format(time.RFC3339),
			End:         e.End.Format(time.RFC3339),
			EncounterID: e.EncounterID,
			PatientID:   e.PatientID,
			FullDay:     e.FullDay,
		}
		if e.EncounterStatus != nil {
			status := string(*e.EncounterStatus)
			ev.EncounterStatus = &status
		}
		if e.BlockType != nil {
			blockType := string(*e.BlockType)
			ev.BlockType = &blockType
		}
		resp.Events = append(resp.Events, ev)
	}

	return resp
}
