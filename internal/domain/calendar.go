package domain

import "time"

// CalendarEventType classifies entries in the calendar read model
type CalendarEventType string

const (
	EventEncounter CalendarEventType = "encounter"
	EventBlocked   CalendarEventType = "blocked"
)

// CalendarEvent is one entry of the read-optimized calendar projection.
// It is derived from encounters and date blocks and is not authoritative.
type CalendarEvent struct {
	Type           CalendarEventType
	ProfessionalID int64
	Start          time.Time
	End            time.Time

	// Set for encounter events
	EncounterID     *int64
	PatientID       *int64
	EncounterStatus *EncounterStatus

	// Set for blocked events
	BlockType *BlockType
	FullDay   bool
}
