package cancel_encounter

import "time"

// Request модель запроса на отмену приёма
type Request struct {
	EncounterID int64   // ID приёма
	Reason      *string // Причина отмены (опционально)
}

// Response модель ответа с отменённым приёмом
type Response struct {
	ID                 int64
	PatientID          int64
	ProfessionalID     int64
	ScheduledStart     time.Time
	ScheduledEnd       time.Time
	Status             string
	CancellationReason *string
	CancelledAt        *time.Time
}
