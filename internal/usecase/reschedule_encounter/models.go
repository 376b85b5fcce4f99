package reschedule_encounter

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Request модель запроса на перенос приёма
type Request struct {
	EncounterID int64            // ID приёма
	NewInterval domain.TimeRange // Новый интервал [start, end)
}

// BookedResource бронирование ресурса в ответе
type BookedResource struct {
	BookingID  int64
	ResourceID int64
	Status     string
}

// Response модель ответа с перенесённым приёмом
type Response struct {
	ID             int64
	PatientID      int64
	ProfessionalID int64
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Status         string
	Resources      []BookedResource
	UpdatedAt      time.Time
}

// Config бизнес-настройки переноса приёма
type Config struct {
	MinNoticeMinutes      int
	AdvanceBookingDays    int
	ConflictBufferMinutes int
}
