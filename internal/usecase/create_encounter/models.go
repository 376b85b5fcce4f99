package create_encounter

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Request модель запроса на создание приёма
type Request struct {
	PatientID      int64            // ID пациента
	ProfessionalID int64            // ID врача
	Interval       domain.TimeRange // Интервал приёма [start, end)
	ResourceIDs    []int64          // Ресурсы (кабинет, оборудование); может быть пустым
	Notes          *string          // Дополнительные заметки (опционально)
}

// BookedResource бронирование ресурса в ответе
type BookedResource struct {
	BookingID  int64
	ResourceID int64
	Status     string
}

// Response модель ответа с созданным приёмом
type Response struct {
	ID             int64
	PatientID      int64
	ProfessionalID int64
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Status         string
	Resources      []BookedResource
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Config бизнес-настройки создания приёма
type Config struct {
	// Минимальное время до начала приёма при бронировании на сегодня (минуты, 0 = без ограничений)
	MinNoticeMinutes int
	// На сколько дней вперёд можно бронировать (0 = без ограничений)
	AdvanceBookingDays int
	// Буфер проверки конфликтов по врачу в обе стороны (минуты, 0 = чистое пересечение)
	ConflictBufferMinutes int
}
