package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	ProfessionalID  int64     // ID врача
	Date            time.Time // Дата (время игнорируется)
	DurationMinutes int       // Длительность слота; 0 = значение из конфига
}

// Response модель ответа со списком доступных слотов,
// отсортированных по времени начала
type Response struct {
	ProfessionalID int64
	Date           string // YYYY-MM-DD
	Slots          []domain.Slot
}

// Config бизнес-настройки генерации слотов
type Config struct {
	// Длительность слота по умолчанию (минуты)
	DefaultSlotDurationMinutes int
	// Минимальное время до начала слота при запросе на сегодня (минуты)
	MinNoticeMinutes int
}
