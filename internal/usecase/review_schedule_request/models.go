package review_schedule_request

import "time"

// Decision решение рецензента по заявке
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Request модель запроса на рассмотрение заявки
type Request struct {
	RequestID  int64    // ID заявки
	ReviewerID int64    // ID рецензента (из контекста авторизации)
	Decision   Decision // approve | reject
	Notes      *string  // Комментарий рецензента (опционально)
}

// DateResult результат применения одной даты в BLOCK_DATES/UNBLOCK_DATES.
// Даты применяются независимо; уже существующая блокировка пропускается
// без ошибки для всей заявки.
type DateResult struct {
	Date    string `json:"date"`
	Applied bool   `json:"applied"`
	Detail  string `json:"detail,omitempty"`
}

// Response модель ответа с рассмотренной заявкой
type Response struct {
	ID             int64
	ProfessionalID int64
	RequestType    string
	Status         string
	ReviewerID     int64
	ReviewNotes    *string
	ReviewedAt     time.Time
	// Поштучные результаты для заявок с набором дат, иначе nil
	DateResults []DateResult
}
