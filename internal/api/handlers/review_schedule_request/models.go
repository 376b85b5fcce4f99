package review_schedule_request

import (
	"time"

	reviewScheduleRequest "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/review_schedule_request"
)

// ReviewRequest HTTP request model
type ReviewRequest struct {
	Action      string  `json:"action"` // approve | reject
	ReviewNotes *string `json:"reviewNotes,omitempty"`
}

// DateResult поштучный результат применения даты
type DateResult struct {
	Date    string `json:"date"`
	Applied bool   `json:"applied"`
	Detail  string `json:"detail,omitempty"`
}

// ReviewResponse HTTP response model
type ReviewResponse struct {
	ID             int64        `json:"id"`
	ProfessionalID int64        `json:"professionalId"`
	RequestType    string       `json:"requestType"`
	Status         string       `json:"status"`
	ReviewerID     int64        `json:"reviewerId"`
	ReviewNotes    *string      `json:"reviewNotes,omitempty"`
	ReviewedAt     string       `json:"reviewedAt"` // ISO 8601
	DateResults    []DateResult `json:"dateResults,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reviewScheduleRequest.Response) *ReviewResponse {
	out := &ReviewResponse{
		ID:             resp.ID,
		ProfessionalID: resp.ProfessionalID,
		RequestType:    resp.RequestType,
		Status:         resp.Status,
		ReviewerID:     resp.ReviewerID,
		ReviewNotes:    resp.ReviewNotes,
		ReviewedAt:     resp.ReviewedAt.Format(time.RFC3339),
	}
	for _, dr := range resp.DateResults {
		out.DateResults = append(out.DateResults, DateResult{
			Date:    dr.Date,
			Applied: dr.Applied,
			Detail:  dr.Detail,
		})
	}
	return out
}
