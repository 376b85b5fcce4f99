package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Request модели

// SubmitRequest заявка врача на изменение расписания
type SubmitRequest struct {
	ProfessionalID int64                     `json:"professionalId"`
	RequestType    string                    `json:"requestType"`
	Data           domain.ScheduleChangeData `json:"data"`
	Reason         *string                   `json:"reason,omitempty"`
}

// ListRequest запрос списка заявок врача
type ListRequest struct {
	ProfessionalID int64   `json:"professionalId"`
	Status         *string `json:"status,omitempty"` // pending | approved | rejected
}

// Response модели

// ScheduleRequestResponse ответ с данными заявки
type ScheduleRequestResponse struct {
	ID             int64                     `json:"id"`
	ProfessionalID int64                     `json:"professionalId"`
	RequestType    string                    `json:"requestType"`
	Data           domain.ScheduleChangeData `json:"data"`
	Reason         *string                   `json:"reason,omitempty"`
	Status         string                    `json:"status"`
	ReviewerID     *int64                    `json:"reviewerId,omitempty"`
	ReviewNotes    *string                   `json:"reviewNotes,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
	ReviewedAt     *time.Time                `json:"reviewedAt,omitempty"`
}

// ScheduleRequestListResponse ответ со списком заявок
type ScheduleRequestListResponse struct {
	Requests []ScheduleRequestResponse `json:"requests"`
	Total    int                       `json:"total"`
}

// FromDomainRequest конвертирует domain модель в response
func FromDomainRequest(r *domain.ScheduleChangeRequest) *ScheduleRequestResponse {
	return &ScheduleRequestResponse{
		ID:             r.ID,
		ProfessionalID: r.ProfessionalID,
		RequestType:    string(r.RequestType),
		Data:           r.Data,
		Reason:         r.Reason,
		Status:         string(r.Status),
		ReviewerID:     r.ReviewerID,
		ReviewNotes:    r.ReviewNotes,
		CreatedAt:      r.CreatedAt,
		ReviewedAt:     r.ReviewedAt,
	}
}

// FromDomainRequestList конвертирует список domain моделей в response
func FromDomainRequestList(requests []*domain.ScheduleChangeRequest) *ScheduleRequestListResponse {
	resp := &ScheduleRequestListResponse{
		Requests: make([]ScheduleRequestResponse, 0, len(requests)),
		Total:    len(requests),
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, *FromDomainRequest(r))
	}
	return resp
}
