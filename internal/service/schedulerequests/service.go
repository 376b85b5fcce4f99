package schedulerequests

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	requestRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/schedulerequest"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/schedulerequests/models"
)

// Service сервис заявок на изменение расписания
type Service struct {
	requestRepo ScheduleRequestRepository
	staffClient StaffServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	requestRepo ScheduleRequestRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// Submit создает заявку в статусе pending.
// Payload проверяется на соответствие типу заявки до записи: заявка
// с несовпадающим вариантом данных не сохраняется.
func (s *Service) Submit(ctx context.Context, req *models.SubmitRequest) (*models.ScheduleRequestResponse, error) {
	s.logger.Info("Submit: professional=%d, type=%s", req.ProfessionalID, req.RequestType)

	if req.ProfessionalID <= 0 {
		return nil, fmt.Errorf("%w: professionalId must be positive", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	requestType := domain.ScheduleRequestType(req.RequestType)
	if !domain.ValidScheduleRequestType(requestType) {
		s.logger.Warn("Submit: unknown request type %q", req.RequestType)
		return nil, fmt.Errorf("%w: unknown request type %q", ErrInvalidInput, req.RequestType)
	}

	if err := req.Data.Validate(requestType); err != nil {
		s.logger.Warn("Submit: payload validation failed for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	exists, err := s.staffClient.ProfessionalExists(ctx, req.ProfessionalID)
	if err != nil {
		s.logger.Error("Submit: failed to check professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: Submit - failed to check professional: %v", ErrInternal, err)
	}
	if !exists {
		s.logger.Warn("Submit: professional id=%d not found", req.ProfessionalID)
		return nil, ErrProfessionalNotFound
	}

	created, err := s.requestRepo.Create(ctx, &domain.ScheduleChangeRequest{
		ProfessionalID: req.ProfessionalID,
		RequestType:    requestType,
		Data:           req.Data,
		Reason:         req.Reason,
		Status:         domain.RequestPending,
	})
	if err != nil {
		s.logger.Error("Submit: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Submit: created request id=%d for professional=%d", created.ID, created.ProfessionalID)
	return models.FromDomainRequest(created), nil
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ScheduleRequestResponse, error) {
	s.logger.Info("GetByID: fetching request id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	r, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRequest(r), nil
}

// List получает заявки врача, опционально фильтруя по статусу
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ScheduleRequestListResponse, error) {
	s.logger.Info("List: fetching requests for professional=%d, status=%v", req.ProfessionalID, req.Status)

	if req.ProfessionalID <= 0 {
		return nil, fmt.Errorf("%w: professionalId must be positive", ErrInvalidInput)
	}

	var status *domain.ScheduleRequestStatus
	if req.Status != nil {
		st := domain.ScheduleRequestStatus(*req.Status)
		if st != domain.RequestPending && st != domain.RequestApproved && st != domain.RequestRejected {
			s.logger.Warn("List: invalid status=%s for professional=%d", *req.Status, req.ProfessionalID)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		status = &st
	}

	requests, err := s.requestRepo.ListByProfessional(ctx, req.ProfessionalID, status)
	if err != nil {
		s.logger.Error("List: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d requests for professional=%d", len(requests), req.ProfessionalID)
	return models.FromDomainRequestList(requests), nil
}
