package encounters

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	encounterRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/encounter"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/encounters/models"
)

// Config настройки переходов статусов
type Config struct {
	// Разрешить переход in_progress -> no_show (по умолчанию no_show
	// доступен только из scheduled)
	NoShowFromInProgress bool
}

// Service сервис для работы с приёмами
type Service struct {
	encounterRepo EncounterRepository
	resourceRepo  ResourceRepository
	cfg           Config
	logger        Logger
}

// NewService создает новый экземпляр сервиса приёмов
func NewService(
	encounterRepo EncounterRepository,
	resourceRepo ResourceRepository,
	cfg Config,
	logger Logger,
) *Service {
	return &Service{
		encounterRepo: encounterRepo,
		resourceRepo:  resourceRepo,
		cfg:           cfg,
		logger:        logger,
	}
}

// GetByID получает приём по ID вместе с бронированиями ресурсов
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EncounterResponse, error) {
	s.logger.Info("GetByID: fetching encounter id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	enc, err := s.encounterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, encounterRepo.ErrEncounterNotFound) {
			s.logger.Warn("GetByID: encounter id=%d not found", id)
			return nil, ErrEncounterNotFound
		}
		s.logger.Error("GetByID: repository error for encounter id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	bookings, err := s.resourceRepo.ListBookingsByEncounter(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list bookings for encounter id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to list bookings: %v", ErrInternal, err)
	}

	return models.FromDomainEncounter(enc, bookings), nil
}

// List получает приёмы врача за период
func (s *Service) List(ctx context.Context, req *models.ListEncountersRequest) (*models.EncounterListResponse, error) {
	s.logger.Info("List: fetching encounters for professional=%d, period=%s to %s",
		req.ProfessionalID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.ProfessionalID <= 0 {
		return nil, fmt.Errorf("%w: professionalId must be positive", ErrInvalidInput)
	}
	if !req.From.Before(req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	encounters, err := s.encounterRepo.ListByProfessionalAndRange(
		ctx, req.ProfessionalID, req.From, req.To, req.IncludeCancelled)
	if err != nil {
		s.logger.Error("List: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEncounterList(encounters), nil
}

// UpdateStatus переводит приём в новый статус.
// Разрешённые переходы: scheduled -> in_progress, in_progress -> completed,
// scheduled -> no_show (плюс in_progress -> no_show при включённой настройке).
// Переход выполняется условным UPDATE, поэтому конкурентная смена статуса
// не может привести к недопустимой последовательности.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.EncounterResponse, error) {
	s.logger.Info("UpdateStatus: encounter=%d -> %s", req.EncounterID, req.Status)

	if req.EncounterID <= 0 {
		return nil, fmt.Errorf("%w: encounterId must be positive", ErrInvalidInput)
	}

	target := domain.EncounterStatus(req.Status)
	allowed, err := s.allowedSourceStatuses(target)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid target status %q for encounter=%d", req.Status, req.EncounterID)
		return nil, err
	}

	err = s.encounterRepo.UpdateStatusFrom(ctx, req.EncounterID, allowed, target)
	if err != nil {
		switch {
		case errors.Is(err, encounterRepo.ErrEncounterNotFound):
			s.logger.Warn("UpdateStatus: encounter id=%d not found", req.EncounterID)
			return nil, ErrEncounterNotFound
		case errors.Is(err, encounterRepo.ErrStatusNotUpdated):
			// Строка есть, но статус не из разрешённых исходных
			s.logger.Warn("UpdateStatus: encounter id=%d not in allowed source status for %s",
				req.EncounterID, target)
			return nil, fmt.Errorf("%w: cannot transition to %s", ErrInvalidTransition, target)
		default:
			s.logger.Error("UpdateStatus: repository error for encounter id=%d: %v", req.EncounterID, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateStatus: encounter id=%d -> %s", req.EncounterID, target)

	return s.GetByID(ctx, req.EncounterID)
}

// allowedSourceStatuses возвращает исходные статусы, из которых разрешён
// переход в target
func (s *Service) allowedSourceStatuses(target domain.EncounterStatus) ([]domain.EncounterStatus, error) {
	switch target {
	case domain.EncounterInProgress:
		return []domain.EncounterStatus{domain.EncounterScheduled}, nil
	case domain.EncounterCompleted:
		return []domain.EncounterStatus{domain.EncounterInProgress}, nil
	case domain.EncounterNoShow:
		allowed := []domain.EncounterStatus{domain.EncounterScheduled}
		if s.cfg.NoShowFromInProgress {
			allowed = append(allowed, domain.EncounterInProgress)
		}
		return allowed, nil
	default:
		// scheduled и cancelled не устанавливаются через этот метод:
		// scheduled это начальный статус, отмена идёт через cancel usecase
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
}
