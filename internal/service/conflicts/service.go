package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/conflicts/models"
)

// Config настройки проверки конфликтов
type Config struct {
	// Буфер проверки по врачу в обе стороны (минуты, 0 = чистое пересечение)
	ConflictBufferMinutes int
}

// Service read-only сервис проверки конфликтов расписания.
// Используется для предварительной проверки "свободен ли интервал";
// авторитетная проверка выполняется внутри транзакций бронирования.
type Service struct {
	encounterRepo EncounterRepository
	resourceRepo  ResourceRepository
	cfg           Config
	logger        Logger
}

// NewService создает новый экземпляр сервиса проверки конфликтов
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

// Check возвращает все конфликты интервала: активные приёмы врача и
// подтверждённые бронирования ресурсов. Интервал, примыкающий к
// существующему приёму, конфликтом не считается.
func (s *Service) Check(ctx context.Context, req *models.CheckConflictsRequest) (*models.CheckConflictsResponse, error) {
	s.logger.Info("Check: professional=%d, interval=%s..%s, resources=%v",
		req.ProfessionalID,
		req.Interval.Start.Format(time.RFC3339), req.Interval.End.Format(time.RFC3339),
		req.ResourceIDs)

	if req.ProfessionalID <= 0 {
		return nil, fmt.Errorf("%w: professionalId must be positive", ErrInvalidInput)
	}
	if !req.Interval.IsValid() {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	conflicts := make([]models.Conflict, 0)

	probe := req.Interval.Expand(time.Duration(s.cfg.ConflictBufferMinutes) * time.Minute)
	encounters, err := s.encounterRepo.FindOverlapping(ctx, req.ProfessionalID, probe, req.ExcludeEncounterID)
	if err != nil {
		s.logger.Error("Check: failed to find overlapping encounters: %v", err)
		return nil, fmt.Errorf("%w: Check - failed to find overlapping encounters: %v", ErrInternal, err)
	}
	for _, enc := range encounters {
		conflicts = append(conflicts, models.FromDomainEncounterConflict(enc))
	}

	if len(req.ResourceIDs) > 0 {
		bookings, err := s.resourceRepo.FindConfirmedOverlaps(ctx, req.ResourceIDs, req.Interval, req.ExcludeEncounterID)
		if err != nil {
			s.logger.Error("Check: failed to find overlapping bookings: %v", err)
			return nil, fmt.Errorf("%w: Check - failed to find overlapping bookings: %v", ErrInternal, err)
		}
		for _, b := range bookings {
			conflicts = append(conflicts, models.FromDomainBookingConflict(b))
		}
	}

	s.logger.Info("Check: professional=%d, found %d conflicts", req.ProfessionalID, len(conflicts))

	return &models.CheckConflictsResponse{
		HasConflict: len(conflicts) > 0,
		Conflicts:   conflicts,
	}, nil
}
