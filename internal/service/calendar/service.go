package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar/models"
)

// MaxRangeDays максимальная ширина запрашиваемого периода
const MaxRangeDays = 93

// Service read-only проекция календаря врача: активные приёмы и
// блокировки дат за период, одним отсортированным списком.
// Проекция не авторитетна и не используется для проверки конфликтов.
type Service struct {
	encounterRepo    EncounterRepository
	availabilityRepo AvailabilityRepository
	cache            EventCache
	logger           Logger
}

// NewService создает новый экземпляр сервиса календаря.
// cache может быть nil, тогда каждая выборка идёт в БД.
func NewService(
	encounterRepo EncounterRepository,
	availabilityRepo AvailabilityRepository,
	cache EventCache,
	logger Logger,
) *Service {
	return &Service{
		encounterRepo:    encounterRepo,
		availabilityRepo: availabilityRepo,
		cache:            cache,
		logger:           logger,
	}
}

// GetEvents возвращает события календаря врача за период [from, to).
// Ошибки кеша не ломают запрос: проекция строится из БД заново.
func (s *Service) GetEvents(ctx context.Context, req *models.GetCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("GetEvents: professional=%d, period=%s to %s",
		req.ProfessionalID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		s.logger.Warn("GetEvents: validation failed: %v", err)
		return nil, err
	}

	from := domain.DateOnly(req.From)
	to := domain.DateOnly(req.To)

	if s.cache != nil {
		events, err := s.cache.Get(ctx, req.ProfessionalID, from, to)
		if err == nil {
			s.logger.Info("GetEvents: cache hit for professional=%d (%d events)", req.ProfessionalID, len(events))
			return models.FromDomainEvents(req.ProfessionalID, from, to, events), nil
		}
	}

	events, err := s.build(ctx, req.ProfessionalID, from, to)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, req.ProfessionalID, from, to, events); err != nil {
			s.logger.Warn("GetEvents: failed to cache events for professional=%d: %v", req.ProfessionalID, err)
		}
	}

	s.logger.Info("GetEvents: built %d events for professional=%d", len(events), req.ProfessionalID)
	return models.FromDomainEvents(req.ProfessionalID, from, to, events), nil
}

func validateRequest(req *models.GetCalendarRequest) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalId must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}
	if req.To.Sub(req.From) > MaxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: at most %d days per request", ErrRangeTooWide, MaxRangeDays)
	}
	return nil
}

// build собирает проекцию из приёмов и блокировок дат
func (s *Service) build(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.CalendarEvent, error) {
	encounters, err := s.encounterRepo.ListByProfessionalAndRange(ctx, professionalID, from, to, false)
	if err != nil {
		s.logger.Error("GetEvents: failed to list encounters for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: failed to list encounters: %v", ErrInternal, err)
	}

	blocks, err := s.availabilityRepo.ListBlocksInRange(ctx, professionalID, from, to)
	if err != nil {
		s.logger.Error("GetEvents: failed to list blocks for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: failed to list date blocks: %v", ErrInternal, err)
	}

	events := make([]*domain.CalendarEvent, 0, len(encounters)+len(blocks))

	for _, enc := range encounters {
		encounterID := enc.ID
		patientID := enc.PatientID
		status := enc.Status
		events = append(events, &domain.CalendarEvent{
			Type:            domain.EventEncounter,
			ProfessionalID:  professionalID,
			Start:           enc.ScheduledStart,
			End:             enc.ScheduledEnd,
			EncounterID:     &encounterID,
			PatientID:       &patientID,
			EncounterStatus: &status,
		})
	}

	for _, b := range blocks {
		ev, err := blockToEvent(b)
		if err != nil {
			s.logger.Warn("GetEvents: skipping malformed block id=%d: %v", b.ID, err)
			continue
		}
		events = append(events, ev)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	return events, nil
}

func blockToEvent(b *domain.DateBlock) (*domain.CalendarEvent, error) {
	blockType := b.BlockType
	ev := &domain.CalendarEvent{
		Type:           domain.EventBlocked,
		ProfessionalID: b.ProfessionalID,
		BlockType:      &blockType,
	}

	if b.IsFullDay() {
		ev.Start = domain.DateOnly(b.Date)
		ev.End = ev.Start.AddDate(0, 0, 1)
		ev.FullDay = true
		return ev, nil
	}

	start, err := b.StartTime.OnDate(b.Date)
	if err != nil {
		return nil, err
	}
	end, err := b.EndTime.OnDate(b.Date)
	if err != nil {
		return nil, err
	}

	ev.Start = start
	ev.End = end
	return ev, nil
}
