package get_available_slots

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// UseCase use case вычисления доступных слотов врача на дату
type UseCase struct {
	availabilityRepo AvailabilityRepository
	encounterRepo    EncounterRepository
	staffClient      StaffServiceClient
	timeProvider     TimeProvider
	cfg              Config
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	encounterRepo EncounterRepository,
	staffClient StaffServiceClient,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		encounterRepo:    encounterRepo,
		staffClient:      staffClient,
		timeProvider:     &RealTimeProvider{},
		cfg:              cfg,
		logger:           logger,
	}
}

// Execute вычисляет слоты: регулярные окна дня недели за вычетом
// блокировок даты и активных приёмов, нарезанные шагом длительности.
// Результат отсортирован по времени начала; слот, начинающийся ровно в
// момент окончания приёма, доступен.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%d, date=%s, duration=%d",
		req.ProfessionalID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	duration, err := uc.validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование врача
	exists, err := uc.staffClient.ProfessionalExists(ctx, req.ProfessionalID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to check professional: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("GetAvailableSlots: professional id=%d not found", req.ProfessionalID)
		return nil, ErrProfessionalNotFound
	}

	day := domain.DateOnly(req.Date)

	// 3. Регулярные окна на этот день недели
	windows, err := uc.availabilityRepo.ListWindowsForDay(ctx, req.ProfessionalID, int(day.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list windows: %v", err)
		return nil, fmt.Errorf("%w: failed to list availability windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		return emptyResponse(req.ProfessionalID, day), nil
	}

	// 4. Блокировки даты; блокировка на весь день отменяет все окна
	blocks, err := uc.availabilityRepo.ListBlocksForDate(ctx, req.ProfessionalID, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list date blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to list date blocks: %v", ErrInternal, err)
	}
	for _, b := range blocks {
		if b.IsFullDay() {
			uc.logger.Info("GetAvailableSlots: professional id=%d has full-day block (%s) on %s",
				req.ProfessionalID, b.BlockType, day.Format(domain.DateFormat))
			return emptyResponse(req.ProfessionalID, day), nil
		}
	}

	// 5. Активные приёмы за день (отменённые слот не занимают)
	encounters, err := uc.encounterRepo.ListByProfessionalAndRange(
		ctx, req.ProfessionalID, day, day.AddDate(0, 0, 1), false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list encounters: %v", err)
		return nil, fmt.Errorf("%w: failed to list encounters: %v", ErrInternal, err)
	}

	// 6. Порог для запросов на сегодня: прошедшие и слишком близкие
	// слоты отфильтровываются
	var minStart *time.Time
	now := uc.timeProvider.Now()
	if domain.IsSameDay(day, now) {
		t := now.Add(time.Duration(uc.cfg.MinNoticeMinutes) * time.Minute)
		minStart = &t
	}

	slots := uc.generate(windows, blocks, encounters, day, duration, minStart)

	uc.logger.Info("GetAvailableSlots: professional=%d, date=%s: %d slots",
		req.ProfessionalID, day.Format(domain.DateFormat), len(slots))

	return &Response{
		ProfessionalID: req.ProfessionalID,
		Date:           day.Format(domain.DateFormat),
		Slots:          slots,
	}, nil
}

func (uc *UseCase) validateRequest(req *Request) (int, error) {
	if req.ProfessionalID <= 0 {
		return 0, fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return 0, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if domain.IsDateInPast(req.Date, uc.timeProvider.Now()) {
		return 0, ErrInvalidDate
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.cfg.DefaultSlotDurationMinutes
	}
	if duration == 0 {
		duration = domain.DefaultSlotDurationMinutes
	}
	if duration < domain.MinSlotDurationMinutes || duration > domain.MaxSlotDurationMinutes {
		return 0, fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	return duration, nil
}

// generate нарезает окна шагом duration и отбрасывает кандидатов,
// пересекающих блокировки или активные приёмы. Слоты из
// пересекающихся окон дедуплицируются по времени начала.
func (uc *UseCase) generate(
	windows []*domain.AvailabilityWindow,
	blocks []*domain.DateBlock,
	encounters []*domain.Encounter,
	day time.Time,
	duration int,
	minStart *time.Time,
) []domain.Slot {
	seen := make(map[string]struct{})
	slots := make([]domain.Slot, 0)

	for _, w := range windows {
		if !w.IsValid() {
			uc.logger.Warn("GetAvailableSlots: skipping malformed window id=%d", w.ID)
			continue
		}

		cursor := w.StartTime
		for {
			end, err := cursor.AddMinutes(duration)
			if err != nil || end.IsAfter(w.EndTime) {
				break
			}

			candidate := domain.Slot{
				StartTime:       cursor,
				EndTime:         end,
				DurationMinutes: duration,
				ServiceType:     w.ServiceType,
			}

			if uc.slotIsFree(candidate, blocks, encounters, day, minStart) {
				if _, dup := seen[cursor.String()]; !dup {
					seen[cursor.String()] = struct{}{}
					slots = append(slots, candidate)
				}
			}

			cursor = end
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots
}

func (uc *UseCase) slotIsFree(
	slot domain.Slot,
	blocks []*domain.DateBlock,
	encounters []*domain.Encounter,
	day time.Time,
	minStart *time.Time,
) bool {
	interval, err := slot.IntervalOn(day)
	if err != nil {
		return false
	}

	if minStart != nil && interval.Start.Before(*minStart) {
		return false
	}

	for _, b := range blocks {
		if b.BlocksInterval(interval) {
			return false
		}
	}

	for _, enc := range encounters {
		if enc.IsActive() && enc.Interval().Overlaps(interval) {
			return false
		}
	}

	return true
}

func emptyResponse(professionalID int64, day time.Time) *Response {
	return &Response{
		ProfessionalID: professionalID,
		Date:           day.Format(domain.DateFormat),
		Slots:          []domain.Slot{},
	}
}
