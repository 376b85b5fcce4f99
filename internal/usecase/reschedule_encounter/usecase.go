package reschedule_encounter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	encounterStorage "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/encounter"
	resourceStorage "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/notifyservice"
)

const sideEffectTimeout = 5 * time.Second

// UseCase use case переноса приёма на новый интервал
type UseCase struct {
	encounterRepo EncounterRepository
	resourceRepo  ResourceRepository
	notifyClient  NotifyServiceClient
	calendarCache CalendarInvalidator
	txManager     TransactionManager
	timeProvider  TimeProvider
	cfg           Config
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	encounterRepo EncounterRepository,
	resourceRepo ResourceRepository,
	notifyClient NotifyServiceClient,
	calendarCache CalendarInvalidator,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		encounterRepo: encounterRepo,
		resourceRepo:  resourceRepo,
		notifyClient:  notifyClient,
		calendarCache: calendarCache,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		cfg:           cfg,
		logger:        logger,
	}
}

// Execute выполняет use case переноса приёма.
// Приём и все его бронирования ресурсов переносятся на новый интервал
// в одной сериализуемой транзакции: либо всё, либо ничего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleEncounter: encounter=%d, newInterval=%s..%s",
		req.EncounterID, req.NewInterval.Start.Format(time.RFC3339), req.NewInterval.End.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleEncounter: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.NewInterval, now, uc.cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("RescheduleEncounter: date validation failed: %v", err)
		return nil, err
	}
	if err := validateNotice(req.NewInterval, now, uc.cfg.MinNoticeMinutes); err != nil {
		uc.logger.Warn("RescheduleEncounter: notice validation failed: %v", err)
		return nil, err
	}

	var (
		result   *domain.Encounter
		bookings []*domain.ResourceBooking
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Загружаем приём с блокировкой строки
		enc, err := uc.encounterRepo.GetByID(txCtx, req.EncounterID)
		if err != nil {
			if errors.Is(err, encounterStorage.ErrEncounterNotFound) {
				return ErrEncounterNotFound
			}
			uc.logger.Error("RescheduleEncounter: failed to get encounter id=%d: %v", req.EncounterID, err)
			return fmt.Errorf("%w: failed to get encounter: %v", ErrInternal, err)
		}

		// 3. Переносить можно только scheduled
		if !enc.CanBeRescheduled() {
			uc.logger.Warn("RescheduleEncounter: encounter id=%d in status %s cannot be rescheduled",
				enc.ID, enc.Status)
			return fmt.Errorf("%w: status is %s", ErrInvalidTransition, enc.Status)
		}

		// 4. Конфликт по врачу: собственный приём исключаем из проверки,
		// иначе перенос внутри своего же интервала всегда конфликтовал бы
		probe := req.NewInterval.Expand(time.Duration(uc.cfg.ConflictBufferMinutes) * time.Minute)
		overlapping, err := uc.encounterRepo.FindOverlapping(txCtx, enc.ProfessionalID, probe, &enc.ID)
		if err != nil {
			uc.logger.Error("RescheduleEncounter: failed to find overlapping encounters: %v", err)
			return fmt.Errorf("%w: failed to find overlapping encounters: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("RescheduleEncounter: professional id=%d busy, conflicting encounter id=%d",
				enc.ProfessionalID, overlapping[0].ID)
			return fmt.Errorf("%w: professional id=%d is busy at %s",
				ErrConflict, enc.ProfessionalID, overlapping[0].ScheduledStart.Format(time.RFC3339))
		}

		// 5. Конфликты по ресурсам приёма в новом интервале
		currentBookings, err := uc.resourceRepo.ListBookingsByEncounter(txCtx, enc.ID)
		if err != nil {
			uc.logger.Error("RescheduleEncounter: failed to list bookings for encounter id=%d: %v", enc.ID, err)
			return fmt.Errorf("%w: failed to list resource bookings: %v", ErrInternal, err)
		}

		resourceIDs := make([]int64, 0, len(currentBookings))
		for _, b := range currentBookings {
			if b.IsConfirmed() {
				resourceIDs = append(resourceIDs, b.ResourceID)
			}
		}

		if len(resourceIDs) > 0 {
			resourceOverlaps, err := uc.resourceRepo.FindConfirmedOverlaps(txCtx, resourceIDs, req.NewInterval, &enc.ID)
			if err != nil {
				uc.logger.Error("RescheduleEncounter: failed to find overlapping bookings: %v", err)
				return fmt.Errorf("%w: failed to find overlapping bookings: %v", ErrInternal, err)
			}
			if len(resourceOverlaps) > 0 {
				first := resourceOverlaps[0]
				uc.logger.Warn("RescheduleEncounter: resource id=%d busy, conflicting booking id=%d",
					first.ResourceID, first.ID)
				return fmt.Errorf("%w: resource id=%d is booked at %s",
					ErrConflict, first.ResourceID, first.StartTime.Format(time.RFC3339))
			}
		}

		// 6. Атомарно двигаем приём и все его бронирования
		if err := uc.encounterRepo.UpdateInterval(txCtx, enc.ID, req.NewInterval); err != nil {
			uc.logger.Error("RescheduleEncounter: failed to update encounter interval id=%d: %v", enc.ID, err)
			return fmt.Errorf("%w: failed to update encounter interval: %v", ErrInternal, err)
		}
		if err := uc.resourceRepo.UpdateBookingIntervalsByEncounter(txCtx, enc.ID, req.NewInterval); err != nil {
			// Конкурентная транзакция успела занять ресурс в новом интервале:
			// exclusion constraint БД сработал, это конфликт, а не сбой
			if errors.Is(err, resourceStorage.ErrOverlapConstraint) {
				uc.logger.Warn("RescheduleEncounter: resources of encounter id=%d already booked at new interval", enc.ID)
				return fmt.Errorf("%w: a resource is booked at %s",
					ErrConflict, req.NewInterval.Start.Format(time.RFC3339))
			}
			uc.logger.Error("RescheduleEncounter: failed to update booking intervals for encounter id=%d: %v", enc.ID, err)
			return fmt.Errorf("%w: failed to update booking intervals: %v", ErrInternal, err)
		}

		enc.ScheduledStart = req.NewInterval.Start
		enc.ScheduledEnd = req.NewInterval.End
		for _, b := range currentBookings {
			if b.IsConfirmed() {
				b.StartTime = req.NewInterval.Start
				b.EndTime = req.NewInterval.End
			}
		}

		result = enc
		bookings = currentBookings
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleEncounter: successfully moved encounter id=%d", result.ID)

	uc.fireSideEffects(result.ID, result.ProfessionalID)

	return buildResponse(result, bookings), nil
}

// fireSideEffects запускает уведомление и инвалидацию кеша календаря
// в фоне. Ошибки только логируются.
func (uc *UseCase) fireSideEffects(encounterID, professionalID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()

		if uc.notifyClient != nil {
			if err := uc.notifyClient.NotifyBookingChange(ctx, encounterID, notifyservice.ChangeRescheduled); err != nil {
				uc.logger.Warn("RescheduleEncounter: notification failed for encounter id=%d: %v", encounterID, err)
			}
		}
		if uc.calendarCache != nil {
			if err := uc.calendarCache.Invalidate(ctx, professionalID); err != nil {
				uc.logger.Warn("RescheduleEncounter: calendar cache invalidation failed for professional id=%d: %v", professionalID, err)
			}
		}
	}()
}

func buildResponse(enc *domain.Encounter, bookings []*domain.ResourceBooking) *Response {
	resources := make([]BookedResource, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsConfirmed() {
			continue
		}
		resources = append(resources, BookedResource{
			BookingID:  b.ID,
			ResourceID: b.ResourceID,
			Status:     string(b.Status),
		})
	}

	return &Response{
		ID:             enc.ID,
		PatientID:      enc.PatientID,
		ProfessionalID: enc.ProfessionalID,
		ScheduledStart: enc.ScheduledStart,
		ScheduledEnd:   enc.ScheduledEnd,
		Status:         string(enc.Status),
		Resources:      resources,
		UpdatedAt:      enc.UpdatedAt,
	}
}
