package cancel_encounter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	encounterStorage "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/encounter"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/notifyservice"
)

const sideEffectTimeout = 5 * time.Second

// UseCase use case отмены приёма с освобождением ресурсов
type UseCase struct {
	encounterRepo EncounterRepository
	resourceRepo  ResourceRepository
	notifyClient  NotifyServiceClient
	calendarCache CalendarInvalidator
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	encounterRepo EncounterRepository,
	resourceRepo ResourceRepository,
	notifyClient NotifyServiceClient,
	calendarCache CalendarInvalidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		encounterRepo: encounterRepo,
		resourceRepo:  resourceRepo,
		notifyClient:  notifyClient,
		calendarCache: calendarCache,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute выполняет use case отмены приёма.
// Отмена приёма и освобождение всех его бронирований ресурсов
// происходят в одной транзакции: после коммита слот и ресурсы
// сразу доступны для новых бронирований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelEncounter: encounter=%d", req.EncounterID)

	if req.EncounterID <= 0 {
		return nil, fmt.Errorf("%w: encounterID must be positive", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	var result *domain.Encounter

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Загружаем приём с блокировкой строки
		enc, err := uc.encounterRepo.GetByID(txCtx, req.EncounterID)
		if err != nil {
			if errors.Is(err, encounterStorage.ErrEncounterNotFound) {
				return ErrEncounterNotFound
			}
			uc.logger.Error("CancelEncounter: failed to get encounter id=%d: %v", req.EncounterID, err)
			return fmt.Errorf("%w: failed to get encounter: %v", ErrInternal, err)
		}

		// 2. Отменять можно только scheduled
		if !enc.CanBeCancelled() {
			uc.logger.Warn("CancelEncounter: encounter id=%d in status %s cannot be cancelled",
				enc.ID, enc.Status)
			return fmt.Errorf("%w: status is %s", ErrInvalidTransition, enc.Status)
		}

		// 3. Отменяем приём и освобождаем все его ресурсы
		if err := uc.encounterRepo.Cancel(txCtx, enc.ID, req.Reason); err != nil {
			uc.logger.Error("CancelEncounter: failed to cancel encounter id=%d: %v", enc.ID, err)
			return fmt.Errorf("%w: failed to cancel encounter: %v", ErrInternal, err)
		}
		if err := uc.resourceRepo.CancelBookingsByEncounter(txCtx, enc.ID); err != nil {
			uc.logger.Error("CancelEncounter: failed to cancel bookings for encounter id=%d: %v", enc.ID, err)
			return fmt.Errorf("%w: failed to cancel resource bookings: %v", ErrInternal, err)
		}

		now := time.Now()
		enc.Status = domain.EncounterCancelled
		enc.CancellationReason = req.Reason
		enc.CancelledAt = &now

		result = enc
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelEncounter: successfully cancelled encounter id=%d", result.ID)

	uc.fireSideEffects(result.ID, result.ProfessionalID)

	return &Response{
		ID:                 result.ID,
		PatientID:          result.PatientID,
		ProfessionalID:     result.ProfessionalID,
		ScheduledStart:     result.ScheduledStart,
		ScheduledEnd:       result.ScheduledEnd,
		Status:             string(result.Status),
		CancellationReason: result.CancellationReason,
		CancelledAt:        result.CancelledAt,
	}, nil
}

// fireSideEffects запускает уведомление и инвалидацию кеша календаря
// в фоне. Ошибки только логируются.
func (uc *UseCase) fireSideEffects(encounterID, professionalID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()

		if uc.notifyClient != nil {
			if err := uc.notifyClient.NotifyBookingChange(ctx, encounterID, notifyservice.ChangeCancelled); err != nil {
				uc.logger.Warn("CancelEncounter: notification failed for encounter id=%d: %v", encounterID, err)
			}
		}
		if uc.calendarCache != nil {
			if err := uc.calendarCache.Invalidate(ctx, professionalID); err != nil {
				uc.logger.Warn("CancelEncounter: calendar cache invalidation failed for professional id=%d: %v", professionalID, err)
			}
		}
	}()
}
