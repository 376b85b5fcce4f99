package review_schedule_request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	availabilityStorage "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/availability"
	requestStorage "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/schedulerequest"
)

const sideEffectTimeout = 5 * time.Second

// UseCase use case рассмотрения заявки на изменение расписания.
// Approve применяет изменения к расписанию и помечает заявку approved
// в одной транзакции; reject только меняет статус.
type UseCase struct {
	requestRepo      ScheduleRequestRepository
	availabilityRepo AvailabilityRepository
	calendarCache    CalendarInvalidator
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo ScheduleRequestRepository,
	availabilityRepo AvailabilityRepository,
	calendarCache CalendarInvalidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:      requestRepo,
		availabilityRepo: availabilityRepo,
		calendarCache:    calendarCache,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case рассмотрения заявки.
// Из двух конкурентных рассмотрений одной заявки ровно одно применяет
// изменения: заявка читается с блокировкой строки, а финальный переход
// статуса выполняется условным UPDATE по status = pending.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReviewScheduleRequest: request=%d, reviewer=%d, decision=%s",
		req.RequestID, req.ReviewerID, req.Decision)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReviewScheduleRequest: validation failed: %v", err)
		return nil, err
	}

	var (
		result      *domain.ScheduleChangeRequest
		dateResults []DateResult
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Загружаем заявку с блокировкой строки
		scr, err := uc.requestRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestStorage.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			uc.logger.Error("ReviewScheduleRequest: failed to get request id=%d: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}

		// 3. Повторное рассмотрение запрещено
		if !scr.CanBeReviewed() {
			uc.logger.Warn("ReviewScheduleRequest: request id=%d already %s", scr.ID, scr.Status)
			return fmt.Errorf("%w: status is %s", ErrInvalidTransition, scr.Status)
		}

		// 4. Врач не может рассматривать собственную заявку
		if scr.ProfessionalID == req.ReviewerID {
			uc.logger.Warn("ReviewScheduleRequest: reviewer id=%d owns request id=%d", req.ReviewerID, scr.ID)
			return ErrSelfReview
		}

		status := domain.RequestRejected
		if req.Decision == DecisionApprove {
			status = domain.RequestApproved

			// 5. Применяем изменения расписания в той же транзакции,
			// что и смена статуса: заявка не может стать approved
			// без применённых изменений и наоборот
			dateResults, err = uc.apply(txCtx, scr)
			if err != nil {
				return err
			}
		}

		// 6. Условный переход pending -> approved/rejected
		if err := uc.requestRepo.Review(txCtx, scr.ID, status, req.ReviewerID, req.Notes); err != nil {
			if errors.Is(err, requestStorage.ErrAlreadyReviewed) {
				return fmt.Errorf("%w: request was reviewed concurrently", ErrInvalidTransition)
			}
			uc.logger.Error("ReviewScheduleRequest: failed to update request id=%d: %v", scr.ID, err)
			return fmt.Errorf("%w: failed to update request: %v", ErrInternal, err)
		}

		scr.Status = status
		result = scr
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReviewScheduleRequest: request id=%d -> %s by reviewer id=%d",
		result.ID, result.Status, req.ReviewerID)

	// 7. Изменения расписания влияют на календарь врача
	if result.Status == domain.RequestApproved {
		uc.invalidateCalendar(result.ProfessionalID)
	}

	return &Response{
		ID:             result.ID,
		ProfessionalID: result.ProfessionalID,
		RequestType:    string(result.RequestType),
		Status:         string(result.Status),
		ReviewerID:     req.ReviewerID,
		ReviewNotes:    req.Notes,
		ReviewedAt:     time.Now(),
		DateResults:    dateResults,
	}, nil
}

func validateRequest(req *Request) error {
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}
	if req.ReviewerID <= 0 {
		return fmt.Errorf("%w: reviewerID must be positive", ErrInvalidInput)
	}
	if req.Decision != DecisionApprove && req.Decision != DecisionReject {
		return fmt.Errorf("%w: decision must be %q or %q", ErrInvalidInput, DecisionApprove, DecisionReject)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxReviewNotesLength {
		return fmt.Errorf("%w: reviewNotes must not exceed %d characters", ErrInvalidInput, domain.MaxReviewNotesLength)
	}
	return nil
}

// apply применяет payload одобренной заявки к расписанию врача
func (uc *UseCase) apply(ctx context.Context, scr *domain.ScheduleChangeRequest) ([]DateResult, error) {
	// Payload валидировался при создании заявки, но JSONB в БД мог
	// быть изменён вручную, поэтому проверяем ещё раз
	if err := scr.Data.Validate(scr.RequestType); err != nil {
		uc.logger.Error("ReviewScheduleRequest: request id=%d has invalid payload: %v", scr.ID, err)
		return nil, fmt.Errorf("%w: stored payload is invalid: %v", ErrInternal, err)
	}

	switch scr.RequestType {
	case domain.RequestAddHours:
		return nil, uc.applyAddHours(ctx, scr.ProfessionalID, scr.Data.AddHours)
	case domain.RequestRemoveHours:
		return nil, uc.applyRemoveHours(ctx, scr.ProfessionalID, scr.Data.RemoveHours)
	case domain.RequestModifyHours:
		return nil, uc.applyModifyHours(ctx, scr.ProfessionalID, scr.Data.ModifyHours)
	case domain.RequestBlockDates:
		return uc.applyBlockDates(ctx, scr.ProfessionalID, scr.Data.BlockDates)
	case domain.RequestUnblockDates:
		return uc.applyUnblockDates(ctx, scr.ProfessionalID, scr.Data.UnblockDates)
	case domain.RequestChangeServiceType:
		return nil, uc.applyChangeServiceType(ctx, scr.ProfessionalID, scr.Data.ChangeServiceType)
	default:
		return nil, fmt.Errorf("%w: unsupported request type %q", ErrInternal, scr.RequestType)
	}
}

func (uc *UseCase) applyAddHours(ctx context.Context, professionalID int64, p *domain.AddHoursData) error {
	_, err := uc.availabilityRepo.CreateWindow(ctx, &domain.AvailabilityWindow{
		ProfessionalID: professionalID,
		DayOfWeek:      p.DayOfWeek,
		StartTime:      p.StartTime,
		EndTime:        p.EndTime,
		ServiceType:    p.ServiceType,
	})
	if err != nil {
		if errors.Is(err, availabilityStorage.ErrWindowExists) {
			return fmt.Errorf("%w: day=%d %s-%s", ErrWindowExists, p.DayOfWeek, p.StartTime, p.EndTime)
		}
		uc.logger.Error("ReviewScheduleRequest: failed to create window: %v", err)
		return fmt.Errorf("%w: failed to create window: %v", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) applyRemoveHours(ctx context.Context, professionalID int64, p *domain.RemoveHoursData) error {
	err := uc.availabilityRepo.DeleteWindow(ctx, professionalID, p.DayOfWeek, p.StartTime, p.EndTime)
	if err != nil {
		if errors.Is(err, availabilityStorage.ErrWindowNotFound) {
			return fmt.Errorf("%w: day=%d %s-%s", ErrWindowNotFound, p.DayOfWeek, p.StartTime, p.EndTime)
		}
		uc.logger.Error("ReviewScheduleRequest: failed to delete window: %v", err)
		return fmt.Errorf("%w: failed to delete window: %v", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) applyModifyHours(ctx context.Context, professionalID int64, p *domain.ModifyHoursData) error {
	err := uc.availabilityRepo.UpdateWindowTimes(ctx, professionalID, p.DayOfWeek,
		p.OldStartTime, p.OldEndTime, p.NewStartTime, p.NewEndTime)
	if err != nil {
		if errors.Is(err, availabilityStorage.ErrWindowNotFound) {
			return fmt.Errorf("%w: day=%d %s-%s", ErrWindowNotFound, p.DayOfWeek, p.OldStartTime, p.OldEndTime)
		}
		uc.logger.Error("ReviewScheduleRequest: failed to update window times: %v", err)
		return fmt.Errorf("%w: failed to update window times: %v", ErrInternal, err)
	}
	return nil
}

// applyBlockDates вставляет блокировку на каждую дату независимо.
// Уже заблокированная дата пропускается (ON CONFLICT DO NOTHING) и
// отражается в результатах как applied=false, не ломая заявку целиком.
func (uc *UseCase) applyBlockDates(ctx context.Context, professionalID int64, p *domain.BlockDatesData) ([]DateResult, error) {
	results := make([]DateResult, 0, len(p.Dates))

	for _, ds := range p.Dates {
		date, err := time.Parse(domain.DateFormat, ds)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q in payload", ErrInternal, ds)
		}

		applied, err := uc.availabilityRepo.CreateBlock(ctx, &domain.DateBlock{
			ProfessionalID: professionalID,
			Date:           date,
			StartTime:      p.StartTime,
			EndTime:        p.EndTime,
			BlockType:      p.BlockType,
		})
		if err != nil {
			uc.logger.Error("ReviewScheduleRequest: failed to create block for %s: %v", ds, err)
			return nil, fmt.Errorf("%w: failed to create block for %s: %v", ErrInternal, ds, err)
		}

		res := DateResult{Date: ds, Applied: applied}
		if !applied {
			res.Detail = "already blocked"
		}
		results = append(results, res)
	}

	return results, nil
}

func (uc *UseCase) applyUnblockDates(ctx context.Context, professionalID int64, p *domain.UnblockDatesData) ([]DateResult, error) {
	results := make([]DateResult, 0, len(p.Dates))

	for _, ds := range p.Dates {
		date, err := time.Parse(domain.DateFormat, ds)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q in payload", ErrInternal, ds)
		}

		removed, err := uc.availabilityRepo.DeleteBlocksForDate(ctx, professionalID, date)
		if err != nil {
			uc.logger.Error("ReviewScheduleRequest: failed to delete blocks for %s: %v", ds, err)
			return nil, fmt.Errorf("%w: failed to delete blocks for %s: %v", ErrInternal, ds, err)
		}

		res := DateResult{Date: ds, Applied: removed > 0}
		if removed == 0 {
			res.Detail = "no blocks on this date"
		}
		results = append(results, res)
	}

	return results, nil
}

func (uc *UseCase) applyChangeServiceType(ctx context.Context, professionalID int64, p *domain.ChangeServiceTypeData) error {
	err := uc.availabilityRepo.UpdateWindowServiceType(ctx, professionalID, p.DayOfWeek,
		p.StartTime, p.EndTime, p.NewServiceType)
	if err != nil {
		if errors.Is(err, availabilityStorage.ErrWindowNotFound) {
			return fmt.Errorf("%w: day=%d %s-%s", ErrWindowNotFound, p.DayOfWeek, p.StartTime, p.EndTime)
		}
		uc.logger.Error("ReviewScheduleRequest: failed to update service type: %v", err)
		return fmt.Errorf("%w: failed to update service type: %v", ErrInternal, err)
	}
	return nil
}

// invalidateCalendar сбрасывает кеш календаря врача в фоне
func (uc *UseCase) invalidateCalendar(professionalID int64) {
	if uc.calendarCache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()

		if err := uc.calendarCache.Invalidate(ctx, professionalID); err != nil {
			uc.logger.Warn("ReviewScheduleRequest: calendar cache invalidation failed for professional id=%d: %v",
				professionalID, err)
		}
	}()
}
