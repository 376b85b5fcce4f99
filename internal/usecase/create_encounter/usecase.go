package create_encounter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	resourceStorage "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/resource"
	maintenanceClient "github.com/m04kA/SMC-ClinicScheduler/internal/integrations/maintenanceservice"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/notifyservice"
)

// Таймаут фоновых побочных эффектов после коммита (уведомление, кеш)
const sideEffectTimeout = 5 * time.Second

// UseCase use case создания приёма с атомарным бронированием ресурсов
type UseCase struct {
	encounterRepo     EncounterRepository
	resourceRepo      ResourceRepository
	patientClient     PatientServiceClient
	staffClient       StaffServiceClient
	maintenanceClient MaintenanceServiceClient
	notifyClient      NotifyServiceClient
	calendarCache     CalendarInvalidator
	txManager         TransactionManager
	timeProvider      TimeProvider
	cfg               Config
	logger            Logger
}

// NewUseCase создает новый экземпляр use case.
// notifyClient и calendarCache могут быть nil, тогда соответствующие
// побочные эффекты пропускаются.
func NewUseCase(
	encounterRepo EncounterRepository,
	resourceRepo ResourceRepository,
	patientClient PatientServiceClient,
	staffClient StaffServiceClient,
	maintenanceClient MaintenanceServiceClient,
	notifyClient NotifyServiceClient,
	calendarCache CalendarInvalidator,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		encounterRepo:     encounterRepo,
		resourceRepo:      resourceRepo,
		patientClient:     patientClient,
		staffClient:       staffClient,
		maintenanceClient: maintenanceClient,
		notifyClient:      notifyClient,
		calendarCache:     calendarCache,
		txManager:         txManager,
		timeProvider:      &RealTimeProvider{},
		cfg:               cfg,
		logger:            logger,
	}
}

// Execute выполняет use case создания приёма.
// Проверка конфликтов и вставка приёма со всеми бронированиями ресурсов
// выполняются в одной сериализуемой транзакции: из двух конкурентных
// попыток занять слот ровно одна завершается успехом, вторая получает ErrConflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateEncounter: patient=%d, professional=%d, interval=%s..%s, resources=%v",
		req.PatientID, req.ProfessionalID,
		req.Interval.Start.Format(time.RFC3339), req.Interval.End.Format(time.RFC3339), req.ResourceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateEncounter: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Валидация даты и минимального времени до приёма
	if err := validateDate(req.Interval, now, uc.cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateEncounter: date validation failed: %v", err)
		return nil, err
	}
	if err := validateNotice(req.Interval, now, uc.cfg.MinNoticeMinutes); err != nil {
		uc.logger.Warn("CreateEncounter: notice validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем существование пациента и врача во внешних сервисах.
	// Таймаут клиента прерывает операцию до начала транзакции,
	// частичного коммита при недоступности коллабораторов не бывает.
	exists, err := uc.patientClient.PatientExists(ctx, req.PatientID)
	if err != nil {
		uc.logger.Error("CreateEncounter: failed to check patient id=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to check patient: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("CreateEncounter: patient id=%d not found", req.PatientID)
		return nil, ErrPatientNotFound
	}

	exists, err = uc.staffClient.ProfessionalExists(ctx, req.ProfessionalID)
	if err != nil {
		uc.logger.Error("CreateEncounter: failed to check professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to check professional: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("CreateEncounter: professional id=%d not found", req.ProfessionalID)
		return nil, ErrProfessionalNotFound
	}

	// 4. Проверяем пригодность запрошенных ресурсов
	if err := uc.checkResources(ctx, req.ResourceIDs); err != nil {
		return nil, err
	}

	var (
		result   *domain.Encounter
		bookings []*domain.ResourceBooking
	)

	// 5. Проверка конфликтов + вставки в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Конфликт по врачу: выборка с FOR UPDATE блокирует
		// пересекающиеся приёмы до конца транзакции
		probe := req.Interval.Expand(time.Duration(uc.cfg.ConflictBufferMinutes) * time.Minute)
		overlapping, err := uc.encounterRepo.FindOverlapping(txCtx, req.ProfessionalID, probe, nil)
		if err != nil {
			uc.logger.Error("CreateEncounter: failed to find overlapping encounters: %v", err)
			return fmt.Errorf("%w: failed to find overlapping encounters: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateEncounter: professional id=%d busy, conflicting encounter id=%d",
				req.ProfessionalID, overlapping[0].ID)
			return fmt.Errorf("%w: professional id=%d is busy at %s",
				ErrConflict, req.ProfessionalID, overlapping[0].ScheduledStart.Format(time.RFC3339))
		}

		// 5.2. Конфликты по ресурсам (чистое пересечение, без буфера)
		resourceOverlaps, err := uc.resourceRepo.FindConfirmedOverlaps(txCtx, req.ResourceIDs, req.Interval, nil)
		if err != nil {
			uc.logger.Error("CreateEncounter: failed to find overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to find overlapping bookings: %v", ErrInternal, err)
		}
		if len(resourceOverlaps) > 0 {
			first := resourceOverlaps[0]
			uc.logger.Warn("CreateEncounter: resource id=%d busy, conflicting booking id=%d",
				first.ResourceID, first.ID)
			return fmt.Errorf("%w: resource id=%d is booked at %s",
				ErrConflict, first.ResourceID, first.StartTime.Format(time.RFC3339))
		}

		// 5.3. Создаем приём
		enc := &domain.Encounter{
			ProfessionalID: req.ProfessionalID,
			PatientID:      req.PatientID,
			ScheduledStart: req.Interval.Start,
			ScheduledEnd:   req.Interval.End,
			Status:         domain.EncounterScheduled,
			Notes:          req.Notes,
		}

		created, err := uc.encounterRepo.Create(txCtx, enc)
		if err != nil {
			uc.logger.Error("CreateEncounter: failed to create encounter: %v", err)
			return fmt.Errorf("%w: failed to create encounter: %v", ErrInternal, err)
		}

		// 5.4. Создаем бронирование для каждого ресурса.
		// Любая ошибка откатывает транзакцию целиком: приём без
		// бронирований (и наоборот) никогда не наблюдаем.
		bookings = make([]*domain.ResourceBooking, 0, len(req.ResourceIDs))
		for _, resourceID := range req.ResourceIDs {
			booking := &domain.ResourceBooking{
				ResourceID:  resourceID,
				EncounterID: created.ID,
				StartTime:   req.Interval.Start,
				EndTime:     req.Interval.End,
				Status:      domain.BookingConfirmed,
			}

			saved, err := uc.resourceRepo.CreateBooking(txCtx, booking)
			if err != nil {
				// Конкурентная транзакция успела занять ресурс: вставка
				// упёрлась в exclusion constraint БД, это конфликт, а не сбой
				if errors.Is(err, resourceStorage.ErrOverlapConstraint) {
					uc.logger.Warn("CreateEncounter: resource id=%d already booked, constraint violation", resourceID)
					return fmt.Errorf("%w: resource id=%d is booked at %s",
						ErrConflict, resourceID, req.Interval.Start.Format(time.RFC3339))
				}
				uc.logger.Error("CreateEncounter: failed to book resource id=%d: %v", resourceID, err)
				return fmt.Errorf("%w: failed to book resource id=%d: %v", ErrInternal, resourceID, err)
			}
			bookings = append(bookings, saved)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateEncounter: successfully created encounter id=%d with %d resource bookings",
		result.ID, len(bookings))

	// 6. Побочные эффекты после коммита: best-effort, вне транзакции
	uc.fireSideEffects(result.ID, req.ProfessionalID)

	return buildResponse(result, bookings), nil
}

// checkResources проверяет, что все ресурсы существуют и пригодны
// для бронирования (is_bookable, статус в БД и в сервисе обслуживания)
func (uc *UseCase) checkResources(ctx context.Context, resourceIDs []int64) error {
	if len(resourceIDs) == 0 {
		return nil
	}

	resources, err := uc.resourceRepo.GetByIDs(ctx, resourceIDs)
	if err != nil {
		uc.logger.Error("CreateEncounter: failed to load resources: %v", err)
		return fmt.Errorf("%w: failed to load resources: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Resource, len(resources))
	for _, res := range resources {
		byID[res.ID] = res
	}

	for _, id := range resourceIDs {
		res, ok := byID[id]
		if !ok {
			uc.logger.Warn("CreateEncounter: resource id=%d not found", id)
			return fmt.Errorf("%w: resource id=%d", ErrResourceNotFound, id)
		}
		if !res.CanBeBooked() {
			uc.logger.Warn("CreateEncounter: resource id=%d not bookable (status=%s)", id, res.Status)
			return fmt.Errorf("%w: resource id=%d status=%s", ErrResourceUnavailable, id, res.Status)
		}

		// Актуальный статус обслуживания; при недоступности сервиса
		// доверяем статусу из БД (graceful degradation)
		status, err := uc.maintenanceClient.ResourceStatusWithGracefulDegradation(ctx, id)
		if err != nil {
			if errors.Is(err, maintenanceClient.ErrServiceDegraded) {
				continue
			}
			if errors.Is(err, maintenanceClient.ErrResourceNotFound) {
				return fmt.Errorf("%w: resource id=%d", ErrResourceNotFound, id)
			}
			uc.logger.Error("CreateEncounter: maintenance status check failed for resource id=%d: %v", id, err)
			return fmt.Errorf("%w: maintenance status check failed: %v", ErrInternal, err)
		}
		if status != maintenanceClient.StatusAvailable {
			uc.logger.Warn("CreateEncounter: resource id=%d in %s per maintenance service", id, status)
			return fmt.Errorf("%w: resource id=%d status=%s", ErrResourceUnavailable, id, status)
		}
	}

	return nil
}

// fireSideEffects запускает уведомление и инвалидацию кеша календаря
// в фоне. Ошибки только логируются.
func (uc *UseCase) fireSideEffects(encounterID, professionalID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()

		if uc.notifyClient != nil {
			if err := uc.notifyClient.NotifyBookingChange(ctx, encounterID, notifyservice.ChangeCreated); err != nil {
				uc.logger.Warn("CreateEncounter: notification failed for encounter id=%d: %v", encounterID, err)
			}
		}
		if uc.calendarCache != nil {
			if err := uc.calendarCache.Invalidate(ctx, professionalID); err != nil {
				uc.logger.Warn("CreateEncounter: calendar cache invalidation failed for professional id=%d: %v", professionalID, err)
			}
		}
	}()
}

func buildResponse(enc *domain.Encounter, bookings []*domain.ResourceBooking) *Response {
	resources := make([]BookedResource, 0, len(bookings))
	for _, b := range bookings {
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
		Notes:          enc.Notes,
		CreatedAt:      enc.CreatedAt,
		UpdatedAt:      enc.UpdatedAt,
	}
}
