package create_encounter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	resourceStorage "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/resource"
	maintenanceClient "github.com/m04kA/SMC-ClinicScheduler/internal/integrations/maintenanceservice"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/ptr"
)

// --- фейки ---

type fakeEncounterRepo struct {
	overlapping []*domain.Encounter
	created     *domain.Encounter

	findCalls   int
	lastProbe   domain.TimeRange
	lastExclude *int64
}

func (f *fakeEncounterRepo) Create(_ context.Context, enc *domain.Encounter) (*domain.Encounter, error) {
	out := *enc
	out.ID = 101
	out.CreatedAt = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	out.UpdatedAt = out.CreatedAt
	f.created = &out
	return &out, nil
}

func (f *fakeEncounterRepo) FindOverlapping(_ context.Context, _ int64, rng domain.TimeRange, excludeID *int64) ([]*domain.Encounter, error) {
	f.findCalls++
	f.lastProbe = rng
	f.lastExclude = excludeID
	return f.overlapping, nil
}

type fakeResourceRepo struct {
	resources  []*domain.Resource
	overlaps   []*domain.ResourceBooking
	bookingErr error

	bookings []*domain.ResourceBooking
}

func (f *fakeResourceRepo) GetByIDs(_ context.Context, _ []int64) ([]*domain.Resource, error) {
	return f.resources, nil
}

func (f *fakeResourceRepo) FindConfirmedOverlaps(_ context.Context, _ []int64, _ domain.TimeRange, _ *int64) ([]*domain.ResourceBooking, error) {
	return f.overlaps, nil
}

func (f *fakeResourceRepo) CreateBooking(_ context.Context, booking *domain.ResourceBooking) (*domain.ResourceBooking, error) {
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	out := *booking
	out.ID = int64(200 + len(f.bookings))
	f.bookings = append(f.bookings, &out)
	return &out, nil
}

type fakePatientClient struct{ exists bool }

func (f *fakePatientClient) PatientExists(_ context.Context, _ int64) (bool, error) {
	return f.exists, nil
}

type fakeStaffClient struct{ exists bool }

func (f *fakeStaffClient) ProfessionalExists(_ context.Context, _ int64) (bool, error) {
	return f.exists, nil
}

type fakeMaintenanceClient struct {
	status maintenanceClient.ResourceStatus
	err    error
}

func (f *fakeMaintenanceClient) ResourceStatusWithGracefulDegradation(_ context.Context, _ int64) (maintenanceClient.ResourceStatus, error) {
	return f.status, f.err
}

type fakeTxManager struct{ serializableCalls int }

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.serializableCalls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- сборка ---

type fixture struct {
	uc            *UseCase
	encounterRepo *fakeEncounterRepo
	resourceRepo  *fakeResourceRepo
	patient       *fakePatientClient
	staff         *fakeStaffClient
	maintenance   *fakeMaintenanceClient
	tx            *fakeTxManager
}

func newFixture(cfg Config) *fixture {
	f := &fixture{
		encounterRepo: &fakeEncounterRepo{},
		resourceRepo: &fakeResourceRepo{
			resources: []*domain.Resource{
				{ID: 1, Name: "Room 1", Type: domain.ResourceRoom, IsBookable: true, Status: domain.ResourceAvailable},
				{ID: 2, Name: "ECG", Type: domain.ResourceEquipment, IsBookable: true, Status: domain.ResourceAvailable},
			},
		},
		patient:     &fakePatientClient{exists: true},
		staff:       &fakeStaffClient{exists: true},
		maintenance: &fakeMaintenanceClient{status: maintenanceClient.StatusAvailable},
		tx:          &fakeTxManager{},
	}

	f.uc = NewUseCase(f.encounterRepo, f.resourceRepo, f.patient, f.staff, f.maintenance, nil, nil, f.tx, cfg, nopLogger{})
	f.uc.timeProvider = fixedTime{now: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)}
	return f
}

func interval(t *testing.T, startHour, startMin, durMin int) domain.TimeRange {
	t.Helper()
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	start := day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute)
	rng, err := domain.NewTimeRange(start, start.Add(time.Duration(durMin)*time.Minute))
	require.NoError(t, err)
	return rng
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		PatientID:      10,
		ProfessionalID: 20,
		Interval:       interval(t, 9, 0, 30),
		ResourceIDs:    []int64{1, 2},
	}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	f := newFixture(Config{})

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Len(t, resp.Resources, 2)
	assert.Equal(t, int64(1), resp.Resources[0].ResourceID)
	assert.Equal(t, "confirmed", resp.Resources[0].Status)

	// Приём и бронирования создаются в одной сериализуемой транзакции
	assert.Equal(t, 1, f.tx.serializableCalls)
	require.NotNil(t, f.encounterRepo.created)
	assert.Equal(t, domain.EncounterScheduled, f.encounterRepo.created.Status)
	assert.Len(t, f.resourceRepo.bookings, 2)
	for _, b := range f.resourceRepo.bookings {
		assert.Equal(t, int64(101), b.EncounterID)
		assert.Equal(t, domain.BookingConfirmed, b.Status)
	}
}

func TestExecute_ProfessionalConflict(t *testing.T) {
	f := newFixture(Config{})
	f.encounterRepo.overlapping = []*domain.Encounter{
		{ID: 77, ProfessionalID: 20, ScheduledStart: interval(t, 9, 0, 30).Start, Status: domain.EncounterScheduled},
	}

	req := validRequest(t)
	req.Interval = interval(t, 9, 15, 30)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, f.encounterRepo.created)
	assert.Empty(t, f.resourceRepo.bookings)
}

func TestExecute_ConflictBufferExpandsProbe(t *testing.T) {
	f := newFixture(Config{ConflictBufferMinutes: 10})

	req := validRequest(t)
	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Проверка по врачу идёт с буфером в обе стороны
	assert.Equal(t, req.Interval.Start.Add(-10*time.Minute), f.encounterRepo.lastProbe.Start)
	assert.Equal(t, req.Interval.End.Add(10*time.Minute), f.encounterRepo.lastProbe.End)
	assert.Nil(t, f.encounterRepo.lastExclude)
}

func TestExecute_ResourceConflict(t *testing.T) {
	f := newFixture(Config{})
	f.resourceRepo.overlaps = []*domain.ResourceBooking{
		{ID: 55, ResourceID: 2, EncounterID: 90, StartTime: interval(t, 9, 0, 30).Start, Status: domain.BookingConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "resource id=2")
	assert.Nil(t, f.encounterRepo.created)
}

func TestExecute_BookingConstraintViolationMapsToConflict(t *testing.T) {
	// Конкурентная транзакция успела занять ресурс между проверкой и
	// вставкой: exclusion constraint БД возвращается как ErrOverlapConstraint
	// и должен отдаваться клиенту как конфликт, а не как внутренняя ошибка
	f := newFixture(Config{})
	f.resourceRepo.bookingErr = fmt.Errorf("%w: resource_id=2", resourceStorage.ErrOverlapConstraint)

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestExecute_ResourceUnavailable(t *testing.T) {
	t.Run("maintenance status in database", func(t *testing.T) {
		f := newFixture(Config{})
		f.resourceRepo.resources[1].Status = domain.ResourceMaintenance

		_, err := f.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrResourceUnavailable)
	})

	t.Run("maintenance status in external service", func(t *testing.T) {
		f := newFixture(Config{})
		f.maintenance.status = maintenanceClient.StatusMaintenance

		_, err := f.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrResourceUnavailable)
	})

	t.Run("not bookable flag", func(t *testing.T) {
		f := newFixture(Config{})
		f.resourceRepo.resources[0].IsBookable = false

		_, err := f.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrResourceUnavailable)
	})
}

func TestExecute_MaintenanceServiceDegraded(t *testing.T) {
	// При недоступности сервиса обслуживания доверяем статусу из БД
	f := newFixture(Config{})
	f.maintenance.err = maintenanceClient.ErrServiceDegraded

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Len(t, resp.Resources, 2)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	t.Run("missing in database", func(t *testing.T) {
		f := newFixture(Config{})
		f.resourceRepo.resources = f.resourceRepo.resources[:1]

		_, err := f.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("missing in maintenance service", func(t *testing.T) {
		f := newFixture(Config{})
		f.maintenance.err = maintenanceClient.ErrResourceNotFound

		_, err := f.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}

func TestExecute_CollaboratorNotFound(t *testing.T) {
	t.Run("patient", func(t *testing.T) {
		f := newFixture(Config{})
		f.patient.exists = false

		_, err := f.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})

	t.Run("professional", func(t *testing.T) {
		f := newFixture(Config{})
		f.staff.exists = false

		_, err := f.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrProfessionalNotFound)
	})
}

func TestExecute_Validation(t *testing.T) {
	t.Run("duplicate resource ids", func(t *testing.T) {
		f := newFixture(Config{})
		req := validRequest(t)
		req.ResourceIDs = []int64{1, 1}

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("interval crossing midnight", func(t *testing.T) {
		f := newFixture(Config{})
		req := validRequest(t)
		req.Interval = domain.TimeRange{
			Start: time.Date(2026, 3, 16, 23, 30, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 17, 0, 30, 0, 0, time.UTC),
		}

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("date in the past", func(t *testing.T) {
		f := newFixture(Config{})
		req := validRequest(t)
		req.Interval = domain.TimeRange{
			Start: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		}

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("too far in the future", func(t *testing.T) {
		f := newFixture(Config{AdvanceBookingDays: 7})
		req := validRequest(t)
		req.Interval = domain.TimeRange{
			Start: time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 4, 20, 9, 30, 0, 0, time.UTC),
		}

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("violates minimum notice", func(t *testing.T) {
		f := newFixture(Config{MinNoticeMinutes: 120})
		f.uc.timeProvider = fixedTime{now: time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)}

		req := validRequest(t)
		// Старт через час при требуемых двух
		req.Interval = interval(t, 9, 0, 30)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})
}

func TestExecute_WithoutResources(t *testing.T) {
	f := newFixture(Config{})
	req := validRequest(t)
	req.ResourceIDs = nil
	req.Notes = ptr.Ptr("первичный осмотр")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Resources)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "первичный осмотр", *resp.Notes)
	assert.Empty(t, f.resourceRepo.bookings)
}

func TestExecute_InternalRepoError(t *testing.T) {
	f := newFixture(Config{})
	f.tx.serializableCalls = 0

	boom := errors.New("connection reset")
	failing := &failingEncounterRepo{err: boom}
	f.uc.encounterRepo = failing

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInternal)
}

type failingEncounterRepo struct{ err error }

func (f *failingEncounterRepo) Create(_ context.Context, _ *domain.Encounter) (*domain.Encounter, error) {
	return nil, f.err
}

func (f *failingEncounterRepo) FindOverlapping(_ context.Context, _ int64, _ domain.TimeRange, _ *int64) ([]*domain.Encounter, error) {
	return nil, f.err
}
