package reschedule_encounter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	encounterStorage "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/encounter"
	resourceStorage "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/resource"
)

type fakeEncounterRepo struct {
	encounter   *domain.Encounter
	overlapping []*domain.Encounter

	updatedInterval *domain.TimeRange
	lastExclude     *int64
}

func (f *fakeEncounterRepo) GetByID(_ context.Context, id int64) (*domain.Encounter, error) {
	if f.encounter == nil || f.encounter.ID != id {
		return nil, encounterStorage.ErrEncounterNotFound
	}
	cp := *f.encounter
	return &cp, nil
}

func (f *fakeEncounterRepo) FindOverlapping(_ context.Context, _ int64, _ domain.TimeRange, excludeID *int64) ([]*domain.Encounter, error) {
	f.lastExclude = excludeID
	return f.overlapping, nil
}

func (f *fakeEncounterRepo) UpdateInterval(_ context.Context, _ int64, rng domain.TimeRange) error {
	f.updatedInterval = &rng
	return nil
}

type fakeResourceRepo struct {
	bookings []*domain.ResourceBooking
	overlaps []*domain.ResourceBooking
	moveErr  error

	movedEncounters []int64
	lastExclude     *int64
}

func (f *fakeResourceRepo) ListBookingsByEncounter(_ context.Context, _ int64) ([]*domain.ResourceBooking, error) {
	return f.bookings, nil
}

func (f *fakeResourceRepo) FindConfirmedOverlaps(_ context.Context, _ []int64, _ domain.TimeRange, excludeEncounterID *int64) ([]*domain.ResourceBooking, error) {
	f.lastExclude = excludeEncounterID
	return f.overlaps, nil
}

func (f *fakeResourceRepo) UpdateBookingIntervalsByEncounter(_ context.Context, encounterID int64, _ domain.TimeRange) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	f.movedEncounters = append(f.movedEncounters, encounterID)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func rng(t *testing.T, startHour, durMin int) domain.TimeRange {
	t.Helper()
	start := time.Date(2026, 3, 16, startHour, 0, 0, 0, time.UTC)
	r, err := domain.NewTimeRange(start, start.Add(time.Duration(durMin)*time.Minute))
	require.NoError(t, err)
	return r
}

func scheduledEncounter(t *testing.T) *domain.Encounter {
	t.Helper()
	iv := rng(t, 9, 30)
	return &domain.Encounter{
		ID:             101,
		ProfessionalID: 20,
		PatientID:      10,
		ScheduledStart: iv.Start,
		ScheduledEnd:   iv.End,
		Status:         domain.EncounterScheduled,
	}
}

func newFixture(t *testing.T) (*UseCase, *fakeEncounterRepo, *fakeResourceRepo) {
	t.Helper()
	encounterRepo := &fakeEncounterRepo{encounter: scheduledEncounter(t)}
	resourceRepo := &fakeResourceRepo{
		bookings: []*domain.ResourceBooking{
			{ID: 201, ResourceID: 1, EncounterID: 101, Status: domain.BookingConfirmed},
			{ID: 202, ResourceID: 2, EncounterID: 101, Status: domain.BookingCancelled},
		},
	}
	uc := NewUseCase(encounterRepo, resourceRepo, nil, nil, fakeTxManager{}, Config{}, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)}
	return uc, encounterRepo, resourceRepo
}

func TestExecute_MovesEncounterWithBookings(t *testing.T) {
	uc, encounterRepo, resourceRepo := newFixture(t)
	newInterval := rng(t, 14, 30)

	resp, err := uc.Execute(context.Background(), &Request{EncounterID: 101, NewInterval: newInterval})
	require.NoError(t, err)

	assert.Equal(t, newInterval.Start, resp.ScheduledStart)
	assert.Equal(t, newInterval.End, resp.ScheduledEnd)

	// Отменённое бронирование не переезжает в ответ
	require.Len(t, resp.Resources, 1)
	assert.Equal(t, int64(1), resp.Resources[0].ResourceID)

	require.NotNil(t, encounterRepo.updatedInterval)
	assert.Equal(t, newInterval, *encounterRepo.updatedInterval)
	assert.Equal(t, []int64{101}, resourceRepo.movedEncounters)
}

func TestExecute_ExcludesOwnEncounterFromConflictCheck(t *testing.T) {
	uc, encounterRepo, resourceRepo := newFixture(t)

	_, err := uc.Execute(context.Background(), &Request{EncounterID: 101, NewInterval: rng(t, 14, 30)})
	require.NoError(t, err)

	// Без исключения собственного ID перенос внутри своего интервала
	// всегда конфликтовал бы сам с собой
	require.NotNil(t, encounterRepo.lastExclude)
	assert.Equal(t, int64(101), *encounterRepo.lastExclude)
	require.NotNil(t, resourceRepo.lastExclude)
	assert.Equal(t, int64(101), *resourceRepo.lastExclude)
}

func TestExecute_ProfessionalConflict(t *testing.T) {
	uc, encounterRepo, resourceRepo := newFixture(t)
	encounterRepo.overlapping = []*domain.Encounter{
		{ID: 77, ProfessionalID: 20, ScheduledStart: rng(t, 14, 30).Start, Status: domain.EncounterScheduled},
	}

	_, err := uc.Execute(context.Background(), &Request{EncounterID: 101, NewInterval: rng(t, 14, 30)})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, encounterRepo.updatedInterval)
	assert.Empty(t, resourceRepo.movedEncounters)
}

func TestExecute_ResourceConflict(t *testing.T) {
	uc, encounterRepo, resourceRepo := newFixture(t)
	resourceRepo.overlaps = []*domain.ResourceBooking{
		{ID: 55, ResourceID: 1, EncounterID: 90, StartTime: rng(t, 14, 30).Start, Status: domain.BookingConfirmed},
	}

	_, err := uc.Execute(context.Background(), &Request{EncounterID: 101, NewInterval: rng(t, 14, 30)})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, encounterRepo.updatedInterval)
}

func TestExecute_BookingConstraintViolationMapsToConflict(t *testing.T) {
	// Конкурентная транзакция успела занять ресурс в новом интервале:
	// exclusion constraint БД срабатывает уже на сдвиге бронирований
	// и должен отдаваться клиенту как конфликт, а не как внутренняя ошибка
	uc, _, resourceRepo := newFixture(t)
	resourceRepo.moveErr = fmt.Errorf("%w: encounter_id=101", resourceStorage.ErrOverlapConstraint)

	_, err := uc.Execute(context.Background(), &Request{EncounterID: 101, NewInterval: rng(t, 14, 30)})
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestExecute_OnlyScheduledCanBeRescheduled(t *testing.T) {
	for _, status := range []domain.EncounterStatus{
		domain.EncounterInProgress,
		domain.EncounterCompleted,
		domain.EncounterCancelled,
		domain.EncounterNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			uc, encounterRepo, _ := newFixture(t)
			encounterRepo.encounter.Status = status

			_, err := uc.Execute(context.Background(), &Request{EncounterID: 101, NewInterval: rng(t, 14, 30)})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Nil(t, encounterRepo.updatedInterval)
		})
	}
}

func TestExecute_EncounterNotFound(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, err := uc.Execute(context.Background(), &Request{EncounterID: 999, NewInterval: rng(t, 14, 30)})
	assert.ErrorIs(t, err, ErrEncounterNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc, _, _ := newFixture(t)

	t.Run("past date", func(t *testing.T) {
		past := domain.TimeRange{
			Start: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		}
		_, err := uc.Execute(context.Background(), &Request{EncounterID: 101, NewInterval: past})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("interval crossing midnight", func(t *testing.T) {
		crossing := domain.TimeRange{
			Start: time.Date(2026, 3, 16, 23, 30, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 17, 0, 30, 0, 0, time.UTC),
		}
		_, err := uc.Execute(context.Background(), &Request{EncounterID: 101, NewInterval: crossing})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
