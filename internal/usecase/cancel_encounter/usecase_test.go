package cancel_encounter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	encounterStorage "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/encounter"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/ptr"
)

type fakeEncounterRepo struct {
	encounter *domain.Encounter

	cancelCalls int
	lastReason  *string
}

func (f *fakeEncounterRepo) GetByID(_ context.Context, id int64) (*domain.Encounter, error) {
	if f.encounter == nil || f.encounter.ID != id {
		return nil, encounterStorage.ErrEncounterNotFound
	}
	cp := *f.encounter
	return &cp, nil
}

func (f *fakeEncounterRepo) Cancel(_ context.Context, _ int64, reason *string) error {
	f.cancelCalls++
	f.lastReason = reason
	return nil
}

type fakeResourceRepo struct {
	releasedEncounters []int64
}

func (f *fakeResourceRepo) CancelBookingsByEncounter(_ context.Context, encounterID int64) error {
	f.releasedEncounters = append(f.releasedEncounters, encounterID)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func scheduledEncounter() *domain.Encounter {
	return &domain.Encounter{
		ID:             101,
		ProfessionalID: 20,
		PatientID:      10,
		ScheduledStart: time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
		ScheduledEnd:   time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC),
		Status:         domain.EncounterScheduled,
	}
}

func TestExecute_CancelReleasesResources(t *testing.T) {
	encounterRepo := &fakeEncounterRepo{encounter: scheduledEncounter()}
	resourceRepo := &fakeResourceRepo{}
	uc := NewUseCase(encounterRepo, resourceRepo, nil, nil, fakeTxManager{}, nopLogger{})

	reason := ptr.Ptr("пациент попросил перенести на другую неделю")
	resp, err := uc.Execute(context.Background(), &Request{EncounterID: 101, Reason: reason})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, *reason, *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)

	// Приём отменяется вместе со всеми его бронированиями
	assert.Equal(t, 1, encounterRepo.cancelCalls)
	assert.Equal(t, []int64{101}, resourceRepo.releasedEncounters)
}

func TestExecute_OnlyScheduledCanBeCancelled(t *testing.T) {
	for _, status := range []domain.EncounterStatus{
		domain.EncounterInProgress,
		domain.EncounterCompleted,
		domain.EncounterCancelled,
		domain.EncounterNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			enc := scheduledEncounter()
			enc.Status = status
			encounterRepo := &fakeEncounterRepo{encounter: enc}
			resourceRepo := &fakeResourceRepo{}
			uc := NewUseCase(encounterRepo, resourceRepo, nil, nil, fakeTxManager{}, nopLogger{})

			_, err := uc.Execute(context.Background(), &Request{EncounterID: 101})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, 0, encounterRepo.cancelCalls)
			assert.Empty(t, resourceRepo.releasedEncounters)
		})
	}
}

func TestExecute_EncounterNotFound(t *testing.T) {
	uc := NewUseCase(&fakeEncounterRepo{}, &fakeResourceRepo{}, nil, nil, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{EncounterID: 999})
	assert.ErrorIs(t, err, ErrEncounterNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeEncounterRepo{}, &fakeResourceRepo{}, nil, nil, fakeTxManager{}, nopLogger{})

	t.Run("non-positive id", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{EncounterID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("reason too long", func(t *testing.T) {
		long := strings.Repeat("a", domain.MaxReasonLength+1)
		_, err := uc.Execute(context.Background(), &Request{EncounterID: 101, Reason: &long})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
