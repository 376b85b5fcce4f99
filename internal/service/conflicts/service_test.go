package conflicts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/conflicts/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/ptr"
)

type fakeEncounterRepo struct {
	overlapping []*domain.Encounter

	lastProbe   domain.TimeRange
	lastExclude *int64
}

func (f *fakeEncounterRepo) FindOverlapping(_ context.Context, _ int64, rng domain.TimeRange, excludeID *int64) ([]*domain.Encounter, error) {
	f.lastProbe = rng
	f.lastExclude = excludeID
	return f.overlapping, nil
}

type fakeResourceRepo struct {
	overlaps []*domain.ResourceBooking
	calls    int
}

func (f *fakeResourceRepo) FindConfirmedOverlaps(_ context.Context, _ []int64, _ domain.TimeRange, _ *int64) ([]*domain.ResourceBooking, error) {
	f.calls++
	return f.overlaps, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func interval(t *testing.T) domain.TimeRange {
	t.Helper()
	start := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
	r, err := domain.NewTimeRange(start, start.Add(30*time.Minute))
	require.NoError(t, err)
	return r
}

func TestCheck_NoConflicts(t *testing.T) {
	svc := NewService(&fakeEncounterRepo{}, &fakeResourceRepo{}, Config{}, nopLogger{})

	resp, err := svc.Check(context.Background(), &models.CheckConflictsRequest{
		ProfessionalID: 20,
		Interval:       interval(t),
	})
	require.NoError(t, err)

	assert.False(t, resp.HasConflict)
	assert.NotNil(t, resp.Conflicts)
	assert.Empty(t, resp.Conflicts)
}

func TestCheck_ReportsBothConflictKinds(t *testing.T) {
	iv := interval(t)
	encounterRepo := &fakeEncounterRepo{overlapping: []*domain.Encounter{
		{ID: 77, ProfessionalID: 20, ScheduledStart: iv.Start, ScheduledEnd: iv.End, Status: domain.EncounterScheduled},
	}}
	resourceRepo := &fakeResourceRepo{overlaps: []*domain.ResourceBooking{
		{ID: 55, ResourceID: 3, EncounterID: 90, StartTime: iv.Start, EndTime: iv.End, Status: domain.BookingConfirmed},
	}}
	svc := NewService(encounterRepo, resourceRepo, Config{}, nopLogger{})

	resp, err := svc.Check(context.Background(), &models.CheckConflictsRequest{
		ProfessionalID: 20,
		Interval:       iv,
		ResourceIDs:    []int64{3},
	})
	require.NoError(t, err)

	assert.True(t, resp.HasConflict)
	require.Len(t, resp.Conflicts, 2)
	assert.Equal(t, "professional", resp.Conflicts[0].Kind)
	assert.Equal(t, int64(77), resp.Conflicts[0].EncounterID)
	assert.Equal(t, "resource", resp.Conflicts[1].Kind)
	require.NotNil(t, resp.Conflicts[1].ResourceID)
	assert.Equal(t, int64(3), *resp.Conflicts[1].ResourceID)
}

func TestCheck_BufferAppliesToProfessionalOnly(t *testing.T) {
	iv := interval(t)
	encounterRepo := &fakeEncounterRepo{}
	svc := NewService(encounterRepo, &fakeResourceRepo{}, Config{ConflictBufferMinutes: 15}, nopLogger{})

	_, err := svc.Check(context.Background(), &models.CheckConflictsRequest{
		ProfessionalID: 20,
		Interval:       iv,
	})
	require.NoError(t, err)

	assert.Equal(t, iv.Start.Add(-15*time.Minute), encounterRepo.lastProbe.Start)
	assert.Equal(t, iv.End.Add(15*time.Minute), encounterRepo.lastProbe.End)
}

func TestCheck_SkipsResourceLookupWithoutIDs(t *testing.T) {
	resourceRepo := &fakeResourceRepo{}
	svc := NewService(&fakeEncounterRepo{}, resourceRepo, Config{}, nopLogger{})

	_, err := svc.Check(context.Background(), &models.CheckConflictsRequest{
		ProfessionalID: 20,
		Interval:       interval(t),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resourceRepo.calls)
}

func TestCheck_PassesExcludeEncounterID(t *testing.T) {
	encounterRepo := &fakeEncounterRepo{}
	svc := NewService(encounterRepo, &fakeResourceRepo{}, Config{}, nopLogger{})

	_, err := svc.Check(context.Background(), &models.CheckConflictsRequest{
		ProfessionalID:     20,
		Interval:           interval(t),
		ExcludeEncounterID: ptr.Ptr(int64(101)),
	})
	require.NoError(t, err)
	require.NotNil(t, encounterRepo.lastExclude)
	assert.Equal(t, int64(101), *encounterRepo.lastExclude)
}

func TestCheck_Validation(t *testing.T) {
	svc := NewService(&fakeEncounterRepo{}, &fakeResourceRepo{}, Config{}, nopLogger{})

	_, err := svc.Check(context.Background(), &models.CheckConflictsRequest{
		ProfessionalID: 0,
		Interval:       interval(t),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	iv := interval(t)
	_, err = svc.Check(context.Background(), &models.CheckConflictsRequest{
		ProfessionalID: 20,
		Interval:       domain.TimeRange{Start: iv.End, End: iv.Start},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
