package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/ptr"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// 2026-03-16 это понедельник
var monday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

type fakeAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
	blocks  []*domain.DateBlock
}

func (f *fakeAvailabilityRepo) ListWindowsForDay(_ context.Context, _ int64, _ int) ([]*domain.AvailabilityWindow, error) {
	return f.windows, nil
}

func (f *fakeAvailabilityRepo) ListBlocksForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.DateBlock, error) {
	return f.blocks, nil
}

type fakeEncounterRepo struct {
	encounters []*domain.Encounter
}

func (f *fakeEncounterRepo) ListByProfessionalAndRange(_ context.Context, _ int64, _, _ time.Time, _ bool) ([]*domain.Encounter, error) {
	return f.encounters, nil
}

type fakeStaffClient struct{ exists bool }

func (f *fakeStaffClient) ProfessionalExists(_ context.Context, _ int64) (bool, error) {
	return f.exists, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func window(start, end types.TimeString) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		ID:             1,
		ProfessionalID: 20,
		DayOfWeek:      1,
		StartTime:      start,
		EndTime:        end,
		ServiceType:    domain.ServiceInPerson,
	}
}

func encounterAt(t *testing.T, start, end types.TimeString, status domain.EncounterStatus) *domain.Encounter {
	t.Helper()
	s, err := start.OnDate(monday)
	require.NoError(t, err)
	e, err := end.OnDate(monday)
	require.NoError(t, err)
	return &domain.Encounter{ID: 1, ProfessionalID: 20, ScheduledStart: s, ScheduledEnd: e, Status: status}
}

func newUseCase(avail *fakeAvailabilityRepo, enc *fakeEncounterRepo, cfg Config) *UseCase {
	uc := NewUseCase(avail, enc, &fakeStaffClient{exists: true}, cfg, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)}
	return uc
}

func starts(slots []domain.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime.String())
	}
	return out
}

func TestExecute_SlicesWindowIntoSlots(t *testing.T) {
	uc := newUseCase(
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{window("08:00", "12:00")}},
		&fakeEncounterRepo{},
		Config{DefaultSlotDurationMinutes: 30},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-16", resp.Date)
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, starts(resp.Slots))
	assert.Equal(t, types.TimeString("08:30"), resp.Slots[0].EndTime)
	assert.Equal(t, domain.ServiceInPerson, resp.Slots[0].ServiceType)
}

func TestExecute_PartialSlotAtWindowEndDropped(t *testing.T) {
	uc := newUseCase(
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{window("09:00", "10:15")}},
		&fakeEncounterRepo{},
		Config{DefaultSlotDurationMinutes: 30},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday})
	require.NoError(t, err)

	// 10:00-10:30 вылезает за границу окна
	assert.Equal(t, []string{"09:00", "09:30"}, starts(resp.Slots))
}

func TestExecute_FullDayBlockClearsAllSlots(t *testing.T) {
	uc := newUseCase(
		&fakeAvailabilityRepo{
			windows: []*domain.AvailabilityWindow{window("08:00", "12:00")},
			blocks:  []*domain.DateBlock{{ProfessionalID: 20, Date: monday, BlockType: domain.BlockVacation}},
		},
		&fakeEncounterRepo{},
		Config{DefaultSlotDurationMinutes: 30},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PartialBlockRemovesCoveredSlots(t *testing.T) {
	uc := newUseCase(
		&fakeAvailabilityRepo{
			windows: []*domain.AvailabilityWindow{window("08:00", "12:00")},
			blocks: []*domain.DateBlock{{
				ProfessionalID: 20,
				Date:           monday,
				StartTime:      ptr.Ptr(types.TimeString("09:00")),
				EndTime:        ptr.Ptr(types.TimeString("10:00")),
				BlockType:      domain.BlockOnCall,
			}},
		},
		&fakeEncounterRepo{},
		Config{DefaultSlotDurationMinutes: 30},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday})
	require.NoError(t, err)

	// Слот 10:00 смежен с блокировкой и остаётся доступным
	assert.Equal(t, []string{"08:00", "08:30", "10:00", "10:30", "11:00", "11:30"}, starts(resp.Slots))
}

func TestExecute_ActiveEncounterOccupiesSlot(t *testing.T) {
	uc := newUseCase(
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{window("09:00", "11:00")}},
		&fakeEncounterRepo{encounters: []*domain.Encounter{
			encounterAt(t, "09:30", "10:00", domain.EncounterScheduled),
		}},
		Config{DefaultSlotDurationMinutes: 30},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday})
	require.NoError(t, err)

	// Слот ровно после приёма свободен
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, starts(resp.Slots))
}

func TestExecute_CancelledEncounterFreesSlot(t *testing.T) {
	uc := newUseCase(
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{window("09:00", "10:00")}},
		&fakeEncounterRepo{encounters: []*domain.Encounter{
			encounterAt(t, "09:00", "09:30", domain.EncounterCancelled),
		}},
		Config{DefaultSlotDurationMinutes: 30},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, starts(resp.Slots))
}

func TestExecute_OverlappingWindowsDeduplicated(t *testing.T) {
	uc := newUseCase(
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{
			window("09:00", "11:00"),
			window("10:00", "12:00"),
		}},
		&fakeEncounterRepo{},
		Config{DefaultSlotDurationMinutes: 60},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday})
	require.NoError(t, err)

	// 10:00 попадает в оба окна, но отдаётся один раз; результат отсортирован
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, starts(resp.Slots))
}

func TestExecute_MinNoticeFiltersTodaySlots(t *testing.T) {
	uc := newUseCase(
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{window("08:00", "12:00")}},
		&fakeEncounterRepo{},
		Config{DefaultSlotDurationMinutes: 30, MinNoticeMinutes: 60},
	)
	// Запрос на сегодня в 09:10: доступны слоты не раньше 10:10
	uc.timeProvider = fixedTime{now: monday.Add(9*time.Hour + 10*time.Minute)}

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, starts(resp.Slots))
}

func TestExecute_ExplicitDurationOverridesDefault(t *testing.T) {
	uc := newUseCase(
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{window("09:00", "11:00")}},
		&fakeEncounterRepo{},
		Config{DefaultSlotDurationMinutes: 30},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday, DurationMinutes: 60})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, starts(resp.Slots))
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
}

func TestExecute_BuiltinDefaultDuration(t *testing.T) {
	// Длительность не задана ни в запросе, ни в конфиге:
	// используется встроенный шаг в 30 минут
	uc := newUseCase(
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{window("09:00", "10:00")}},
		&fakeEncounterRepo{},
		Config{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, starts(resp.Slots))
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.Slots[0].DurationMinutes)
}

func TestExecute_NoWindowsForWeekday(t *testing.T) {
	uc := newUseCase(&fakeAvailabilityRepo{}, &fakeEncounterRepo{}, Config{DefaultSlotDurationMinutes: 30})

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(&fakeAvailabilityRepo{}, &fakeEncounterRepo{}, Config{DefaultSlotDurationMinutes: 30})

	t.Run("date in the past", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday.AddDate(0, 0, -30)})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("non-positive professional id", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 0, Date: monday})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duration above maximum", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday, DurationMinutes: domain.MaxSlotDurationMinutes + 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duration below minimum", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday, DurationMinutes: domain.MinSlotDurationMinutes - 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_ProfessionalNotFound(t *testing.T) {
	uc := NewUseCase(&fakeAvailabilityRepo{}, &fakeEncounterRepo{}, &fakeStaffClient{exists: false},
		Config{DefaultSlotDurationMinutes: 30}, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 20, Date: monday})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}
