package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/ptr"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

func TestScheduleChangeData_Validate(t *testing.T) {
	addHours := &AddHoursData{
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "12:00",
		ServiceType: ServiceInPerson,
	}

	t.Run("matching variant passes", func(t *testing.T) {
		d := ScheduleChangeData{AddHours: addHours}
		assert.NoError(t, d.Validate(RequestAddHours))
	})

	t.Run("no variant fails", func(t *testing.T) {
		d := ScheduleChangeData{}
		assert.ErrorIs(t, d.Validate(RequestAddHours), ErrPayloadMismatch)
	})

	t.Run("two variants fail", func(t *testing.T) {
		d := ScheduleChangeData{
			AddHours:     addHours,
			UnblockDates: &UnblockDatesData{Dates: []string{"2026-04-01"}},
		}
		assert.ErrorIs(t, d.Validate(RequestAddHours), ErrPayloadMismatch)
	})

	t.Run("variant not matching type fails", func(t *testing.T) {
		d := ScheduleChangeData{AddHours: addHours}
		assert.ErrorIs(t, d.Validate(RequestRemoveHours), ErrPayloadMismatch)
	})

	t.Run("unknown request type fails", func(t *testing.T) {
		d := ScheduleChangeData{AddHours: addHours}
		assert.ErrorIs(t, d.Validate("reshuffle"), ErrPayloadMismatch)
	})
}

func TestAddHoursData_Validate(t *testing.T) {
	t.Run("rejects unknown service type", func(t *testing.T) {
		d := ScheduleChangeData{AddHours: &AddHoursData{
			DayOfWeek:   1,
			StartTime:   "09:00",
			EndTime:     "12:00",
			ServiceType: "telepathy",
		}}
		assert.ErrorIs(t, d.Validate(RequestAddHours), ErrPayloadMismatch)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		d := ScheduleChangeData{AddHours: &AddHoursData{
			DayOfWeek:   1,
			StartTime:   "12:00",
			EndTime:     "09:00",
			ServiceType: ServiceRemote,
		}}
		assert.ErrorIs(t, d.Validate(RequestAddHours), ErrPayloadMismatch)
	})

	t.Run("rejects dayOfWeek out of range", func(t *testing.T) {
		d := ScheduleChangeData{AddHours: &AddHoursData{
			DayOfWeek:   -1,
			StartTime:   "09:00",
			EndTime:     "12:00",
			ServiceType: ServiceBoth,
		}}
		assert.ErrorIs(t, d.Validate(RequestAddHours), ErrPayloadMismatch)
	})
}

func TestModifyHoursData_Validate(t *testing.T) {
	d := ScheduleChangeData{ModifyHours: &ModifyHoursData{
		DayOfWeek:    2,
		OldStartTime: "09:00",
		OldEndTime:   "12:00",
		NewStartTime: "10:00",
		NewEndTime:   "14:00",
	}}
	assert.NoError(t, d.Validate(RequestModifyHours))

	bad := ScheduleChangeData{ModifyHours: &ModifyHoursData{
		DayOfWeek:    2,
		OldStartTime: "09:00",
		OldEndTime:   "12:00",
		NewStartTime: "14:00",
		NewEndTime:   "10:00",
	}}
	assert.ErrorIs(t, bad.Validate(RequestModifyHours), ErrPayloadMismatch)
}

func TestBlockDatesData_Validate(t *testing.T) {
	t.Run("full day block needs no times", func(t *testing.T) {
		d := ScheduleChangeData{BlockDates: &BlockDatesData{
			Dates:     []string{"2026-04-01", "2026-04-02"},
			BlockType: BlockVacation,
		}}
		assert.NoError(t, d.Validate(RequestBlockDates))
	})

	t.Run("partial block needs both times", func(t *testing.T) {
		d := ScheduleChangeData{BlockDates: &BlockDatesData{
			Dates:     []string{"2026-04-01"},
			StartTime: ptr.Ptr(types.TimeString("09:00")),
			BlockType: BlockOnCall,
		}}
		assert.ErrorIs(t, d.Validate(RequestBlockDates), ErrPayloadMismatch)
	})

	t.Run("partial block with both times passes", func(t *testing.T) {
		d := ScheduleChangeData{BlockDates: &BlockDatesData{
			Dates:     []string{"2026-04-01"},
			StartTime: ptr.Ptr(types.TimeString("09:00")),
			EndTime:   ptr.Ptr(types.TimeString("12:00")),
			BlockType: BlockOnCall,
		}}
		assert.NoError(t, d.Validate(RequestBlockDates))
	})

	t.Run("empty dates fail", func(t *testing.T) {
		d := ScheduleChangeData{BlockDates: &BlockDatesData{
			BlockType: BlockOther,
		}}
		assert.ErrorIs(t, d.Validate(RequestBlockDates), ErrPayloadMismatch)
	})

	t.Run("too many dates fail", func(t *testing.T) {
		dates := make([]string, 0, MaxBlockDatesPerReq+1)
		for i := 0; i <= MaxBlockDatesPerReq; i++ {
			dates = append(dates, fmt.Sprintf("2026-04-%02d", i%28+1))
		}
		d := ScheduleChangeData{BlockDates: &BlockDatesData{
			Dates:     dates,
			BlockType: BlockVacation,
		}}
		assert.ErrorIs(t, d.Validate(RequestBlockDates), ErrPayloadMismatch)
	})

	t.Run("malformed date fails", func(t *testing.T) {
		d := ScheduleChangeData{BlockDates: &BlockDatesData{
			Dates:     []string{"01.04.2026"},
			BlockType: BlockVacation,
		}}
		assert.ErrorIs(t, d.Validate(RequestBlockDates), ErrPayloadMismatch)
	})

	t.Run("unknown block type fails", func(t *testing.T) {
		d := ScheduleChangeData{BlockDates: &BlockDatesData{
			Dates:     []string{"2026-04-01"},
			BlockType: "sabbatical",
		}}
		assert.ErrorIs(t, d.Validate(RequestBlockDates), ErrPayloadMismatch)
	})
}

func TestScheduleChangeRequest_CanBeReviewed(t *testing.T) {
	assert.True(t, (&ScheduleChangeRequest{Status: RequestPending}).CanBeReviewed())
	assert.False(t, (&ScheduleChangeRequest{Status: RequestApproved}).CanBeReviewed())
	assert.False(t, (&ScheduleChangeRequest{Status: RequestRejected}).CanBeReviewed())
}

func TestValidScheduleRequestType(t *testing.T) {
	for _, rt := range []ScheduleRequestType{
		RequestAddHours, RequestRemoveHours, RequestModifyHours,
		RequestBlockDates, RequestUnblockDates, RequestChangeServiceType,
	} {
		assert.True(t, ValidScheduleRequestType(rt), string(rt))
	}
	assert.False(t, ValidScheduleRequestType("swap_shifts"))
}
