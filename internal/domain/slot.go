package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// Slot is a candidate time interval during which a new encounter could be
// scheduled. Slots are derived data and never persisted.
type Slot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	ServiceType     ServiceType
}

// IntervalOn materializes the slot on a concrete date
func (s Slot) IntervalOn(date time.Time) (TimeRange, error) {
	start, err := s.StartTime.OnDate(date)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := s.EndTime.OnDate(date)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: start, End: end}, nil
}
