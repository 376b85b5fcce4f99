package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// ServiceType describes how a professional accepts encounters in a window
type ServiceType string

const (
	ServiceInPerson ServiceType = "in_person"
	ServiceRemote   ServiceType = "remote"
	ServiceBoth     ServiceType = "both"
)

// ValidServiceType reports whether s is a known service type
func ValidServiceType(s ServiceType) bool {
	switch s {
	case ServiceInPerson, ServiceRemote, ServiceBoth:
		return true
	}
	return false
}

// AvailabilityWindow is a recurring weekly time range during which a
// professional accepts encounters. DayOfWeek follows time.Weekday
// numbering: 0 = Sunday .. 6 = Saturday.
type AvailabilityWindow struct {
	ID             int64
	ProfessionalID int64
	DayOfWeek      int
	StartTime      types.TimeString
	EndTime        types.TimeString
	ServiceType    ServiceType

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid checks the window invariant startTime < endTime
func (w *AvailabilityWindow) IsValid() bool {
	return w.DayOfWeek >= 0 && w.DayOfWeek <= 6 &&
		w.StartTime.Validate() == nil &&
		w.EndTime.Validate() == nil &&
		w.StartTime.IsBefore(w.EndTime)
}

// BlockType classifies a date-level unavailability
type BlockType string

const (
	BlockOnCall   BlockType = "on_call"
	BlockVacation BlockType = "vacation"
	BlockOther    BlockType = "other"
)

// ValidBlockType reports whether b is a known block type
func ValidBlockType(b BlockType) bool {
	switch b {
	case BlockOnCall, BlockVacation, BlockOther:
		return true
	}
	return false
}

// DateBlock marks a specific calendar date (or a portion of it) during
// which a professional is unavailable, overriding recurring windows.
// A block with no start/end times covers the entire day.
type DateBlock struct {
	ID             int64
	ProfessionalID int64
	Date           time.Time
	StartTime      *types.TimeString
	EndTime        *types.TimeString
	BlockType      BlockType

	CreatedAt time.Time
}

// IsFullDay returns true if the block covers the whole date
func (b *DateBlock) IsFullDay() bool {
	return b.StartTime == nil || b.EndTime == nil
}

// BlocksInterval reports whether the block makes the given range unavailable.
// The range is expected to lie on the block's date.
func (b *DateBlock) BlocksInterval(r TimeRange) bool {
	if !IsSameDay(b.Date, r.Start) {
		return false
	}
	if b.IsFullDay() {
		return true
	}

	blockStart, err := b.StartTime.OnDate(b.Date)
	if err != nil {
		return true // malformed block is treated as blocking, never as free time
	}
	blockEnd, err := b.EndTime.OnDate(b.Date)
	if err != nil {
		return true
	}

	return TimeRange{Start: blockStart, End: blockEnd}.Overlaps(r)
}
