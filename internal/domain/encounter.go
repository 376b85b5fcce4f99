package domain

import "time"

// EncounterStatus represents the status of a clinical encounter
type EncounterStatus string

const (
	EncounterScheduled  EncounterStatus = "scheduled"
	EncounterInProgress EncounterStatus = "in_progress"
	EncounterCompleted  EncounterStatus = "completed"
	EncounterCancelled  EncounterStatus = "cancelled"
	EncounterNoShow     EncounterStatus = "no_show"
)

// ActiveEncounterStatuses are the statuses that count toward conflicts.
// Everything except cancelled keeps its claim on the professional's time.
var ActiveEncounterStatuses = []EncounterStatus{
	EncounterScheduled,
	EncounterInProgress,
	EncounterCompleted,
	EncounterNoShow,
}

// Encounter represents a scheduled clinical interaction between a patient
// and a professional
type Encounter struct {
	ID             int64
	ProfessionalID int64
	PatientID      int64
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Status         EncounterStatus

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the scheduled [start, end) range
func (e *Encounter) Interval() TimeRange {
	return TimeRange{Start: e.ScheduledStart, End: e.ScheduledEnd}
}

// IsActive returns true if the encounter still occupies its time slot.
// Only cancelled encounters release the slot.
func (e *Encounter) IsActive() bool {
	return e.Status != EncounterCancelled
}

// IsTerminal returns true if no further status transitions are allowed
func (e *Encounter) IsTerminal() bool {
	return e.Status == EncounterCompleted ||
		e.Status == EncounterCancelled ||
		e.Status == EncounterNoShow
}

// CanStart returns true if the consultation can be started
func (e *Encounter) CanStart() bool {
	return e.Status == EncounterScheduled
}

// CanComplete returns true if the consultation can be completed
func (e *Encounter) CanComplete() bool {
	return e.Status == EncounterInProgress
}

// CanMarkNoShow returns true if the encounter can be marked as a no-show.
// The narrower rule allows it only from scheduled; allowFromInProgress
// widens it to in_progress as well.
func (e *Encounter) CanMarkNoShow(allowFromInProgress bool) bool {
	if e.Status == EncounterScheduled {
		return true
	}
	return allowFromInProgress && e.Status == EncounterInProgress
}

// CanBeCancelled returns true if the encounter can be cancelled
func (e *Encounter) CanBeCancelled() bool {
	return e.Status == EncounterScheduled
}

// CanBeRescheduled returns true if the encounter's interval can change
func (e *Encounter) CanBeRescheduled() bool {
	return e.Status == EncounterScheduled
}

// ValidEncounterStatus reports whether s is a known status value
func ValidEncounterStatus(s EncounterStatus) bool {
	switch s {
	case EncounterScheduled, EncounterInProgress, EncounterCompleted,
		EncounterCancelled, EncounterNoShow:
		return true
	}
	return false
}
