package domain

import "time"

// ResourceType classifies a bookable physical asset
type ResourceType string

const (
	ResourceRoom      ResourceType = "room"
	ResourceEquipment ResourceType = "equipment"
	ResourceOther     ResourceType = "other"
)

// ResourceStatus represents the operational state of a resource
type ResourceStatus string

const (
	ResourceAvailable   ResourceStatus = "available"
	ResourceMaintenance ResourceStatus = "maintenance"
	ResourceRetired     ResourceStatus = "retired"
)

// Resource is a bookable physical or equipment asset, distinct from the
// professional performing the encounter
type Resource struct {
	ID         int64
	Name       string
	Type       ResourceType
	Capacity   int
	IsBookable bool
	Status     ResourceStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeBooked returns true if the resource may be offered as a booking candidate
func (r *Resource) CanBeBooked() bool {
	return r.IsBookable && r.Status == ResourceAvailable
}

// BookingStatus represents the status of a resource reservation
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// ResourceBooking reserves a resource for an encounter's interval.
// For a given resource no two confirmed bookings may overlap.
type ResourceBooking struct {
	ID          int64
	ResourceID  int64
	EncounterID int64
	StartTime   time.Time
	EndTime     time.Time
	Status      BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the reserved [start, end) range
func (b *ResourceBooking) Interval() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

// IsConfirmed returns true if the booking still holds the resource
func (b *ResourceBooking) IsConfirmed() bool {
	return b.Status == BookingConfirmed
}
