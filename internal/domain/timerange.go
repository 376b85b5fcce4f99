package domain

import (
	"fmt"
	"time"
)

// TimeRange is a half-open interval [Start, End).
// Two ranges conflict iff they actually share time: a range ending exactly
// when another starts does not overlap it.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange builds a validated range
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	r := TimeRange{Start: start, End: end}
	if !r.IsValid() {
		return TimeRange{}, fmt.Errorf("invalid time range: start %s is not before end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return r, nil
}

// IsValid reports whether Start is strictly before End
func (r TimeRange) IsValid() bool {
	return r.Start.Before(r.End)
}

// Overlaps reports whether the two half-open intervals share any time
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains reports whether t falls inside the half-open interval
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Duration returns the length of the range
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Expand widens the range by buffer on both sides.
// Used by the professional-level conflict check to catch bookings that
// start within the buffer before or after the probed interval.
func (r TimeRange) Expand(buffer time.Duration) TimeRange {
	if buffer <= 0 {
		return r
	}
	return TimeRange{Start: r.Start.Add(-buffer), End: r.End.Add(buffer)}
}

// Date returns the calendar day of the range start, truncated to midnight
func (r TimeRange) Date() time.Time {
	y, m, d := r.Start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.Start.Location())
}

// SameDay reports whether the whole range falls on a single calendar day
func (r TimeRange) SameDay() bool {
	y1, m1, d1 := r.Start.Date()
	y2, m2, d2 := r.End.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates a timestamp to midnight in its location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsDateInPast reports whether date is before today (date precision)
func IsDateInPast(date, now time.Time) bool {
	return DateOnly(date).Before(DateOnly(now))
}

// IsSameDay reports whether two timestamps fall on the same calendar day
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
