package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tr(t *testing.T, startHour, startMin, endHour, endMin int) TimeRange {
	t.Helper()
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	r, err := NewTimeRange(
		day.Add(time.Duration(startHour)*time.Hour+time.Duration(startMin)*time.Minute),
		day.Add(time.Duration(endHour)*time.Hour+time.Duration(endMin)*time.Minute),
	)
	require.NoError(t, err)
	return r
}

func TestTimeRange_Overlaps(t *testing.T) {
	t.Run("partial overlap conflicts", func(t *testing.T) {
		a := tr(t, 9, 0, 9, 30)
		b := tr(t, 9, 15, 9, 45)
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("containment conflicts", func(t *testing.T) {
		outer := tr(t, 9, 0, 10, 0)
		inner := tr(t, 9, 15, 9, 45)
		assert.True(t, outer.Overlaps(inner))
		assert.True(t, inner.Overlaps(outer))
	})

	t.Run("identical ranges conflict", func(t *testing.T) {
		a := tr(t, 9, 0, 9, 30)
		b := tr(t, 9, 0, 9, 30)
		assert.True(t, a.Overlaps(b))
	})

	t.Run("adjacent ranges do not conflict", func(t *testing.T) {
		first := tr(t, 9, 0, 9, 30)
		second := tr(t, 9, 30, 10, 0)
		assert.False(t, first.Overlaps(second))
		assert.False(t, second.Overlaps(first))
	})

	t.Run("disjoint ranges do not conflict", func(t *testing.T) {
		morning := tr(t, 9, 0, 9, 30)
		afternoon := tr(t, 14, 0, 14, 30)
		assert.False(t, morning.Overlaps(afternoon))
	})
}

func TestNewTimeRange_RejectsInverted(t *testing.T) {
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	_, err := NewTimeRange(day.Add(10*time.Hour), day.Add(9*time.Hour))
	assert.Error(t, err)

	_, err = NewTimeRange(day.Add(9*time.Hour), day.Add(9*time.Hour))
	assert.Error(t, err)
}

func TestTimeRange_Expand(t *testing.T) {
	base := tr(t, 9, 0, 9, 30)

	expanded := base.Expand(10 * time.Minute)
	assert.Equal(t, tr(t, 8, 50, 9, 40), expanded)

	// Нулевой буфер не меняет интервал
	assert.Equal(t, base, base.Expand(0))
}

func TestTimeRange_Contains(t *testing.T) {
	r := tr(t, 9, 0, 9, 30)
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, r.Contains(day.Add(9*time.Hour)))                    // начало включено
	assert.True(t, r.Contains(day.Add(9*time.Hour+15*time.Minute)))    // середина
	assert.False(t, r.Contains(day.Add(9*time.Hour+30*time.Minute)))   // конец исключён
	assert.False(t, r.Contains(day.Add(8*time.Hour+59*time.Minute)))   // до начала
}

func TestTimeRange_SameDay(t *testing.T) {
	assert.True(t, tr(t, 9, 0, 17, 0).SameDay())

	day := time.Date(2026, 3, 16, 23, 0, 0, 0, time.UTC)
	crossing := TimeRange{Start: day, End: day.Add(2 * time.Hour)}
	assert.False(t, crossing.SameDay())
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsDateInPast(now.AddDate(0, 0, -1), now))
	// Сегодняшняя дата не считается прошлым, даже если время уже прошло
	assert.False(t, IsDateInPast(now.Add(-6*time.Hour), now))
	assert.False(t, IsDateInPast(now.AddDate(0, 0, 1), now))
}
