package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	t.Run("valid times", func(t *testing.T) {
		for _, s := range []string{"00:00", "09:30", "23:59"} {
			assert.NoError(t, TimeString(s).Validate(), s)
		}
	})

	t.Run("invalid times", func(t *testing.T) {
		for _, s := range []string{"", "9:30", "24:00", "12:60", "12-30", "abcde"} {
			assert.Error(t, TimeString(s).Validate(), s)
		}
	})
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("adds within the same day", func(t *testing.T) {
		got, err := TimeString("09:00").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("09:30"), got)
	})

	t.Run("crosses an hour boundary", func(t *testing.T) {
		got, err := TimeString("09:45").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("10:15"), got)
	})

	t.Run("fails past midnight", func(t *testing.T) {
		_, err := TimeString("23:45").AddMinutes(30)
		assert.Error(t, err)
	})

	t.Run("fails exactly at midnight", func(t *testing.T) {
		// "24:00" непредставим, слот до конца суток должен отбрасываться,
		// а не молча укорачиваться
		_, err := TimeString("23:30").AddMinutes(30)
		assert.Error(t, err)
	})

	t.Run("last representable minute", func(t *testing.T) {
		got, err := TimeString("23:29").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("23:59"), got)
	})
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("09:30").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC), got)

	_, err = TimeString("9:30").OnDate(date)
	assert.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("truncates seconds from database value", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("09:30:00"))
		assert.Equal(t, TimeString("09:30"), ts)
	})

	t.Run("accepts byte slice", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("14:00:00")))
		assert.Equal(t, TimeString("14:00"), ts)
	})
}
