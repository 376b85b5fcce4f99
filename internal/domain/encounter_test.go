package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncounter_StatusTransitions(t *testing.T) {
	tests := []struct {
		status       EncounterStatus
		canStart     bool
		canComplete  bool
		canCancel    bool
		canResched   bool
	}{
		{EncounterScheduled, true, false, true, true},
		{EncounterInProgress, false, true, false, false},
		{EncounterCompleted, false, false, false, false},
		{EncounterCancelled, false, false, false, false},
		{EncounterNoShow, false, false, false, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			e := &Encounter{Status: tc.status}
			assert.Equal(t, tc.canStart, e.CanStart())
			assert.Equal(t, tc.canComplete, e.CanComplete())
			assert.Equal(t, tc.canCancel, e.CanBeCancelled())
			assert.Equal(t, tc.canResched, e.CanBeRescheduled())
		})
	}
}

func TestEncounter_CanMarkNoShow(t *testing.T) {
	t.Run("from scheduled always allowed", func(t *testing.T) {
		e := &Encounter{Status: EncounterScheduled}
		assert.True(t, e.CanMarkNoShow(false))
		assert.True(t, e.CanMarkNoShow(true))
	})

	t.Run("from in_progress only when widened", func(t *testing.T) {
		e := &Encounter{Status: EncounterInProgress}
		assert.False(t, e.CanMarkNoShow(false))
		assert.True(t, e.CanMarkNoShow(true))
	})

	t.Run("never from terminal statuses", func(t *testing.T) {
		for _, s := range []EncounterStatus{EncounterCompleted, EncounterCancelled, EncounterNoShow} {
			e := &Encounter{Status: s}
			assert.False(t, e.CanMarkNoShow(true), string(s))
		}
	})
}

func TestEncounter_IsActive(t *testing.T) {
	// Только отмена освобождает слот
	assert.False(t, (&Encounter{Status: EncounterCancelled}).IsActive())

	for _, s := range []EncounterStatus{EncounterScheduled, EncounterInProgress, EncounterCompleted, EncounterNoShow} {
		assert.True(t, (&Encounter{Status: s}).IsActive(), string(s))
	}
}

func TestEncounter_IsTerminal(t *testing.T) {
	assert.False(t, (&Encounter{Status: EncounterScheduled}).IsTerminal())
	assert.False(t, (&Encounter{Status: EncounterInProgress}).IsTerminal())
	assert.True(t, (&Encounter{Status: EncounterCompleted}).IsTerminal())
	assert.True(t, (&Encounter{Status: EncounterCancelled}).IsTerminal())
	assert.True(t, (&Encounter{Status: EncounterNoShow}).IsTerminal())
}

func TestValidEncounterStatus(t *testing.T) {
	assert.True(t, ValidEncounterStatus(EncounterScheduled))
	assert.True(t, ValidEncounterStatus(EncounterNoShow))
	assert.False(t, ValidEncounterStatus("archived"))
	assert.False(t, ValidEncounterStatus(""))
}
