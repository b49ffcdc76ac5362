package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusUpcoming.IsValid())
	assert.True(t, StatusLive.IsValid())
	assert.True(t, StatusPast.IsValid())
	assert.False(t, Status("cancelled").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusUpcoming, StatusLive, true},
		{StatusUpcoming, StatusPast, true},
		{StatusLive, StatusPast, true},
		{StatusLive, StatusUpcoming, false},
		{StatusPast, StatusLive, false},
		{StatusPast, StatusUpcoming, false},
		{StatusLive, StatusLive, false},
		{StatusUpcoming, Status("cancelled"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestEvent_StartInstant(t *testing.T) {
	ev := &Event{Date: "2026-08-28", Time: "14:30:00"}

	start, err := ev.StartInstant(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC), start)
}

func TestEvent_StartInstant_NilLocationDefaultsToLocal(t *testing.T) {
	ev := &Event{Date: "2026-08-28", Time: "14:30:00"}

	start, err := ev.StartInstant(nil)
	require.NoError(t, err)
	assert.Equal(t, time.Local, start.Location())
}

func TestEvent_StartInstant_InvalidSchedule(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
	}{
		{"bad date", Event{Date: "28-08-2026", Time: "14:30:00"}},
		{"bad time", Event{Date: "2026-08-28", Time: "2:30pm"}},
		{"empty", Event{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.ev.StartInstant(time.UTC)
			assert.Error(t, err)
		})
	}
}

func TestEvent_EndInstant(t *testing.T) {
	ev := &Event{Date: "2026-08-28", Time: "23:30:00", Duration: "45"}

	end, err := ev.EndInstant(time.UTC)
	require.NoError(t, err)
	// Crosses midnight into the next day.
	assert.Equal(t, time.Date(2026, 8, 29, 0, 15, 0, 0, time.UTC), end)
}

func TestEvent_EndInstant_InvalidDuration(t *testing.T) {
	for _, dur := range []string{"", "sixty", "1.5h"} {
		ev := &Event{Date: "2026-08-28", Time: "14:30:00", Duration: dur}
		_, err := ev.EndInstant(time.UTC)
		assert.Error(t, err, "duration %q", dur)
	}
}
