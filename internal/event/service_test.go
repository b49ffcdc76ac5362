package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		time     string
		duration string
		wantErr  bool
	}{
		{"valid", "2026-08-28", "14:30:00", "60", false},
		{"valid one minute", "2026-08-28", "00:00:00", "1", false},
		{"wrong date order", "28-08-2026", "14:30:00", "60", true},
		{"date with slashes", "2026/08/28", "14:30:00", "60", true},
		{"12-hour time", "2026-08-28", "2:30pm", "60", true},
		{"time without seconds", "2026-08-28", "14:30", "60", true},
		{"non-numeric duration", "2026-08-28", "14:30:00", "an hour", true},
		{"zero duration", "2026-08-28", "14:30:00", "0", true},
		{"negative duration", "2026-08-28", "14:30:00", "-30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSchedule(tt.date, tt.time, tt.duration)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
