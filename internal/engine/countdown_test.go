package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdownTo(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		eventTime     time.Time
		wantRemaining time.Duration
		wantUrgent    bool
	}{
		{name: "past event is over, not urgent", eventTime: now.Add(-time.Hour), wantRemaining: 0, wantUrgent: false},
		{name: "event right now is over", eventTime: now, wantRemaining: 0, wantUrgent: false},
		{name: "90 minutes out is urgent", eventTime: now.Add(90 * time.Minute), wantRemaining: 90 * time.Minute, wantUrgent: true},
		{name: "three hours out is not urgent", eventTime: now.Add(3 * time.Hour), wantRemaining: 3 * time.Hour, wantUrgent: false},
		{name: "exactly at threshold is not urgent", eventTime: now.Add(DefaultUrgencyThreshold), wantRemaining: DefaultUrgencyThreshold, wantUrgent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountdownTo(tt.eventTime, now)
			assert.Equal(t, tt.wantRemaining, got.Remaining)
			assert.Equal(t, tt.wantUrgent, got.Urgent)
		})
	}
}

func TestCountdownWithinCustomThreshold(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	got := CountdownWithin(now.Add(20*time.Minute), now, 30*time.Minute)
	assert.True(t, got.Urgent)

	got = CountdownWithin(now.Add(45*time.Minute), now, 30*time.Minute)
	assert.False(t, got.Urgent)
}
