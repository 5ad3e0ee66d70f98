package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

func TestSameDay(t *testing.T) {
	morning := time.Date(2025, 8, 20, 4, 30, 0, 0, time.UTC)
	night := time.Date(2025, 8, 20, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC)

	assert.True(t, sameDay(morning, night))
	assert.False(t, sameDay(night, nextDay))

	// Comparison happens in UTC regardless of the input's zone.
	shifted := morning.In(time.FixedZone("IST", 5*3600+1800))
	assert.True(t, sameDay(shifted, night))
}

func TestClampRecord(t *testing.T) {
	rec := &models.ActivityRecord{JapaRounds: -4, ReadingMinutes: -1, SevaHours: -0.5}
	clampRecord(rec)

	assert.Equal(t, 0, rec.JapaRounds)
	assert.Equal(t, 0, rec.ReadingMinutes)
	assert.Equal(t, 0.0, rec.SevaHours)
}
