package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

func TestEvaluateAchievementsEmptyHistory(t *testing.T) {
	got := EvaluateAchievements(nil, 0, DefaultAchievements())
	require.Len(t, got, len(DefaultAchievements()))
	for _, a := range got {
		assert.False(t, a.Achieved, a.ID)
	}
}

func TestEvaluateAchievementsPreservesOrder(t *testing.T) {
	defs := []AchievementDef{
		{ID: "b", Rule: func([]models.ActivityRecord, int) bool { return true }},
		{ID: "a", Rule: func([]models.ActivityRecord, int) bool { return false }},
		{ID: "c", Rule: nil}, // nil rule can never unlock
	}

	got := EvaluateAchievements(nil, 0, defs)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
	assert.True(t, got[0].Achieved)
	assert.False(t, got[1].Achieved)
	assert.False(t, got[2].Achieved)
}

func TestDefaultAchievementThresholds(t *testing.T) {
	perfect := day(0)
	partial := day(1)
	partial.JapaRounds = 4
	partial.AartiAttended = false
	partial.ReadingMinutes = 0
	partial.SevaHours = 0

	tests := []struct {
		name    string
		history []models.ActivityRecord
		streak  int
		want    map[string]bool
	}{
		{
			name:    "seven day streak unlocks steady sadhaka only",
			history: []models.ActivityRecord{partial},
			streak:  7,
			want:    map[string]bool{"streak_7": true, "streak_30": false, "perfect_day": false},
		},
		{
			name:    "thirty day streak unlocks both streak badges",
			history: []models.ActivityRecord{partial},
			streak:  30,
			want:    map[string]bool{"streak_7": true, "streak_30": true},
		},
		{
			name:    "one perfect day",
			history: []models.ActivityRecord{perfect},
			streak:  1,
			want:    map[string]bool{"perfect_day": true, "sixteen_rounds": true, "streak_7": false},
		},
		{
			name: "hundred rounds accumulates across days",
			history: []models.ActivityRecord{
				{JapaRounds: 40}, {JapaRounds: 40}, {JapaRounds: 25},
			},
			streak: 0,
			want:   map[string]bool{"hundred_rounds": true, "sixteen_rounds": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateAchievements(tt.history, tt.streak, DefaultAchievements())
			byID := map[string]bool{}
			for _, a := range got {
				byID[a.ID] = a.Achieved
			}
			for id, want := range tt.want {
				assert.Equal(t, want, byID[id], id)
			}
		})
	}
}
