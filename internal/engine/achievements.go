package engine

import (
	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

// AchievementRule is a predicate over the devotee's full history and the
// already-computed streak.
type AchievementRule func(history []models.ActivityRecord, streak int) bool

// AchievementDef is an immutable achievement definition. Whether it is
// achieved is recomputed on every snapshot build, never stored.
type AchievementDef struct {
	ID   string
	Name string
	Icon string
	Rule AchievementRule
}

// Achievement is the evaluated form handed to the presentation layer.
type Achievement struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Achieved bool   `json:"achieved"`
}

// EvaluateAchievements runs every definition against the history in
// definition order and preserves that order in the result. The order matters
// for display, not correctness.
func EvaluateAchievements(history []models.ActivityRecord, streak int, defs []AchievementDef) []Achievement {
	out := make([]Achievement, 0, len(defs))
	for _, def := range defs {
		out = append(out, Achievement{
			ID:       def.ID,
			Name:     def.Name,
			Icon:     def.Icon,
			Achieved: def.Rule != nil && def.Rule(history, streak),
		})
	}
	return out
}

// DefaultAchievements is the standard unlock set. Thresholds are explicit
// policy, kept in one place.
func DefaultAchievements() []AchievementDef {
	return []AchievementDef{
		{
			ID:   "streak_7",
			Name: "Steady Sadhaka",
			Icon: "flame",
			Rule: func(_ []models.ActivityRecord, streak int) bool {
				return streak >= 7
			},
		},
		{
			ID:   "streak_30",
			Name: "Month of Devotion",
			Icon: "lotus",
			Rule: func(_ []models.ActivityRecord, streak int) bool {
				return streak >= 30
			},
		},
		{
			ID:   "perfect_day",
			Name: "Perfect Day",
			Icon: "sun",
			Rule: func(history []models.ActivityRecord, _ int) bool {
				for _, rec := range history {
					if allTargetsMet(rec) {
						return true
					}
				}
				return false
			},
		},
		{
			ID:   "sixteen_rounds",
			Name: "Sixteen Rounds",
			Icon: "beads",
			Rule: func(history []models.ActivityRecord, _ int) bool {
				for _, rec := range history {
					if rec.JapaRounds >= 16 {
						return true
					}
				}
				return false
			},
		},
		{
			ID:   "hundred_rounds",
			Name: "Hundred Rounds Total",
			Icon: "mala",
			Rule: func(history []models.ActivityRecord, _ int) bool {
				total := 0
				for _, rec := range history {
					total += rec.JapaRounds
				}
				return total >= 100
			},
		},
	}
}

func allTargetsMet(rec models.ActivityRecord) bool {
	return Normalize(float64(rec.JapaRounds), float64(rec.TargetRounds)).Completed &&
		rec.AartiAttended &&
		Normalize(float64(rec.ReadingMinutes), float64(rec.TargetReadingMinutes)).Completed &&
		Normalize(rec.SevaHours, rec.TargetSevaHours).Completed
}
