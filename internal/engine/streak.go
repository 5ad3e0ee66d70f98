package engine

import (
	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

// QualifyRule decides whether a single day's record counts toward the streak.
type QualifyRule func(models.ActivityRecord) bool

// DefaultQualifyRule counts a day when at least 3 of its 4 daily targets were
// met (japa rounds, aarti attendance, reading minutes, seva hours). The
// threshold lives here, centralized, rather than scattered through display
// logic.
func DefaultQualifyRule(rec models.ActivityRecord) bool {
	met := 0
	if Normalize(float64(rec.JapaRounds), float64(rec.TargetRounds)).Completed {
		met++
	}
	if rec.AartiAttended {
		met++
	}
	if Normalize(float64(rec.ReadingMinutes), float64(rec.TargetReadingMinutes)).Completed {
		met++
	}
	if Normalize(rec.SevaHours, rec.TargetSevaHours).Completed {
		met++
	}
	return met >= 3
}

// ComputeStreak walks the history (ordered newest-first, today at index 0)
// and counts consecutive qualifying days, stopping at the first day that
// fails the rule. A nil rule falls back to DefaultQualifyRule. Empty history
// yields 0.
func ComputeStreak(history []models.ActivityRecord, rule QualifyRule) int {
	if rule == nil {
		rule = DefaultQualifyRule
	}

	streak := 0
	for _, rec := range history {
		if !rule(rec) {
			break
		}
		streak++
	}
	return streak
}
