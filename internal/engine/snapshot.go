package engine

import (
	"sort"
	"time"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

const weeklyWindowDays = 7

// RawSnapshot is one immutable read of everything the dashboard needs,
// fetched upstream. Absent fields mean "use the neutral default"; the
// builder never fails on partial data.
type RawSnapshot struct {
	User          *models.User
	Today         *models.ActivityRecord  // nil when nothing logged yet
	History       []models.ActivityRecord // newest-first, today included when present
	Events        []models.ServiceEvent
	Feed          []models.CommunityPost
	Notifications []models.Notification
	Chat          *models.ChatStatus
}

// TodayMetrics carries the three normalized daily counters plus the aarti
// attendance flag.
type TodayMetrics struct {
	Japa          Metric `json:"japa"`
	Reading       Metric `json:"reading"`
	Seva          Metric `json:"seva"`
	AartiAttended bool   `json:"aarti_attended"`
}

// EventCountdown pairs a ServiceEvent with its derived countdown.
type EventCountdown struct {
	Event     models.ServiceEvent `json:"event"`
	Remaining time.Duration       `json:"remaining"`
	Urgent    bool                `json:"urgent"`
}

// ViewModel is the fully derived, display-ready dashboard state.
type ViewModel struct {
	GeneratedAt         time.Time              `json:"generated_at"`
	User                models.PublicUser      `json:"user"`
	Today               TodayMetrics           `json:"today"`
	Weekly              models.WeeklyAggregate `json:"weekly"`
	Streak              int                    `json:"streak"`
	Achievements        []Achievement          `json:"achievements"`
	Events              []EventCountdown       `json:"events"`
	UnreadNotifications int                    `json:"unread_notifications"`
	Notifications       []models.Notification  `json:"notifications"`
	Feed                []models.CommunityPost `json:"feed"`
	Chat                *models.ChatStatus     `json:"chat,omitempty"`
}

// Builder composes raw snapshots into view models. Policy (qualify rule,
// achievement set, urgency threshold) is fixed at construction so every
// rebuild applies the same rules.
type Builder struct {
	rule         QualifyRule
	achievements []AchievementDef
	urgency      time.Duration
}

// NewBuilder returns a builder with the given policy. A nil rule, nil
// definitions or zero threshold fall back to the defaults.
func NewBuilder(rule QualifyRule, defs []AchievementDef, urgency time.Duration) *Builder {
	if rule == nil {
		rule = DefaultQualifyRule
	}
	if defs == nil {
		defs = DefaultAchievements()
	}
	if urgency <= 0 {
		urgency = DefaultUrgencyThreshold
	}
	return &Builder{rule: rule, achievements: defs, urgency: urgency}
}

// Build derives the complete view model from one raw snapshot. It is
// deterministic: the same (raw, now) pair always produces the same output,
// so redundant rebuilds cannot flicker the UI.
func (b *Builder) Build(raw RawSnapshot, now time.Time) ViewModel {
	vm := ViewModel{
		GeneratedAt:   now,
		Today:         b.todayMetrics(raw.Today),
		Weekly:        b.weeklyAggregate(raw.History),
		Streak:        ComputeStreak(raw.History, b.rule),
		Events:        b.eventCountdowns(raw.Events, now),
		Notifications: raw.Notifications,
		Feed:          raw.Feed,
		Chat:          raw.Chat,
	}
	vm.Achievements = EvaluateAchievements(raw.History, vm.Streak, b.achievements)
	for _, n := range raw.Notifications {
		if !n.Read {
			vm.UnreadNotifications++
		}
	}
	if raw.User != nil {
		vm.User = models.PublicUser{
			ID:    raw.User.ID,
			Name:  raw.User.Name,
			Email: raw.User.Email,
			Role:  raw.User.Role,
		}
	}
	return vm
}

func (b *Builder) todayMetrics(today *models.ActivityRecord) TodayMetrics {
	if today == nil {
		// Nothing logged yet: neutral defaults, still renderable.
		return TodayMetrics{}
	}
	return TodayMetrics{
		Japa:          Normalize(float64(today.JapaRounds), float64(today.TargetRounds)),
		Reading:       Normalize(float64(today.ReadingMinutes), float64(today.TargetReadingMinutes)),
		Seva:          Normalize(today.SevaHours, today.TargetSevaHours),
		AartiAttended: today.AartiAttended,
	}
}

// weeklyAggregate reduces the most recent window of records into four
// percentages: mean per-day completion for japa, reading and seva, and the
// share of days aarti was attended.
func (b *Builder) weeklyAggregate(history []models.ActivityRecord) models.WeeklyAggregate {
	window := history
	if len(window) > weeklyWindowDays {
		window = window[:weeklyWindowDays]
	}
	if len(window) == 0 {
		return models.WeeklyAggregate{}
	}

	var japa, reading, seva float64
	attended := 0
	for _, rec := range window {
		japa += Normalize(float64(rec.JapaRounds), float64(rec.TargetRounds)).Percentage
		reading += Normalize(float64(rec.ReadingMinutes), float64(rec.TargetReadingMinutes)).Percentage
		seva += Normalize(rec.SevaHours, rec.TargetSevaHours).Percentage
		if rec.AartiAttended {
			attended++
		}
	}

	n := float64(len(window))
	return models.WeeklyAggregate{
		JapaCompletion:    japa / n,
		AartiAttendance:   float64(attended) / n * 100,
		ReadingGoal:       reading / n,
		SevaParticipation: seva / n,
	}
}

// eventCountdowns re-derives every countdown from the supplied now and sorts
// ascending by remaining time, ties broken by event id for a stable order.
func (b *Builder) eventCountdowns(events []models.ServiceEvent, now time.Time) []EventCountdown {
	out := make([]EventCountdown, 0, len(events))
	for _, ev := range events {
		cd := CountdownWithin(ev.ScheduledAt, now, b.urgency)
		out = append(out, EventCountdown{Event: ev, Remaining: cd.Remaining, Urgent: cd.Urgent})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Remaining != out[j].Remaining {
			return out[i].Remaining < out[j].Remaining
		}
		return out[i].Event.ID.Hex() < out[j].Event.ID.Hex()
	})
	return out
}
