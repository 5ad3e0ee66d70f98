package engine

import "time"

// DefaultUrgencyThreshold marks an event urgent when it starts within this
// window. Overridable per Builder via config.
const DefaultUrgencyThreshold = 2 * time.Hour

// Countdown is the structured remaining-time value for one event. Formatting
// into "1h 30m" strings happens at the presentation boundary, not here.
type Countdown struct {
	Remaining time.Duration `json:"remaining"`
	Urgent    bool          `json:"urgent"`
}

// CountdownTo computes remaining time and urgency with the default threshold.
func CountdownTo(eventTime, now time.Time) Countdown {
	return CountdownWithin(eventTime, now, DefaultUrgencyThreshold)
}

// CountdownWithin computes remaining time against an explicit urgency
// threshold. A past event has zero remaining and is not urgent: it is over,
// not imminent. The caller supplies now on every rebuild; nothing here
// caches wall-clock time.
func CountdownWithin(eventTime, now time.Time, threshold time.Duration) Countdown {
	remaining := eventTime.Sub(now)
	if remaining <= 0 {
		return Countdown{}
	}
	return Countdown{
		Remaining: remaining,
		Urgent:    remaining < threshold,
	}
}
