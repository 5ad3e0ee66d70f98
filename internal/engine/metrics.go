package engine

// Metric is the normalized form of a current/target counter pair.
type Metric struct {
	Current    float64 `json:"current"`
	Target     float64 `json:"target"`
	Percentage float64 `json:"percentage"`
	Completed  bool    `json:"completed"`
}

// Normalize converts a raw counter pair into a bounded percentage plus a
// completion flag. A target of zero or less yields {0, false} instead of
// dividing by zero. Completion is judged on the raw values, so overshoot
// beyond the target still reads completed even though the percentage is
// clamped to 100.
func Normalize(current, target float64) Metric {
	m := Metric{Current: current, Target: target}
	if target <= 0 {
		return m
	}

	pct := current / target * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	m.Percentage = pct
	m.Completed = current >= target
	return m
}
