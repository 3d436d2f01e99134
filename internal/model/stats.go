package model

import "math"

// UserStats holds cumulative verification counters for one user. Counters
// are monotonically non-decreasing and Successes never exceeds Attempts.
type UserStats struct {
	Attempts  int `json:"attempts"`
	Successes int `json:"successes"`
}

// GradeReport is the derived grade for a user's accumulated stats.
type GradeReport struct {
	Attempts  int `json:"attempts"`
	Successes int `json:"successes"`
	Percent   int `json:"percent"`
	Band      int `json:"band"` // 1..5
}

// Grade derives the current grade report. The percent is rounded to the
// nearest integer before banding; zero attempts grade as band 1.
func (s UserStats) Grade() GradeReport {
	percent := 0
	if s.Attempts > 0 {
		percent = int(math.Round(float64(s.Successes) / float64(s.Attempts) * 100))
	}
	return GradeReport{
		Attempts:  s.Attempts,
		Successes: s.Successes,
		Percent:   percent,
		Band:      gradeBand(percent),
	}
}

func gradeBand(percent int) int {
	switch {
	case percent >= 90:
		return 5
	case percent >= 75:
		return 4
	case percent >= 50:
		return 3
	case percent >= 30:
		return 2
	default:
		return 1
	}
}
