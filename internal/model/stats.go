package model

type Stats struct {
	CompletedTasks          int `json:"completedTasks"`
	CompletedPomodoros      int `json:"completedPomodoros"`
	AccumulatedFocusSeconds int `json:"accumulatedFocusSeconds"`
	AccumulatedBreakSeconds int `json:"accumulatedBreakSeconds"`
}

// Valid reports whether every counter is non-negative.
func (s Stats) Valid() bool {
	return s.CompletedTasks >= 0 &&
		s.CompletedPomodoros >= 0 &&
		s.AccumulatedFocusSeconds >= 0 &&
		s.AccumulatedBreakSeconds >= 0
}

type StatsView struct {
	CompletedTasks     int `json:"completedTasks"`
	CompletedPomodoros int `json:"completedPomodoros"`
	FocusMinutes       int `json:"focusMinutes"`
	BreakMinutes       int `json:"breakMinutes"`
}
