package service

import "pomosync/internal/model"

// StatsAggregator accumulates Stats from timer and goal events. It holds
// no state beyond the Stats value itself.
type StatsAggregator struct {
	stats model.Stats
}

func NewStatsAggregator(initial model.Stats) *StatsAggregator {
	if !initial.Valid() {
		initial = model.Stats{}
	}
	return &StatsAggregator{stats: initial}
}

// RecordSecond attributes one elapsed second to phase.
func (a *StatsAggregator) RecordSecond(phase model.Phase) {
	if phase == model.PhaseBreak {
		a.stats.AccumulatedBreakSeconds++
		return
	}
	a.stats.AccumulatedFocusSeconds++
}

func (a *StatsAggregator) RecordPomodoro() {
	a.stats.CompletedPomodoros++
}

// RecordTaskChecked moves the completed task count with a goal's checked
// transition, never below zero.
func (a *StatsAggregator) RecordTaskChecked(checked bool) {
	if checked {
		a.stats.CompletedTasks++
		return
	}
	if a.stats.CompletedTasks > 0 {
		a.stats.CompletedTasks--
	}
}

func (a *StatsAggregator) Stats() model.Stats {
	return a.stats
}

func (a *StatsAggregator) View() model.StatsView {
	return model.StatsView{
		CompletedTasks:     a.stats.CompletedTasks,
		CompletedPomodoros: a.stats.CompletedPomodoros,
		FocusMinutes:       a.stats.AccumulatedFocusSeconds / 60,
		BreakMinutes:       a.stats.AccumulatedBreakSeconds / 60,
	}
}
