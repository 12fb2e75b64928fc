package service

import (
	"fmt"
	"time"

	"pomosync/internal/media"
	"pomosync/internal/model"
)

type TimerView struct {
	Mode             string      `json:"mode"`
	Phase            model.Phase `json:"phase"`
	Status           string      `json:"status"`
	Running          bool        `json:"running"`
	RemainingSeconds int         `json:"remainingSeconds"`
	PhaseSeconds     int         `json:"phaseSeconds"`
	Cycles           int         `json:"cycles"`
	Display          string      `json:"display"`
	Progress         float64     `json:"progress"`
}

type MediaView struct {
	Ready   bool              `json:"ready"`
	Muted   bool              `json:"muted"`
	Current media.Target      `json:"current"`
	Player  media.PlayerState `json:"player"`
}

type StateView struct {
	Timer      TimerView          `json:"timer"`
	Goals      []model.Goal       `json:"goals"`
	Stats      model.StatsView    `json:"stats"`
	Sources    model.SourceConfig `json:"sources"`
	Options    model.Options      `json:"options"`
	Modes      []model.Mode       `json:"modes"`
	Media      MediaView          `json:"media"`
	ServerTime time.Time          `json:"serverTime"`
}

func (s *PomodoroService) viewLocked() *StateView {
	state := s.engine.State()
	return &StateView{
		Timer:      timerView(state, s.engine.Cycles()),
		Goals:      s.goals.Goals(),
		Stats:      s.stats.View(),
		Sources:    s.sources,
		Options:    s.engine.Options(),
		Modes:      s.engine.Modes(),
		Media:      s.mediaViewLocked(),
		ServerTime: time.Now().UTC(),
	}
}

func (s *PomodoroService) mediaViewLocked() MediaView {
	return MediaView{
		Ready:   s.media.Ready(),
		Muted:   s.media.Muted(),
		Current: s.media.Current(),
		Player:  s.player.Snapshot(),
	}
}

func timerView(state model.TimerState, cycles int) TimerView {
	status := model.StatusIdle
	if state.Running {
		status = model.StatusRunning
	}
	total := state.Mode.PhaseSeconds(state.Phase)
	return TimerView{
		Mode:             state.Mode.Key,
		Phase:            state.Phase,
		Status:           status,
		Running:          state.Running,
		RemainingSeconds: state.RemainingSeconds,
		PhaseSeconds:     total,
		Cycles:           cycles,
		Display:          FormatClock(state.RemainingSeconds),
		Progress:         progress(total, state.RemainingSeconds),
	}
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func progress(total, remaining int) float64 {
	if total <= 0 {
		return 1
	}
	ratio := float64(total-remaining) / float64(total)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
