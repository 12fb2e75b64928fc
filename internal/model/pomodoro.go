package model

type Phase string

const (
	PhaseFocus Phase = "focus"
	PhaseBreak Phase = "break"

	StatusIdle    = "idle"
	StatusRunning = "running"
)

const DefaultModeKey = "25_5"

// Mode is a named pair of focus/break durations.
type Mode struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	FocusSeconds int    `json:"focusSeconds"`
	BreakSeconds int    `json:"breakSeconds"`
}

// PhaseSeconds returns the full duration of phase under the mode.
func (m Mode) PhaseSeconds(phase Phase) int {
	if phase == PhaseBreak {
		return m.BreakSeconds
	}
	return m.FocusSeconds
}

func DefaultModes() []Mode {
	return []Mode{
		{Key: "25_5", Label: "25m focus / 5m break", FocusSeconds: 25 * 60, BreakSeconds: 5 * 60},
		{Key: "50_10", Label: "50m focus / 10m break", FocusSeconds: 50 * 60, BreakSeconds: 10 * 60},
	}
}

func LookupMode(modes []Mode, key string) (Mode, bool) {
	for _, mode := range modes {
		if mode.Key == key {
			return mode, true
		}
	}
	return Mode{}, false
}

func (p Phase) Next() Phase {
	if p == PhaseFocus {
		return PhaseBreak
	}
	return PhaseFocus
}

type TimerState struct {
	Mode             Mode  `json:"mode"`
	Phase            Phase `json:"phase"`
	Running          bool  `json:"running"`
	RemainingSeconds int   `json:"remainingSeconds"`
}

// Options are the user-facing policy toggles.
type Options struct {
	AutoStartNext     bool `json:"autoStartNext"`
	MusicDuringBreak  bool `json:"musicDuringBreak"`
	PauseMusicOnPause bool `json:"pauseMusicOnPause"`
}

func DefaultOptions() Options {
	return Options{
		AutoStartNext:     true,
		MusicDuringBreak:  true,
		PauseMusicOnPause: true,
	}
}
