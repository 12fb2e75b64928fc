package service

import (
	"pomosync/internal/clock"
	"pomosync/internal/model"
)

// PhaseRecorder receives the statistics events of the countdown.
type PhaseRecorder interface {
	RecordSecond(phase model.Phase)
	RecordPomodoro()
}

// MediaController is the part of media synchronization the engine drives.
type MediaController interface {
	SwitchTo(phase model.Phase, play bool)
	Play()
	Pause()
}

// TimerEngine is the phase state machine: {idle, running} x {focus, break},
// starting idle in focus. It is not safe for concurrent use; callers
// serialize commands and heartbeat fires.
type TimerEngine struct {
	modes   []model.Mode
	state   model.TimerState
	options model.Options
	cycles  int

	heartbeat clock.Heartbeat
	recorder  PhaseRecorder
	media     MediaController

	// generation identifies the armed heartbeat; fires from an older
	// generation are ignored.
	generation uint64

	onPhaseComplete func(completed, entered model.Phase)
}

func NewTimerEngine(
	modes []model.Mode,
	modeKey string,
	heartbeat clock.Heartbeat,
	recorder PhaseRecorder,
	media MediaController,
) *TimerEngine {
	if len(modes) == 0 {
		modes = model.DefaultModes()
	}
	mode, ok := model.LookupMode(modes, modeKey)
	if !ok {
		mode = modes[0]
	}

	return &TimerEngine{
		modes: modes,
		state: model.TimerState{
			Mode:             mode,
			Phase:            model.PhaseFocus,
			RemainingSeconds: mode.FocusSeconds,
		},
		options:   model.DefaultOptions(),
		heartbeat: heartbeat,
		recorder:  recorder,
		media:     media,
	}
}

// OnPhaseComplete registers a hook run after every phase transition.
func (e *TimerEngine) OnPhaseComplete(fn func(completed, entered model.Phase)) {
	e.onPhaseComplete = fn
}

func (e *TimerEngine) SetOptions(options model.Options) {
	e.options = options
}

func (e *TimerEngine) Options() model.Options {
	return e.options
}

func (e *TimerEngine) State() model.TimerState {
	return e.state
}

func (e *TimerEngine) Cycles() int {
	return e.cycles
}

func (e *TimerEngine) Modes() []model.Mode {
	out := make([]model.Mode, len(e.modes))
	copy(out, e.modes)
	return out
}

// Start runs the countdown and resumes playback. It reports false if the
// timer was already running.
func (e *TimerEngine) Start() bool {
	if e.state.Running {
		return false
	}
	e.state.Running = true
	e.arm()
	e.media.Play()
	return true
}

// Pause stops the countdown, keeping the remaining time.
func (e *TimerEngine) Pause() bool {
	if !e.state.Running {
		return false
	}
	e.state.Running = false
	e.disarm()
	if e.options.PauseMusicOnPause {
		e.media.Pause()
	}
	return true
}

// Toggle starts an idle timer or pauses a running one.
func (e *TimerEngine) Toggle() {
	if e.state.Running {
		e.Pause()
		return
	}
	e.Start()
}

// Reset returns to idle focus with a full focus countdown. The cycle
// counter and statistics are kept.
func (e *TimerEngine) Reset() {
	e.state.Running = false
	e.disarm()
	e.state.Phase = model.PhaseFocus
	e.state.RemainingSeconds = e.state.Mode.FocusSeconds
}

// Skip completes the current phase immediately, running or not.
func (e *TimerEngine) Skip() {
	e.completePhase()
}

// SetMode switches durations and restarts the current phase's countdown
// under the new mode. Unknown keys are rejected.
func (e *TimerEngine) SetMode(key string) bool {
	mode, ok := model.LookupMode(e.modes, key)
	if !ok {
		return false
	}
	e.state.Mode = mode
	e.state.RemainingSeconds = mode.PhaseSeconds(e.state.Phase)
	return true
}

// Tick advances a running countdown by one second. The second is counted
// against the current phase before the zero check.
func (e *TimerEngine) Tick() {
	if !e.state.Running {
		return
	}
	if e.state.RemainingSeconds > 0 {
		e.state.RemainingSeconds--
	}
	e.recorder.RecordSecond(e.state.Phase)
	if e.state.RemainingSeconds == 0 {
		e.completePhase()
	}
}

// Halt disarms the heartbeat without changing timer state.
func (e *TimerEngine) Halt() {
	e.disarm()
}

func (e *TimerEngine) completePhase() {
	completed := e.state.Phase
	if completed == model.PhaseFocus {
		e.recorder.RecordPomodoro()
	}

	entered := completed.Next()
	e.state.Phase = entered
	e.state.RemainingSeconds = e.state.Mode.PhaseSeconds(entered)

	if entered == model.PhaseBreak && !e.options.MusicDuringBreak {
		e.media.Pause()
	} else {
		e.media.SwitchTo(entered, e.state.Running)
	}

	if !e.options.AutoStartNext {
		e.state.Running = false
		e.disarm()
	}

	if entered == model.PhaseFocus {
		e.cycles++
	}

	if e.onPhaseComplete != nil {
		e.onPhaseComplete(completed, entered)
	}
}

func (e *TimerEngine) arm() {
	e.generation++
	generation := e.generation
	e.heartbeat.Arm(func() {
		e.beat(generation)
	})
}

func (e *TimerEngine) disarm() {
	e.generation++
	e.heartbeat.Disarm()
}

func (e *TimerEngine) beat(generation uint64) {
	if generation != e.generation || !e.state.Running {
		return
	}
	e.Tick()
}
