package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomosync/internal/clock"
	"pomosync/internal/model"
)

type mediaCall struct {
	action string
	phase  model.Phase
	play   bool
}

type fakeMedia struct {
	calls []mediaCall
}

func (m *fakeMedia) SwitchTo(phase model.Phase, play bool) {
	m.calls = append(m.calls, mediaCall{action: "switch", phase: phase, play: play})
}

func (m *fakeMedia) Play()  { m.calls = append(m.calls, mediaCall{action: "play"}) }
func (m *fakeMedia) Pause() { m.calls = append(m.calls, mediaCall{action: "pause"}) }

func (m *fakeMedia) last() mediaCall {
	if len(m.calls) == 0 {
		return mediaCall{}
	}
	return m.calls[len(m.calls)-1]
}

type engineFixture struct {
	engine    *TimerEngine
	heartbeat *clock.Manual
	stats     *StatsAggregator
	media     *fakeMedia
}

func newEngineFixture(t *testing.T, options model.Options) engineFixture {
	t.Helper()
	heartbeat := clock.NewManual()
	stats := NewStatsAggregator(model.Stats{})
	media := &fakeMedia{}
	engine := NewTimerEngine(model.DefaultModes(), "25_5", heartbeat, stats, media)
	engine.SetOptions(options)
	return engineFixture{engine: engine, heartbeat: heartbeat, stats: stats, media: media}
}

func TestTimerEngineInitialState(t *testing.T) {
	f := newEngineFixture(t, model.DefaultOptions())

	state := f.engine.State()
	assert.Equal(t, model.PhaseFocus, state.Phase)
	assert.False(t, state.Running)
	assert.Equal(t, 1500, state.RemainingSeconds)
	assert.Equal(t, 0, f.engine.Cycles())
	assert.False(t, f.heartbeat.Armed())
}

func TestTimerEngineUnknownInitialModeFallsBack(t *testing.T) {
	engine := NewTimerEngine(nil, "nope", clock.NewManual(), NewStatsAggregator(model.Stats{}), &fakeMedia{})
	assert.Equal(t, model.DefaultModeKey, engine.State().Mode.Key)
}

func TestTimerEngineStartPauseIdempotent(t *testing.T) {
	f := newEngineFixture(t, model.DefaultOptions())

	require.True(t, f.engine.Start())
	assert.False(t, f.engine.Start())
	assert.Equal(t, 1, f.heartbeat.Arms(), "second start must not arm another heartbeat")
	assert.Equal(t, []mediaCall{{action: "play"}}, f.media.calls)

	require.True(t, f.engine.Pause())
	assert.False(t, f.engine.Pause())
	assert.False(t, f.heartbeat.Armed())
	assert.Equal(t, mediaCall{action: "pause"}, f.media.last())
}

func TestTimerEnginePauseKeepsMusicWhenPolicyOff(t *testing.T) {
	options := model.DefaultOptions()
	options.PauseMusicOnPause = false
	f := newEngineFixture(t, options)

	f.engine.Start()
	f.engine.Pause()
	assert.Equal(t, []mediaCall{{action: "play"}}, f.media.calls)
}

func TestTimerEngineTicksAccumulateAndCompleteFocus(t *testing.T) {
	f := newEngineFixture(t, model.DefaultOptions())
	f.engine.Start()

	assert.Equal(t, 1499, f.heartbeat.FireN(1499))
	assert.Equal(t, 1, f.engine.State().RemainingSeconds)
	assert.Equal(t, 0, f.stats.Stats().CompletedPomodoros)

	f.heartbeat.Fire()

	state := f.engine.State()
	assert.Equal(t, model.PhaseBreak, state.Phase)
	assert.Equal(t, 300, state.RemainingSeconds)
	assert.True(t, state.Running, "auto-start keeps running")
	assert.Equal(t, 1500, f.stats.Stats().AccumulatedFocusSeconds)
	assert.Equal(t, 0, f.stats.Stats().AccumulatedBreakSeconds)
	assert.Equal(t, 1, f.stats.Stats().CompletedPomodoros)
	assert.Equal(t, mediaCall{action: "switch", phase: model.PhaseBreak, play: true}, f.media.last())
	assert.Equal(t, 0, f.engine.Cycles())
}

func TestTimerEngineBreakCompletionCountsCycleNotPomodoro(t *testing.T) {
	f := newEngineFixture(t, model.DefaultOptions())
	f.engine.Start()

	f.heartbeat.FireN(1500 + 300)

	state := f.engine.State()
	assert.Equal(t, model.PhaseFocus, state.Phase)
	assert.Equal(t, 1500, state.RemainingSeconds)
	assert.Equal(t, 1, f.engine.Cycles())
	assert.Equal(t, 1, f.stats.Stats().CompletedPomodoros)
	assert.Equal(t, 300, f.stats.Stats().AccumulatedBreakSeconds)
}

func TestTimerEngineAutoStartDisabledStopsAtBoundary(t *testing.T) {
	options := model.DefaultOptions()
	options.AutoStartNext = false
	f := newEngineFixture(t, options)
	f.engine.Start()

	delivered := f.heartbeat.FireN(2000)

	assert.Equal(t, 1500, delivered, "no beat is delivered after the boundary disarms the heartbeat")
	assert.False(t, f.engine.State().Running)
	assert.False(t, f.heartbeat.Armed())
	assert.Equal(t, model.PhaseBreak, f.engine.State().Phase)
	assert.Equal(t, 300, f.engine.State().RemainingSeconds)
	// media switch is requested while still running, before the stop
	assert.Equal(t, mediaCall{action: "switch", phase: model.PhaseBreak, play: true}, f.media.last())
}

func TestTimerEngineBreakWithoutMusicPausesMedia(t *testing.T) {
	options := model.DefaultOptions()
	options.MusicDuringBreak = false
	f := newEngineFixture(t, options)

	f.engine.Skip()
	assert.Equal(t, mediaCall{action: "pause"}, f.media.last())

	f.engine.Skip()
	assert.Equal(t, mediaCall{action: "switch", phase: model.PhaseFocus, play: false}, f.media.last())
}

func TestTimerEngineSkipTwiceFromIdle(t *testing.T) {
	f := newEngineFixture(t, model.DefaultOptions())

	f.engine.Skip()
	assert.Equal(t, model.PhaseBreak, f.engine.State().Phase)
	assert.Equal(t, 1, f.stats.Stats().CompletedPomodoros)
	assert.Equal(t, 0, f.engine.Cycles())

	f.engine.Skip()
	state := f.engine.State()
	assert.Equal(t, model.PhaseFocus, state.Phase)
	assert.Equal(t, 1500, state.RemainingSeconds)
	assert.False(t, state.Running)
	assert.Equal(t, 1, f.engine.Cycles())
	assert.Equal(t, 1, f.stats.Stats().CompletedPomodoros)
	assert.Equal(t, 0, f.stats.Stats().AccumulatedFocusSeconds, "skipped time is not accumulated")
}

func TestTimerEngineTickIgnoredWhenIdle(t *testing.T) {
	f := newEngineFixture(t, model.DefaultOptions())

	f.engine.Tick()
	assert.Equal(t, 1500, f.engine.State().RemainingSeconds)
	assert.Equal(t, model.Stats{}, f.stats.Stats())
}

func TestTimerEngineStaleBeatAfterPauseIsIgnored(t *testing.T) {
	f := newEngineFixture(t, model.DefaultOptions())
	f.engine.Start()

	f.heartbeat.Fire()
	staleGeneration := f.engine.generation
	f.engine.Pause()
	f.engine.Start()

	f.engine.beat(staleGeneration)
	assert.Equal(t, 1499, f.engine.State().RemainingSeconds)

	f.heartbeat.Fire()
	assert.Equal(t, 1498, f.engine.State().RemainingSeconds)
}

func TestTimerEngineResetReturnsToIdleFocus(t *testing.T) {
	f := newEngineFixture(t, model.DefaultOptions())
	f.engine.Start()
	f.engine.Skip()
	f.heartbeat.FireN(10)

	f.engine.Reset()

	state := f.engine.State()
	assert.Equal(t, model.PhaseFocus, state.Phase)
	assert.False(t, state.Running)
	assert.Equal(t, 1500, state.RemainingSeconds)
	assert.False(t, f.heartbeat.Armed())
	assert.Equal(t, 10, f.stats.Stats().AccumulatedBreakSeconds)
}

func TestTimerEngineSetModeMidCountdown(t *testing.T) {
	f := newEngineFixture(t, model.DefaultOptions())
	f.engine.Start()
	f.heartbeat.FireN(100)

	require.True(t, f.engine.SetMode("50_10"))
	state := f.engine.State()
	assert.Equal(t, "50_10", state.Mode.Key)
	assert.Equal(t, model.PhaseFocus, state.Phase)
	assert.Equal(t, 3000, state.RemainingSeconds)
	assert.True(t, state.Running)
	assert.Equal(t, 100, f.stats.Stats().AccumulatedFocusSeconds)

	f.engine.Skip()
	require.True(t, f.engine.SetMode("25_5"))
	assert.Equal(t, 300, f.engine.State().RemainingSeconds, "break duration of the new mode")

	assert.False(t, f.engine.SetMode("90_30"))
	assert.Equal(t, "25_5", f.engine.State().Mode.Key)
}

func TestTimerEngineToggle(t *testing.T) {
	f := newEngineFixture(t, model.DefaultOptions())

	f.engine.Toggle()
	assert.True(t, f.engine.State().Running)
	f.engine.Toggle()
	assert.False(t, f.engine.State().Running)
}

func TestTimerEnginePhaseCompleteHook(t *testing.T) {
	f := newEngineFixture(t, model.DefaultOptions())

	var transitions [][2]model.Phase
	f.engine.OnPhaseComplete(func(completed, entered model.Phase) {
		transitions = append(transitions, [2]model.Phase{completed, entered})
	})

	f.engine.Skip()
	f.engine.Skip()
	assert.Equal(t, [][2]model.Phase{
		{model.PhaseFocus, model.PhaseBreak},
		{model.PhaseBreak, model.PhaseFocus},
	}, transitions)
}
