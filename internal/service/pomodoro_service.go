package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"pomosync/internal/clock"
	apperrors "pomosync/internal/errors"
	"pomosync/internal/media"
	"pomosync/internal/model"
)

// StateStore persists the goals, stats and sources groups.
type StateStore interface {
	Load(ctx context.Context) model.PersistedState
	Save(ctx context.Context, state model.PersistedState) error
}

// PreferencesStore persists mode and option changes.
type PreferencesStore interface {
	Save(prefs model.Preferences) error
}

// MediaPlayer is a player that also reports its state and accepts load
// acknowledgements from the client rendering it.
type MediaPlayer interface {
	media.Player
	Loaded()
	Snapshot() media.PlayerState
}

type Dependencies struct {
	Store       StateStore
	Preferences PreferencesStore
	Player      MediaPlayer
	Modes       []model.Mode
	Initial     model.Preferences
	Logger      *slog.Logger

	// NewHeartbeat builds the heartbeat; it must run fires under lane.
	NewHeartbeat func(lane sync.Locker) clock.Heartbeat
}

// PomodoroService is the command surface over the engine, goals, stats,
// media and persistence. Its mutex is the single lane every command and
// heartbeat fire runs on.
type PomodoroService struct {
	mu sync.Mutex

	engine  *TimerEngine
	goals   *GoalStore
	stats   *StatsAggregator
	media   *media.Sync
	player  MediaPlayer
	sources model.SourceConfig

	store       StateStore
	preferences PreferencesStore
	logger      *slog.Logger
}

func NewPomodoroService(ctx context.Context, deps Dependencies) *PomodoroService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	newHeartbeat := deps.NewHeartbeat
	if newHeartbeat == nil {
		newHeartbeat = func(lane sync.Locker) clock.Heartbeat {
			return clock.NewTicker(time.Second, lane)
		}
	}
	player := deps.Player
	if player == nil {
		player = media.NewStatePlayer()
	}

	persisted := model.DefaultPersistedState()
	if deps.Store != nil {
		persisted = deps.Store.Load(ctx)
	}

	s := &PomodoroService{
		player:      player,
		sources:     persisted.Sources.WithDefaults(),
		store:       deps.Store,
		preferences: deps.Preferences,
		logger:      logger,
	}
	s.stats = NewStatsAggregator(persisted.Stats)
	s.goals = NewGoalStore(s.stats, persisted.Goals)
	s.media = media.NewSync(player, func() model.SourceConfig { return s.sources }, logger)
	s.engine = NewTimerEngine(deps.Modes, deps.Initial.Mode, newHeartbeat(&s.mu), s.stats, s.media)
	s.engine.SetOptions(deps.Initial.Options)
	s.engine.OnPhaseComplete(s.phaseCompleted)

	logger.Info("pomodoro service ready",
		"mode", s.engine.State().Mode.Key,
		"goals", len(persisted.Goals),
		"completedPomodoros", persisted.Stats.CompletedPomodoros,
	)
	return s
}

func (s *PomodoroService) GetState() *StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *PomodoroService) Start() *StateView {
	return s.timerCommand(func() { s.engine.Start() })
}

func (s *PomodoroService) Pause() *StateView {
	return s.timerCommand(func() { s.engine.Pause() })
}

func (s *PomodoroService) Toggle() *StateView {
	return s.timerCommand(s.engine.Toggle)
}

func (s *PomodoroService) Reset() *StateView {
	return s.timerCommand(s.engine.Reset)
}

func (s *PomodoroService) Skip() *StateView {
	return s.timerCommand(s.engine.Skip)
}

func (s *PomodoroService) timerCommand(command func()) *StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	command()
	return s.viewLocked()
}

func (s *PomodoroService) SwitchMode(key string) (*StateView, *apperrors.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.engine.SetMode(key) {
		return nil, apperrors.BadRequest("invalid_mode", "unknown timer mode "+key)
	}
	s.savePreferencesLocked()
	return s.viewLocked(), nil
}

func (s *PomodoroService) UpdateOptions(options model.Options) *StateView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.SetOptions(options)
	s.savePreferencesLocked()
	return s.viewLocked()
}

func (s *PomodoroService) AddGoal(title string, plannedPomodoros int) *StateView {
	return s.goalCommand(func() bool {
		_, added := s.goals.Add(title, plannedPomodoros)
		return added
	})
}

func (s *PomodoroService) ToggleGoal(id string) *StateView {
	return s.goalCommand(func() bool { return s.goals.Toggle(id) })
}

func (s *PomodoroService) SetGoalChecked(id string, checked bool) *StateView {
	return s.goalCommand(func() bool { return s.goals.SetChecked(id, checked) })
}

func (s *PomodoroService) IncrementGoal(id string) *StateView {
	return s.goalCommand(func() bool { return s.goals.Increment(id) })
}

func (s *PomodoroService) DecrementGoal(id string) *StateView {
	return s.goalCommand(func() bool { return s.goals.Decrement(id) })
}

func (s *PomodoroService) DeleteGoal(id string) *StateView {
	return s.goalCommand(func() bool { return s.goals.Remove(id) })
}

func (s *PomodoroService) goalCommand(mutate func() bool) *StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mutate() {
		s.persistLocked(context.Background())
	}
	return s.viewLocked()
}

func (s *PomodoroService) Stats() model.StatsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.View()
}

// SetSource changes the URL for "work" or "break"; an empty URL restores
// the built-in source. A source for the phase in progress is loaded
// straight away.
func (s *PomodoroService) SetSource(phase, url string) (*StateView, *apperrors.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	url = strings.TrimSpace(url)
	var target model.Phase
	switch phase {
	case "work":
		s.sources.Work = url
		target = model.PhaseFocus
	case "break":
		s.sources.Break = url
		target = model.PhaseBreak
	default:
		return nil, apperrors.BadRequest("invalid_phase", "phase must be one of work, break")
	}
	s.sources = s.sources.WithDefaults()

	state := s.engine.State()
	if state.Phase == target && s.musicAllowedLocked(target) {
		s.media.LoadSource(s.sources.URLFor(target))
		if state.Running {
			s.media.Play()
		}
	}

	s.persistLocked(context.Background())
	return s.viewLocked(), nil
}

// MediaReady marks the player usable and loads the current phase's media.
func (s *PomodoroService) MediaReady() *StateView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.media.Ready() {
		return s.viewLocked()
	}
	s.media.MarkReady()

	state := s.engine.State()
	if s.musicAllowedLocked(state.Phase) {
		s.media.SwitchTo(state.Phase, state.Running)
	}
	s.logger.Info("media player ready", "phase", state.Phase, "running", state.Running)
	return s.viewLocked()
}

func (s *PomodoroService) MediaLoaded() *StateView {
	return s.mediaCommand(s.player.Loaded)
}

func (s *PomodoroService) MediaPlay() *StateView {
	return s.mediaCommand(s.media.Play)
}

func (s *PomodoroService) MediaPause() *StateView {
	return s.mediaCommand(s.media.Pause)
}

func (s *PomodoroService) ToggleMute() *StateView {
	return s.mediaCommand(func() { s.media.ToggleMute() })
}

func (s *PomodoroService) mediaCommand(command func()) *StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	command()
	return s.viewLocked()
}

func (s *PomodoroService) Media() MediaView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mediaViewLocked()
}

// Save writes the durable groups now.
func (s *PomodoroService) Save(ctx context.Context) *apperrors.APIError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveLocked(ctx); err != nil {
		return apperrors.Internal("failed to save state")
	}
	return nil
}

// Shutdown stops the heartbeat and flushes state.
func (s *PomodoroService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Halt()
	return s.saveLocked(ctx)
}

func (s *PomodoroService) phaseCompleted(completed, entered model.Phase) {
	s.logger.Info("phase completed",
		"completed", completed,
		"entered", entered,
		"cycles", s.engine.Cycles(),
		"running", s.engine.State().Running,
	)
	s.persistLocked(context.Background())
}

func (s *PomodoroService) musicAllowedLocked(phase model.Phase) bool {
	return phase != model.PhaseBreak || s.engine.Options().MusicDuringBreak
}

// persistLocked saves opportunistically; failures are logged and absorbed.
func (s *PomodoroService) persistLocked(ctx context.Context) {
	if err := s.saveLocked(ctx); err != nil {
		s.logger.Warn("persist state", "error", err)
	}
}

func (s *PomodoroService) saveLocked(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(ctx, model.PersistedState{
		Goals:   s.goals.Goals(),
		Stats:   s.stats.Stats(),
		Sources: s.sources,
	})
}

func (s *PomodoroService) savePreferencesLocked() {
	if s.preferences == nil {
		return
	}
	prefs := model.Preferences{
		Mode:    s.engine.State().Mode.Key,
		Options: s.engine.Options(),
	}
	if err := s.preferences.Save(prefs); err != nil {
		s.logger.Warn("save preferences", "error", err)
	}
}
