package media

import (
	"log/slog"

	"pomosync/internal/model"
)

// Sync keeps the player in step with the timer phase. Until the player
// signals readiness every request is dropped; nothing is queued.
type Sync struct {
	player  Player
	sources func() model.SourceConfig
	logger  *slog.Logger

	ready   bool
	muted   bool
	current Target
}

func NewSync(player Player, sources func() model.SourceConfig, logger *slog.Logger) *Sync {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sync{
		player:  player,
		sources: sources,
		logger:  logger,
		current: unrecognized(),
	}
}

func (s *Sync) Ready() bool {
	return s.ready
}

func (s *Sync) MarkReady() {
	s.ready = true
}

func (s *Sync) Muted() bool {
	return s.muted
}

// Current returns the media most recently loaded.
func (s *Sync) Current() Target {
	return s.current
}

// LoadSource classifies url and loads it. Unrecognized URLs leave the
// current media in place.
func (s *Sync) LoadSource(url string) Target {
	target := Classify(url)
	if !s.available("load") {
		return target
	}

	switch target.Kind {
	case KindVideo:
		s.player.LoadVideo(target.ID)
	case KindPlaylist:
		s.player.LoadPlaylist(target.ID)
	default:
		s.logger.Debug("media source unrecognized, keeping current", "url", url)
		return target
	}
	s.current = target
	return target
}

// SwitchTo loads the configured source for phase and, if play is set,
// requests playback right after the load.
func (s *Sync) SwitchTo(phase model.Phase, play bool) {
	if !s.available("switch") {
		return
	}
	s.LoadSource(s.sources().URLFor(phase))
	if play {
		s.player.Play()
	}
}

func (s *Sync) Play() {
	if !s.available("play") {
		return
	}
	s.player.Play()
}

func (s *Sync) Pause() {
	if !s.available("pause") {
		return
	}
	s.player.Pause()
}

// ToggleMute flips the mute state and returns it.
func (s *Sync) ToggleMute() bool {
	if !s.available("mute") {
		return s.muted
	}
	s.muted = !s.muted
	if s.muted {
		s.player.Mute()
	} else {
		s.player.Unmute()
	}
	return s.muted
}

func (s *Sync) available(request string) bool {
	if s.ready && s.player != nil {
		return true
	}
	s.logger.Debug("media request dropped, player not ready", "request", request)
	return false
}
