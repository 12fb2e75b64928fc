package media

import "sync"

// Player is the playback capability the core drives. Implementations may
// apply requests asynchronously.
type Player interface {
	LoadVideo(id string)
	LoadPlaylist(id string)
	Play()
	Pause()
	Mute()
	Unmute()
}

// PlayerState is the desired state of the embedded player as published to
// the browser widget that renders it.
type PlayerState struct {
	Version     int    `json:"version"`
	Kind        Kind   `json:"kind,omitempty"`
	MediaID     string `json:"mediaId,omitempty"`
	Playing     bool   `json:"playing"`
	Muted       bool   `json:"muted"`
	Loading     bool   `json:"loading"`
	PendingPlay bool   `json:"pendingPlay"`
}

// StatePlayer records playback requests as a versioned PlayerState. A Play
// issued while media is loading is held until Loaded is acknowledged.
type StatePlayer struct {
	mu    sync.Mutex
	state PlayerState
}

func NewStatePlayer() *StatePlayer {
	return &StatePlayer{}
}

func (p *StatePlayer) LoadVideo(id string) {
	p.load(KindVideo, id)
}

func (p *StatePlayer) LoadPlaylist(id string) {
	p.load(KindPlaylist, id)
}

func (p *StatePlayer) load(kind Kind, id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Kind = kind
	p.state.MediaID = id
	p.state.Loading = true
	p.state.Playing = false
	p.state.PendingPlay = false
	p.state.Version++
}

func (p *StatePlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.Loading {
		p.state.PendingPlay = true
	} else {
		p.state.Playing = true
	}
	p.state.Version++
}

func (p *StatePlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Playing = false
	p.state.PendingPlay = false
	p.state.Version++
}

func (p *StatePlayer) Mute() {
	p.setMuted(true)
}

func (p *StatePlayer) Unmute() {
	p.setMuted(false)
}

func (p *StatePlayer) setMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Muted = muted
	p.state.Version++
}

// Loaded acknowledges that the last requested media is attached.
func (p *StatePlayer) Loaded() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.Loading {
		return
	}
	p.state.Loading = false
	if p.state.PendingPlay {
		p.state.Playing = true
		p.state.PendingPlay = false
	}
	p.state.Version++
}

func (p *StatePlayer) Snapshot() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
