package clock

import (
	"sync"
	"time"
)

// Heartbeat is a schedulable periodic source. Arm replaces any existing
// heartbeat, so at most one is active at a time.
type Heartbeat interface {
	Arm(beat func())
	Disarm()
}

// Ticker fires beat once per period on its own goroutine, holding lane for
// the duration of each fire. Callers that mutate the same state take the
// same lane, which keeps ticks and commands strictly sequential.
//
// Arm and Disarm may be called while lane is held.
type Ticker struct {
	period time.Duration
	lane   sync.Locker

	mu   sync.Mutex
	stop chan struct{}
}

func NewTicker(period time.Duration, lane sync.Locker) *Ticker {
	if period <= 0 {
		period = time.Second
	}
	return &Ticker{period: period, lane: lane}
}

func (t *Ticker) Arm(beat func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disarmLocked()

	stop := make(chan struct{})
	t.stop = stop
	go t.run(stop, beat)
}

func (t *Ticker) Disarm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disarmLocked()
}

// Armed reports whether a heartbeat is currently scheduled.
func (t *Ticker) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

func (t *Ticker) disarmLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *Ticker) run(stop <-chan struct{}, beat func()) {
	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.lane.Lock()
			select {
			case <-stop:
				// disarmed while waiting for the lane
				t.lane.Unlock()
				return
			default:
			}
			beat()
			t.lane.Unlock()
		}
	}
}

// Manual is a Heartbeat driven by explicit Fire calls.
type Manual struct {
	beat  func()
	arms  int
	fired int
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Arm(beat func()) {
	m.beat = beat
	m.arms++
}

func (m *Manual) Disarm() {
	m.beat = nil
}

func (m *Manual) Armed() bool {
	return m.beat != nil
}

// Arms returns how many times Arm has been called.
func (m *Manual) Arms() int {
	return m.arms
}

// Fire delivers one beat if armed and reports whether it did.
func (m *Manual) Fire() bool {
	if m.beat == nil {
		return false
	}
	m.fired++
	m.beat()
	return true
}

// FireN delivers up to n beats, stopping early if the heartbeat is disarmed.
func (m *Manual) FireN(n int) int {
	delivered := 0
	for i := 0; i < n; i++ {
		if !m.Fire() {
			break
		}
		delivered++
	}
	return delivered
}
