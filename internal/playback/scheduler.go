package playback

import (
	"context"
	"sync"
	"time"
)

// DefaultTick matches the per-frame delay of animated exports.
const DefaultTick = 300 * time.Millisecond

type State int

const (
	Idle State = iota
	Playing
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	default:
		return "idle"
	}
}

// Token identifies one playback run. The zero Token never matches a run.
type Token uint64

type Scheduler struct {
	mu    sync.Mutex
	tick  time.Duration
	state State
	token Token
	index int
	count int
	stop  chan struct{}
}

func New(tick time.Duration) *Scheduler {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Scheduler{tick: tick}
}

func (s *Scheduler) Tick() time.Duration { return s.tick }

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) Playing() bool { return s.State() == Playing }

// Index is the frame index of the current (or last finished) run.
func (s *Scheduler) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Valid reports whether tok belongs to the most recent run and that run
// was neither cancelled nor replaced. A run that finished normally stays
// valid so its final frame can still be applied.
func (s *Scheduler) Valid(tok Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tok != 0 && tok == s.token
}

// Start begins a fresh run over count frames from index 0, replacing any
// run in progress. done is true when there is nothing to advance to.
func (s *Scheduler) Start(count int) (tok Token, first int, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.haltLocked()
	s.token++
	s.index = 0
	s.count = count
	if count <= 1 {
		s.state = Idle
		return s.token, 0, true
	}
	s.state = Playing
	s.stop = make(chan struct{})
	return s.token, 0, false
}

// Advance moves a run one frame forward. ok is false for a stale token, in
// which case nothing changes. The run ends on the last frame; it never loops.
func (s *Scheduler) Advance(tok Token) (index int, done bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok != s.token || s.state != Playing {
		return s.index, s.state == Idle, false
	}
	s.index++
	if s.index >= s.count-1 {
		s.index = s.count - 1
		s.state = Idle
		return s.index, true, true
	}
	return s.index, false, true
}

// Cancel returns to Idle and invalidates the current token.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.haltLocked()
	s.token++
}

func (s *Scheduler) haltLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.state = Idle
}

// Play runs a self-timed playback over count frames. apply is called from
// the ticker goroutine with each new index after the first; callers check
// Valid(tok) under their own lock before touching shared state. The
// returned channel closes when the run finishes, is replaced, or ctx ends.
func (s *Scheduler) Play(ctx context.Context, count int, apply func(tok Token, index int)) (Token, <-chan struct{}) {
	tok, _, done := s.Start(count)
	finished := make(chan struct{})
	if done {
		close(finished)
		return tok, finished
	}

	s.mu.Lock()
	stop := s.stop
	s.mu.Unlock()

	go func() {
		defer close(finished)
		ticker := time.NewTicker(s.tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.cancelToken(tok)
				return
			case <-stop:
				return
			case <-ticker.C:
				idx, done, ok := s.Advance(tok)
				if !ok {
					return
				}
				apply(tok, idx)
				if done {
					return
				}
			}
		}
	}()
	return tok, finished
}

func (s *Scheduler) cancelToken(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok == s.token {
		s.haltLocked()
		s.token++
	}
}
