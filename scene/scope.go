package scene

import (
	"context"
	"sync"
	"time"
)

// Scope owns every resource a mounted scene acquires: its timers, its
// background work and anything registered with Defer. Closing the scope is
// the single teardown path, whether the scene completed normally or was
// swapped away mid-timeline.
type Scope struct {
	sched  Scheduler
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	closed   bool
	posted   []func()
	cleanups []func()
}

// NewScope creates an open scope whose context derives from parent.
func NewScope(parent context.Context) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context is cancelled when the scope closes.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// After schedules fn on the scope's timeline.
func (s *Scope) After(d time.Duration, fn func()) TimerID {
	if s.Closed() {
		return 0
	}
	return s.sched.After(d, fn)
}

// Every schedules fn repeatedly on the scope's timeline.
func (s *Scope) Every(d time.Duration, fn func()) TimerID {
	if s.Closed() {
		return 0
	}
	return s.sched.Every(d, fn)
}

func (s *Scope) Cancel(id TimerID) bool {
	return s.sched.Cancel(id)
}

// Now is the virtual time elapsed since the scene mounted.
func (s *Scope) Now() time.Duration {
	return s.sched.Now()
}

// Go runs work off the game loop. If work returns a non-nil func, that func
// runs on the game loop during the next Advance, provided the scope is still
// open; otherwise it is dropped.
func (s *Scope) Go(work func(ctx context.Context) func()) {
	if s.Closed() || work == nil {
		return
	}
	go func() {
		if apply := work(s.ctx); apply != nil {
			s.post(apply)
		}
	}()
}

func (s *Scope) post(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.posted = append(s.posted, fn)
}

// Defer registers fn to run when the scope closes. Cleanups run in reverse
// registration order. Defer may be called from any goroutine; if the scope
// has already closed, fn runs immediately on the caller's goroutine.
func (s *Scope) Defer(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// Advance runs posted results, then moves the timeline forward by dt.
func (s *Scope) Advance(dt time.Duration) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	posted := s.posted
	s.posted = nil
	s.mu.Unlock()

	for _, fn := range posted {
		if s.Closed() {
			return
		}
		fn()
	}
	if s.Closed() {
		return
	}
	s.sched.Advance(dt)
}

// Pending reports queued timers plus undelivered results.
func (s *Scope) Pending() int {
	s.mu.Lock()
	n := len(s.posted)
	s.mu.Unlock()
	return n + s.sched.Pending()
}

func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close cancels the context, stops the timeline, drops undelivered results
// and runs cleanups. It is safe to call more than once.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.posted = nil
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	s.cancel()
	s.sched.Stop()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
