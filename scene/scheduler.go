package scene

import (
	"sort"
	"time"
)

// minInterval keeps a zero or negative repeat interval from spinning forever
// inside a single Advance.
const minInterval = time.Millisecond

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id    TimerID
	due   time.Duration
	every time.Duration
	seq   uint64
	fn    func()
}

// Scheduler is a virtual-time timer queue owned by a single scene instance.
// Time only moves when Advance is called, so a scene's timeline can be fast
// forwarded deterministically in tests.
//
// Timers fire in due order; timers with the same due time fire in the order
// they were scheduled.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	nextID  TimerID
	timers  []*timer
	stopped bool
}

// Now returns the scheduler's virtual clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, d after the current virtual time.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	return s.add(d, 0, fn)
}

// Every runs fn every d until cancelled.
func (s *Scheduler) Every(d time.Duration, fn func()) TimerID {
	if d < minInterval {
		d = minInterval
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(d, every time.Duration, fn func()) TimerID {
	if s.stopped || fn == nil {
		return 0
	}
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.seq++
	t := &timer{id: s.nextID, due: s.now + d, every: every, seq: s.seq, fn: fn}
	s.insert(t)
	return t.id
}

func (s *Scheduler) insert(t *timer) {
	i := sort.Search(len(s.timers), func(i int) bool {
		o := s.timers[i]
		if o.due != t.due {
			return o.due > t.due
		}
		return o.seq > t.seq
	})
	s.timers = append(s.timers, nil)
	copy(s.timers[i+1:], s.timers[i:])
	s.timers[i] = t
}

// Cancel removes a pending timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves virtual time forward by dt and fires every timer that comes
// due, in order. Callbacks see Now() equal to their own due time, so timers
// they schedule are offset from the moment they fired rather than from the
// end of the frame.
func (s *Scheduler) Advance(dt time.Duration) {
	if s.stopped {
		return
	}
	target := s.now + dt
	for !s.stopped && len(s.timers) > 0 && s.timers[0].due <= target {
		t := s.timers[0]
		s.timers = s.timers[1:]
		s.now = t.due
		if t.every > 0 {
			s.seq++
			t.due += t.every
			t.seq = s.seq
			s.insert(t)
		}
		t.fn()
	}
	if !s.stopped {
		s.now = target
	}
}

// Pending reports how many timers are waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Stop cancels every pending timer and refuses new ones.
func (s *Scheduler) Stop() {
	s.stopped = true
	s.timers = nil
}

func (s *Scheduler) Stopped() bool {
	return s.stopped
}
