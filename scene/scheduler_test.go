package scene

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerFiresInDueOrder(t *testing.T) {
	var s Scheduler
	var got []string
	s.After(30*time.Millisecond, func() { got = append(got, "c") })
	s.After(10*time.Millisecond, func() { got = append(got, "a") })
	s.After(10*time.Millisecond, func() { got = append(got, "b") })

	s.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 20*time.Millisecond, s.Now())

	s.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, s.Pending())
}

func TestSchedulerNestedTimersOffsetFromFireTime(t *testing.T) {
	var s Scheduler
	var at []time.Duration
	s.After(10*time.Millisecond, func() {
		at = append(at, s.Now())
		s.After(10*time.Millisecond, func() { at = append(at, s.Now()) })
	})

	s.Advance(time.Second)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, at)
}

func TestSchedulerEveryAndCancel(t *testing.T) {
	var s Scheduler
	n := 0
	id := s.Every(100*time.Millisecond, func() { n++ })

	s.Advance(350 * time.Millisecond)
	assert.Equal(t, 3, n)

	assert.True(t, s.Cancel(id))
	assert.False(t, s.Cancel(id))
	s.Advance(time.Second)
	assert.Equal(t, 3, n)
}

func TestSchedulerStopDropsTimers(t *testing.T) {
	var s Scheduler
	fired := false
	s.After(0, func() { fired = true })
	s.Stop()

	s.Advance(time.Second)
	assert.False(t, fired)
	assert.Zero(t, s.After(0, func() {}))
	assert.True(t, s.Stopped())
}

func TestSchedulerStopInsideCallback(t *testing.T) {
	var s Scheduler
	second := false
	s.After(time.Millisecond, func() { s.Stop() })
	s.After(time.Millisecond, func() { second = true })

	s.Advance(time.Second)
	assert.False(t, second)
}

func TestScopeCloseCancelsEverything(t *testing.T) {
	scope := NewScope(context.Background())
	fired := false
	scope.After(10*time.Millisecond, func() { fired = true })

	var order []int
	scope.Defer(func() { order = append(order, 1) })
	scope.Defer(func() { order = append(order, 2) })

	scope.Close()
	scope.Close()

	scope.Advance(time.Second)
	assert.False(t, fired)
	assert.Equal(t, []int{2, 1}, order)
	assert.Error(t, scope.Context().Err())
	assert.Zero(t, scope.Pending())
}

func TestScopeDeferAfterCloseRunsImmediately(t *testing.T) {
	scope := NewScope(context.Background())
	scope.Close()

	ran := false
	scope.Defer(func() { ran = true })
	assert.True(t, ran)
}

func TestScopeGoDeliversOnAdvance(t *testing.T) {
	scope := NewScope(context.Background())
	defer scope.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	applied := false
	scope.Go(func(ctx context.Context) func() {
		defer wg.Done()
		return func() { applied = true }
	})
	wg.Wait()

	assert.False(t, applied)
	assert.Equal(t, 1, scope.Pending())
	scope.Advance(0)
	assert.True(t, applied)
}

func TestScopeGoDropsResultAfterClose(t *testing.T) {
	scope := NewScope(context.Background())

	release := make(chan struct{})
	done := make(chan struct{})
	applied := false
	scope.Go(func(ctx context.Context) func() {
		defer close(done)
		<-release
		return func() { applied = true }
	})

	scope.Close()
	close(release)
	<-done

	scope.Advance(time.Second)
	assert.False(t, applied)
	assert.Zero(t, scope.Pending())
}

func TestScopeGoSeesCancellation(t *testing.T) {
	scope := NewScope(context.Background())
	errc := make(chan error, 1)
	started := make(chan struct{})
	scope.Go(func(ctx context.Context) func() {
		close(started)
		<-ctx.Done()
		errc <- ctx.Err()
		return nil
	})
	<-started
	scope.Close()

	select {
	case err := <-errc:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("work did not observe cancellation")
	}
}
