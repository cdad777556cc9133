package scene

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = time.Second / 60

type tally struct {
	mounts   map[state.SceneID]int
	closes   map[state.SceneID]int
	updates  map[state.SceneID]int
	finishes map[state.SceneID]int
}

func newTally() *tally {
	return &tally{
		mounts:   map[state.SceneID]int{},
		closes:   map[state.SceneID]int{},
		updates:  map[state.SceneID]int{},
		finishes: map[state.SceneID]int{},
	}
}

type fakeScene struct {
	id    state.SceneID
	tally *tally
	exits *Exits
	next  string
}

func (f *fakeScene) Update(frame input.Frame, _ time.Duration) error {
	f.tally.updates[f.id]++
	if f.next != "" && frame.JustPressed(input.KeyEnter) {
		f.exits.Take(f.next)
	}
	return nil
}

func (f *fakeScene) Draw(*ebiten.Image) {}

// timed builds a scene that completes via exit after d, then again via
// keyboard, to exercise the one-shot latch.
func (p *tally) timed(d time.Duration, exit string) Factory {
	return func(env Env) (Scene, error) {
		p.mounts[env.ID]++
		env.Scope.Defer(func() { p.closes[env.ID]++ })
		env.Scope.After(d, func() {
			if env.Exits.Take(exit) {
				p.finishes[env.ID]++
			}
		})
		env.Scope.After(2*d, func() {
			if env.Exits.Take(exit) {
				p.finishes[env.ID]++
			}
		})
		return &fakeScene{id: env.ID, tally: p, exits: env.Exits, next: exit}, nil
	}
}

func (p *tally) idle() Factory {
	return func(env Env) (Scene, error) {
		p.mounts[env.ID]++
		env.Scope.Defer(func() { p.closes[env.ID]++ })
		return &fakeScene{id: env.ID, tally: p, exits: env.Exits}, nil
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrchestrator(t *testing.T, reg *Registry) (*Orchestrator, *state.Session) {
	t.Helper()
	session := state.NewSession(nil)
	o := NewOrchestrator(context.Background(), session, state.NewPlayer(), reg, quietLogger())
	t.Cleanup(o.Close)
	return o, session
}

func run(o *Orchestrator, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		_ = o.Update(input.Frame{}, tick)
	}
}

func TestOrchestratorFollowsExits(t *testing.T) {
	p := newTally()
	reg := NewRegistry()
	reg.MustRegister(Entry{ID: state.SceneOpening, Exits: []Edge{To("begin", state.ScenePrologue)}, Build: p.timed(time.Second, "begin")})
	reg.MustRegister(Entry{ID: state.ScenePrologue, Exits: []Edge{End("done", state.EndingFreedom)}, Build: p.timed(time.Second, "done")})
	reg.MustRegister(Entry{ID: state.SceneEnding, Build: p.idle()})

	o, session := newTestOrchestrator(t, reg)

	run(o, tick)
	id, ok := o.Active()
	require.True(t, ok)
	assert.Equal(t, state.SceneOpening, id)

	run(o, 5*time.Second)
	assert.Equal(t, state.EndingFreedom, session.Ending())
	assert.Equal(t, state.SceneEnding, session.Current())
	id, _ = o.Active()
	assert.Equal(t, state.SceneEnding, id)

	assert.Equal(t, 1, p.finishes[state.SceneOpening])
	assert.Equal(t, 1, p.finishes[state.ScenePrologue])
	assert.Equal(t, 1, p.mounts[state.ScenePrologue])
	assert.Equal(t, 1, p.closes[state.SceneOpening])
	assert.Equal(t, 1, p.closes[state.ScenePrologue])
}

func TestOrchestratorNoUpdateAfterCompletion(t *testing.T) {
	p := newTally()
	reg := NewRegistry()
	reg.MustRegister(Entry{ID: state.SceneOpening, Exits: []Edge{To("begin", state.ScenePrologue)}, Build: p.timed(time.Hour, "begin")})
	reg.MustRegister(Entry{ID: state.ScenePrologue, Build: p.idle()})

	o, session := newTestOrchestrator(t, reg)
	run(o, tick)
	require.NoError(t, o.Update(input.Press(input.KeyEnter), tick))

	assert.Equal(t, state.ScenePrologue, session.Current())
	updates := p.updates[state.SceneOpening]
	run(o, time.Second)
	assert.Equal(t, updates, p.updates[state.SceneOpening])
	assert.Equal(t, 1, p.closes[state.SceneOpening])
}

func TestOrchestratorEndingTakesPriority(t *testing.T) {
	p := newTally()
	reg := NewRegistry()
	reg.MustRegister(Entry{ID: state.SceneTerminal, Build: p.idle()})
	reg.MustRegister(Entry{ID: state.SceneEnding, Build: p.idle()})

	o, session := newTestOrchestrator(t, reg)
	session.TransitionTo(state.SceneTerminal)
	run(o, tick)

	session.SetEnding(state.EndingDefiance)
	session.TransitionTo(state.SceneTerminal)
	run(o, tick)

	id, _ := o.Active()
	assert.Equal(t, state.SceneEnding, id)
	assert.Equal(t, 1, p.closes[state.SceneTerminal])
}

func TestOrchestratorUnknownSceneShowsDiagnostic(t *testing.T) {
	p := newTally()
	reg := NewRegistry()
	reg.MustRegister(Entry{ID: state.SceneBoot, Build: p.idle()})

	o, session := newTestOrchestrator(t, reg)
	session.TransitionTo(state.SceneID(200))
	run(o, tick)

	assert.True(t, o.Diagnostic())
	_, ok := o.Active()
	assert.False(t, ok)

	require.NoError(t, o.Update(input.Press(input.KeyEnter), tick))
	assert.Equal(t, state.SceneBoot, session.Current())
	id, ok := o.Active()
	require.True(t, ok)
	assert.Equal(t, state.SceneBoot, id)
}

func TestOrchestratorBuildErrorShowsDiagnostic(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(Entry{ID: state.SceneOpening, Build: func(Env) (Scene, error) {
		return nil, errors.New("no camera")
	}})

	o, _ := newTestOrchestrator(t, reg)
	run(o, tick)
	assert.True(t, o.Diagnostic())
}

func TestOrchestratorRecoveryRetriesFailedBoot(t *testing.T) {
	p := newTally()
	builds := 0
	reg := NewRegistry()
	reg.MustRegister(Entry{ID: state.SceneBoot, Build: func(env Env) (Scene, error) {
		builds++
		if builds == 1 {
			return nil, errors.New("device busy")
		}
		return p.idle()(env)
	}})

	o, session := newTestOrchestrator(t, reg)
	session.TransitionTo(state.SceneBoot)
	run(o, tick)
	require.True(t, o.Diagnostic())

	require.NoError(t, o.Update(input.Press(input.KeyEnter), tick))
	assert.False(t, o.Diagnostic())
	id, ok := o.Active()
	require.True(t, ok)
	assert.Equal(t, state.SceneBoot, id)
	assert.Equal(t, 2, builds)
	assert.Equal(t, 1, p.mounts[state.SceneBoot])
}

func TestOrchestratorEndingSurvivesCorruptKey(t *testing.T) {
	p := newTally()
	reg := NewRegistry()
	reg.MustRegister(Entry{ID: state.SceneTerminal, Build: p.idle()})
	reg.MustRegister(Entry{ID: state.SceneEnding, Build: p.idle()})

	o, session := newTestOrchestrator(t, reg)
	session.TransitionTo(state.SceneTerminal)
	run(o, tick)

	require.True(t, session.SetEnding(state.EndingBadA))
	o.WarpKey("\x00corrupt")
	run(o, tick)

	assert.Equal(t, state.SceneInvalid, session.Current())
	id, ok := o.Active()
	require.True(t, ok)
	assert.Equal(t, state.SceneEnding, id)
	assert.False(t, o.Diagnostic())
}

func TestWarpTearsDownAndRemounts(t *testing.T) {
	p := newTally()
	reg := NewRegistry()
	reg.MustRegister(Entry{ID: state.SceneOpening, Exits: []Edge{To("begin", state.ScenePrologue)}, Build: p.timed(time.Second, "begin")})
	reg.MustRegister(Entry{ID: state.ScenePrologue, Build: p.idle()})

	o, session := newTestOrchestrator(t, reg)
	run(o, tick)

	o.Warp(state.SceneOpening)
	assert.Equal(t, 1, p.closes[state.SceneOpening])
	run(o, tick)
	assert.Equal(t, 2, p.mounts[state.SceneOpening])

	o.WarpKey("prologue")
	run(o, 5*time.Second)
	assert.Equal(t, 2, p.closes[state.SceneOpening])
	assert.Zero(t, p.finishes[state.SceneOpening])
	assert.Equal(t, state.ScenePrologue, session.Current())

	o.WarpKey("not-a-scene")
	run(o, tick)
	assert.Equal(t, state.SceneInvalid, session.Current())
	assert.True(t, o.Diagnostic())
	assert.Equal(t, 1, p.closes[state.ScenePrologue])
}
