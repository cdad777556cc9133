package scene

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/state"
)

// target is what the orchestrator should be showing.
type target struct {
	id         state.SceneID
	diagnostic bool
}

type mount struct {
	target target
	// failed is set when the diagnostic stands in for a scene whose
	// factory returned an error.
	failed bool
	scene  Scene
	scope  *Scope
	exits  *Exits
}

// Orchestrator maps the session's current scene to a mounted Scene. It is
// the only component that mounts and tears down scenes.
type Orchestrator struct {
	session  *state.Session
	player   *state.Player
	registry *Registry
	logger   *slog.Logger
	ctx      context.Context

	active  *mount
	remount bool
}

// NewOrchestrator wires the stores to the registry. The context is the
// parent of every scene scope.
func NewOrchestrator(ctx context.Context, session *state.Session, player *state.Player, registry *Registry, logger *slog.Logger) *Orchestrator {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		session:  session,
		player:   player,
		registry: registry,
		logger:   logger,
		ctx:      ctx,
	}
}

// Update mounts whatever the session currently points at, advances the
// mounted scene's scope and scene by dt, then remounts if the scene asked to
// leave. A scene that completes never sees another tick.
func (o *Orchestrator) Update(frame input.Frame, dt time.Duration) error {
	o.sync()
	m := o.active
	if m == nil {
		return nil
	}

	m.scope.Advance(dt)
	if o.sync() {
		return nil
	}

	if err := m.scene.Update(frame, dt); err != nil {
		return err
	}
	o.sync()
	return nil
}

func (o *Orchestrator) Draw(screen *ebiten.Image) {
	if o.active == nil {
		return
	}
	o.active.scene.Draw(screen)
}

// Active reports the mounted scene. ok is false while the diagnostic screen
// is showing or before the first Update.
func (o *Orchestrator) Active() (id state.SceneID, ok bool) {
	if o.active == nil || o.active.target.diagnostic || o.active.failed {
		return state.SceneInvalid, false
	}
	return o.active.target.id, true
}

// Diagnostic reports whether the unknown-scene screen is mounted.
func (o *Orchestrator) Diagnostic() bool {
	return o.active != nil && (o.active.target.diagnostic || o.active.failed)
}

// Exits returns the exits of the mounted scene.
func (o *Orchestrator) Exits() *Exits {
	if o.active == nil {
		return nil
	}
	return o.active.exits
}

// Close tears down the mounted scene.
func (o *Orchestrator) Close() {
	if o.active == nil {
		return
	}
	o.active.scope.Close()
	o.active = nil
}

func (o *Orchestrator) resolve() target {
	if o.session.Ending().Valid() {
		if _, ok := o.registry.Lookup(state.SceneEnding); ok {
			return target{id: state.SceneEnding}
		}
	}
	cur := o.session.Current()
	if _, ok := o.registry.Lookup(cur); ok {
		return target{id: cur}
	}
	return target{id: cur, diagnostic: true}
}

// sync remounts when the resolved target differs from what is mounted. It
// reports whether a swap happened.
func (o *Orchestrator) sync() bool {
	want := o.resolve()
	if o.active != nil && o.active.target == want && !o.remount {
		return false
	}
	o.remount = false

	prev := state.SceneInvalid
	if o.active != nil {
		prev = o.active.target.id
		o.active.scope.Close()
		o.active = nil
	}

	if want.diagnostic {
		o.logger.Warn("scene: unknown scene key, showing diagnostic", "key", uint8(want.id), "name", want.id.String(), "previous", prev.String())
		o.active = o.mountDiagnostic(want, fmt.Sprintf("unknown scene key %d (%s)", uint8(want.id), want.id))
		return true
	}

	entry, _ := o.registry.Lookup(want.id)
	scope := NewScope(o.ctx)
	exits := o.buildExits(entry, scope)
	sc, err := entry.Build(Env{
		ID:      entry.ID,
		Mode:    entry.Mode,
		Scope:   scope,
		Exits:   exits,
		Session: o.session,
		Player:  o.player,
		Logger:  o.logger.With("scene", entry.ID.String()),
	})
	if err != nil || sc == nil {
		scope.Close()
		if err == nil {
			err = fmt.Errorf("factory returned no scene")
		}
		o.logger.Error("scene: build failed", "scene", want.id.String(), "error", err)
		o.active = o.mountDiagnostic(want, fmt.Sprintf("scene %s failed to start: %v", want.id, err))
		o.active.failed = true
		return true
	}

	o.logger.Info("scene: mounted", "scene", want.id.String(), "previous", prev.String())
	o.active = &mount{target: want, scene: sc, scope: scope, exits: exits}
	return true
}

// buildExits binds each declared edge to its store write. Taking an exit
// also closes the scope right away so nothing else scheduled by the scene
// can run before the swap.
func (o *Orchestrator) buildExits(entry Entry, scope *Scope) *Exits {
	targets := make(map[string]func(), len(entry.Exits))
	for _, edge := range entry.Exits {
		edge := edge
		targets[edge.Name] = func() {
			if edge.Ending.Valid() {
				o.logger.Info("scene: ending reached", "scene", entry.ID.String(), "exit", edge.Name, "ending", edge.Ending.String())
				o.session.SetEnding(edge.Ending)
			} else {
				o.logger.Info("scene: exit", "scene", entry.ID.String(), "exit", edge.Name, "next", edge.Scene.String())
				o.session.TransitionTo(edge.Scene)
			}
			scope.Close()
		}
	}
	return newExits(entry.ID.String(), targets, o.logger)
}

func (o *Orchestrator) mountDiagnostic(t target, reason string) *mount {
	scope := NewScope(o.ctx)
	return &mount{
		target: t,
		scene:  newDiagnostic(reason, o.recoverToBoot),
		scope:  scope,
		exits:  newExits("diagnostic", nil, o.logger),
	}
}

// recoverToBoot sends the session back to boot and always rebuilds, so a
// boot scene that failed to build gets another try.
func (o *Orchestrator) recoverToBoot() {
	o.logger.Info("scene: recovering to boot")
	o.session.TransitionTo(state.SceneBoot)
	o.remount = true
}

// Warper is the debug-only way to jump between scenes without the active
// scene completing. It is deliberately separate from the Exits path.
type Warper interface {
	Warp(id state.SceneID)
	// WarpKey accepts any string; unrecognised keys leave the session on an
	// unknown scene so the diagnostic path can be exercised.
	WarpKey(raw string)
}

var _ Warper = (*Orchestrator)(nil)

// Warp forces a transition. The mounted scene's scope closes immediately,
// exactly as if it had completed, and a fresh instance is mounted on the next
// Update even when warping to the scene already showing.
func (o *Orchestrator) Warp(id state.SceneID) {
	o.logger.Warn("scene: debug warp", "to", id.String())
	o.session.TransitionTo(id)
	if o.active != nil {
		o.active.scope.Close()
	}
	o.remount = true
}

func (o *Orchestrator) WarpKey(raw string) {
	id, ok := state.ParseSceneID(raw)
	if !ok {
		o.logger.Warn("scene: debug warp to unrecognised key", "key", raw)
		id = state.SceneInvalid
	}
	o.Warp(id)
}
