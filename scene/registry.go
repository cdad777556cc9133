package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/state"
)

// Scene is one mounted full-screen narrative unit.
type Scene interface {
	// Update advances the scene by one tick. dt is the tick length; the
	// scene's Scope has already been advanced by the same amount.
	Update(frame input.Frame, dt time.Duration) error
	Draw(screen *ebiten.Image)
}

// Mode carries per-entry variant flags. One component can serve several
// scene ids with different modes.
type Mode struct {
	// Recovery switches the boot sequence into its lockdown variant.
	Recovery bool
}

// Env is everything the orchestrator hands a scene factory for one mount.
type Env struct {
	ID      state.SceneID
	Mode    Mode
	Scope   *Scope
	Exits   *Exits
	Session *state.Session
	Player  *state.Player
	Logger  *slog.Logger
}

// Factory builds a scene for one mount.
type Factory func(env Env) (Scene, error)

// Edge is a declared exit: either a transition to Scene or a terminal Ending.
type Edge struct {
	Name   string
	Scene  state.SceneID
	Ending state.Ending
}

// To declares an exit that moves to another scene.
func To(name string, target state.SceneID) Edge {
	return Edge{Name: name, Scene: target}
}

// End declares an exit that records an ending.
func End(name string, ending state.Ending) Edge {
	return Edge{Name: name, Ending: ending}
}

func (e Edge) validate() error {
	if e.Name == "" {
		return errors.New("edge has no name")
	}
	switch {
	case e.Scene.Valid() && e.Ending == state.EndingNone:
		return nil
	case e.Scene == state.SceneInvalid && e.Ending.Valid():
		return nil
	}
	return fmt.Errorf("edge %q must name exactly one scene or ending", e.Name)
}

// Entry is one row of the transition table.
type Entry struct {
	ID    state.SceneID
	Mode  Mode
	Exits []Edge
	Build Factory
}

var (
	ErrInvalidScene   = errors.New("scene: invalid scene id")
	ErrDuplicateScene = errors.New("scene: duplicate scene id")
	ErrMissingScene   = errors.New("scene: scene not registered")
)

// Registry maps every SceneID to its factory and declared exits.
type Registry struct {
	entries map[state.SceneID]Entry
	order   []state.SceneID
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[state.SceneID]Entry)}
}

// Register adds an entry. Exits are checked for shape here; targets are
// checked by Validate once every entry is in.
func (r *Registry) Register(e Entry) error {
	if !e.ID.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidScene, e.ID)
	}
	if _, ok := r.entries[e.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateScene, e.ID)
	}
	if e.Build == nil {
		return fmt.Errorf("scene: register %s: nil factory", e.ID)
	}
	seen := make(map[string]bool, len(e.Exits))
	for _, edge := range e.Exits {
		if err := edge.validate(); err != nil {
			return fmt.Errorf("scene: register %s: %w", e.ID, err)
		}
		if seen[edge.Name] {
			return fmt.Errorf("scene: register %s: duplicate exit %q", e.ID, edge.Name)
		}
		seen[edge.Name] = true
	}
	r.entries[e.ID] = e
	r.order = append(r.order, e.ID)
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (r *Registry) MustRegister(e Entry) {
	if err := r.Register(e); err != nil {
		panic(err)
	}
}

func (r *Registry) Lookup(id state.SceneID) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Entries returns the table in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// Validate checks that every scene id has an entry and every exit target is
// registered.
func (r *Registry) Validate() error {
	var errs []error
	for _, id := range state.AllScenes() {
		if _, ok := r.entries[id]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingScene, id))
		}
	}
	for _, id := range r.order {
		for _, edge := range r.entries[id].Exits {
			if edge.Scene == state.SceneInvalid {
				continue
			}
			if _, ok := r.entries[edge.Scene]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s exit %q targets %s", ErrMissingScene, id, edge.Name, edge.Scene))
			}
		}
	}
	return errors.Join(errs...)
}
