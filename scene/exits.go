package scene

import (
	"log/slog"
	"sort"
)

// Exits is the set of named completion callbacks handed to one mounted
// scene. All names share a single latch: the first successful Take wins and
// every later Take, under any name, is ignored.
type Exits struct {
	scene   string
	targets map[string]func()
	taken   string
	fired   bool
	logger  *slog.Logger
}

func newExits(scene string, targets map[string]func(), logger *slog.Logger) *Exits {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exits{scene: scene, targets: targets, logger: logger}
}

// Take fires the named exit. It reports whether this call completed the
// scene. Unknown names are logged and do not consume the latch.
func (e *Exits) Take(name string) bool {
	if e == nil {
		return false
	}
	target, ok := e.targets[name]
	if !ok {
		e.logger.Warn("scene: unknown exit", "scene", e.scene, "exit", name)
		return false
	}
	if e.fired {
		e.logger.Debug("scene: exit ignored, already completed", "scene", e.scene, "exit", name, "taken", e.taken)
		return false
	}
	e.fired = true
	e.taken = name
	target()
	return true
}

// Fired reports whether the scene has completed.
func (e *Exits) Fired() bool {
	return e != nil && e.fired
}

// Taken returns the name of the exit that completed the scene.
func (e *Exits) Taken() string {
	if e == nil {
		return ""
	}
	return e.taken
}

func (e *Exits) Has(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.targets[name]
	return ok
}

func (e *Exits) Names() []string {
	if e == nil {
		return nil
	}
	names := make([]string, 0, len(e.targets))
	for n := range e.targets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
