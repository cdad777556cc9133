package content

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Library decodes scene scripts on first use and caches them until
// invalidated or until their disk override changes.
type Library struct {
	src    Source
	logger *slog.Logger

	mu      sync.Mutex
	scripts map[string]cached
}

type cached struct {
	script *Script
	// modTime is the disk override's mod time at load; zero when the
	// embedded copy was used.
	modTime time.Time
}

func NewLibrary(src Source, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{src: src, logger: logger, scripts: make(map[string]cached)}
}

// Script returns the decoded script for a scene, such as "boot".
func (l *Library) Script(name string) (*Script, error) {
	key := cacheKey(name)
	l.mu.Lock()
	defer l.mu.Unlock()
	mod, _ := l.src.ModTime(key)
	if c, ok := l.scripts[key]; ok {
		if c.modTime.Equal(mod) {
			return c.script, nil
		}
		l.logger.Info("content: override changed", "name", key)
	}

	s, err := LoadSpec[Script](l.src, key)
	if err != nil {
		return nil, err
	}
	s.Name = key
	if err := s.compile(); err != nil {
		return nil, fmt.Errorf("content: compile %s: %w", key, err)
	}
	l.scripts[key] = cached{script: &s, modTime: mod}
	return &s, nil
}

// MustScript is Script for content that ships embedded. A broken disk
// override falls back to an empty script and is logged.
func (l *Library) MustScript(name string) *Script {
	s, err := l.Script(name)
	if err != nil {
		l.logger.Warn("content: script unavailable", "name", name, "error", err)
		return &Script{Name: cacheKey(name)}
	}
	return s
}

// Program returns a tengo program's source. Programs are not cached; the
// terminal compiles once per mount.
func (l *Library) Program(name string) ([]byte, error) {
	data, err := l.src.LoadProgram(name)
	if err != nil {
		return nil, fmt.Errorf("content: load program %s: %w", name, err)
	}
	return data, nil
}

// Invalidate drops a cached script so the next mount reloads it. path may
// be a full file path as reported by the watcher.
func (l *Library) Invalidate(path string) {
	key := cacheKey(filepath.Base(path))
	l.mu.Lock()
	_, ok := l.scripts[key]
	delete(l.scripts, key)
	l.mu.Unlock()
	if ok {
		l.logger.Info("content: reloaded", "name", key)
	}
}

// Follow invalidates scripts as w reports changes. It returns when w is
// closed.
func (l *Library) Follow(w *Watcher) {
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			l.Invalidate(name)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			l.logger.Warn("content: watch", "error", err)
		}
	}
}

func cacheKey(name string) string {
	return strings.TrimSuffix(strings.TrimSuffix(filepath.ToSlash(name), ".yaml"), ".yml")
}

// LoadSpec decodes a yaml file from src into T.
func LoadSpec[T any](src Source, filename string) (T, error) {
	var zero T
	data, err := src.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("content: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("content: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}
