// Package capture grabs still frames from the player's camera. The Manager
// guarantees a single open device no matter how many holders there are and
// closes it exactly once when the last holder lets go.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
)

var (
	// ErrDenied means the player, or the OS on their behalf, refused access.
	ErrDenied = errors.New("capture: camera access denied")
	// ErrNoCamera means there is no usable device.
	ErrNoCamera = errors.New("capture: no camera")
)

type Camera interface {
	Open(ctx context.Context) (Stream, error)
}

type Stream interface {
	Still(ctx context.Context) (image.Image, error)
	Close() error
}

// Manager shares one open Stream between holders.
type Manager struct {
	camera Camera
	logger *slog.Logger

	mu     sync.Mutex
	stream Stream
	refs   int
	opens  int
}

func NewManager(camera Camera, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{camera: camera, logger: logger}
}

// Acquire returns a handle on the shared stream, opening the device if no
// one else holds it.
func (m *Manager) Acquire(ctx context.Context) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream == nil {
		if m.camera == nil {
			return nil, ErrNoCamera
		}
		s, err := m.camera.Open(ctx)
		if err != nil {
			return nil, fmt.Errorf("capture: open: %w", err)
		}
		m.stream = s
		m.opens++
		m.logger.Info("capture: camera opened")
	}
	m.refs++
	return &Handle{m: m}, nil
}

func (m *Manager) release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.refs == 0 {
		return
	}
	m.refs--
	if m.refs > 0 || m.stream == nil {
		return
	}
	if err := m.stream.Close(); err != nil {
		m.logger.Warn("capture: close camera", "error", err)
	}
	m.stream = nil
	m.logger.Info("capture: camera closed")
}

// Active reports whether the device is open.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stream != nil
}

// Holders is the number of unreleased handles.
func (m *Manager) Holders() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refs
}

// Opens counts how many times the device has been opened.
func (m *Manager) Opens() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opens
}

// Handle is one holder's claim on the camera.
type Handle struct {
	m    *Manager
	once sync.Once
	done bool
}

// Still grabs a frame. It fails once the handle is released.
func (h *Handle) Still(ctx context.Context) (image.Image, error) {
	h.m.mu.Lock()
	s := h.m.stream
	released := h.done
	h.m.mu.Unlock()
	if released || s == nil {
		return nil, fmt.Errorf("capture: still: handle released")
	}
	img, err := s.Still(ctx)
	if err != nil {
		return nil, fmt.Errorf("capture: still: %w", err)
	}
	return img, nil
}

// Release gives the handle back. Calling it more than once is harmless.
func (h *Handle) Release() {
	h.once.Do(func() {
		h.m.mu.Lock()
		h.done = true
		h.m.mu.Unlock()
		h.m.release()
	})
}
