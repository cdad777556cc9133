// Package speech voices narration lines. Every Speaker blocks until the
// line has been delivered or ctx is done, so closing a scene's scope stops
// whatever it was saying.
package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// ErrUnavailable is returned by a speaker that cannot run at all on this
// machine, such as a missing binary or an unset endpoint.
var ErrUnavailable = errors.New("speech: unavailable")

type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// SpeakerFunc adapts a function to Speaker.
type SpeakerFunc func(ctx context.Context, text string) error

func (f SpeakerFunc) Speak(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Subtitle "speaks" by waiting roughly as long as it takes to read the
// line. It is the last link of every fallback chain, leaving the on-screen
// text to carry the line.
type Subtitle struct {
	PerRune time.Duration
	Min     time.Duration
}

func NewSubtitle() Subtitle {
	return Subtitle{PerRune: 45 * time.Millisecond, Min: 800 * time.Millisecond}
}

// Duration is how long text is held on screen.
func (s Subtitle) Duration(text string) time.Duration {
	d := time.Duration(utf8.RuneCountInString(strings.TrimSpace(text))) * s.PerRune
	if d < s.Min {
		d = s.Min
	}
	return d
}

func (s Subtitle) Speak(ctx context.Context, text string) error {
	t := time.NewTimer(s.Duration(text))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Fallback tries each speaker in order until one succeeds. Cancellation is
// never treated as a failure to fall back from.
type Fallback struct {
	Speakers []Speaker
	Logger   *slog.Logger
}

func NewFallback(logger *slog.Logger, speakers ...Speaker) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{Speakers: speakers, Logger: logger}
}

func (f *Fallback) Speak(ctx context.Context, text string) error {
	var errs []error
	for i, s := range f.Speakers {
		if s == nil {
			continue
		}
		err := s.Speak(ctx, text)
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		f.Logger.Warn("speech: speaker failed, falling back", "index", i, "error", err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return ErrUnavailable
	}
	return fmt.Errorf("speech: all speakers failed: %w", errors.Join(errs...))
}

// Narrator serialises lines: saying something new cuts off whatever is
// still being said.
type Narrator struct {
	speaker Speaker
	logger  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
	line   string
}

func NewNarrator(speaker Speaker, logger *slog.Logger) *Narrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Narrator{speaker: speaker, logger: logger}
}

// Say speaks text in the background under ctx and returns immediately.
// done, if non-nil, is called from the speaking goroutine with the result.
func (n *Narrator) Say(ctx context.Context, text string, done func(error)) {
	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
	}
	lineCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.seq++
	seq := n.seq
	n.line = text
	n.mu.Unlock()

	go func() {
		err := n.speaker.Speak(lineCtx, text)
		n.mu.Lock()
		if n.seq == seq {
			n.cancel = nil
			n.line = ""
		}
		n.mu.Unlock()
		cancel()
		if err != nil && !errors.Is(err, context.Canceled) {
			n.logger.Warn("speech: line failed", "error", err)
		}
		if done != nil {
			done(err)
		}
	}()
}

// Line returns the text being spoken, or "" when the narrator is quiet.
// The game draws it as a subtitle.
func (n *Narrator) Line() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.line
}

// Stop cuts off the current line, if any.
func (n *Narrator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.line = ""
}
