package audio

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/save/common"
)

const (
	defaultAmbientVolume = 0.6
	defaultFadeFrames    = 30
	// silence is the volume at which a fade counts as finished.
	silence = 1e-6
)

// voice is the part of *audio.Player the mixer drives.
type voice interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
}

// Mixer plays synthesised cues and a single ambient loop on an ebiten audio
// context. Ambient changes are requested at any time and applied in Update:
// the current loop fades out over FadeFrames ticks, then the pending track
// starts.
type Mixer struct {
	FadeFrames int
	Volume     float64

	loadCue   func(Cue) (voice, error)
	loadTrack func(Track) (voice, error)
	logger    *slog.Logger

	mu        sync.Mutex
	cues      map[Cue]voice
	tracks    map[Track]voice
	requested *Track

	current       Track
	currentVolume float64
	pending       Track
	pendingActive bool
	fadeFrom      float64
	fadeFrame     int
}

var _ Cues = (*Mixer)(nil)

// NewMixer renders every cue lazily into PCM on ctx.
func NewMixer(ctx *audio.Context, logger *slog.Logger) *Mixer {
	return newMixer(
		func(c Cue) (voice, error) {
			spec, ok := cueSpecs[c]
			if !ok {
				return nil, fmt.Errorf("audio: unknown cue %q", c)
			}
			return ctx.NewPlayerFromBytes(synthesize(spec)), nil
		},
		func(t Track) (voice, error) {
			spec, ok := trackSpecs[t]
			if !ok {
				return nil, fmt.Errorf("audio: unknown track %q", t)
			}
			pcm := synthesize(spec)
			loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
			return ctx.NewPlayer(loop)
		},
		logger,
	)
}

func newMixer(loadCue func(Cue) (voice, error), loadTrack func(Track) (voice, error), logger *slog.Logger) *Mixer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mixer{
		FadeFrames: defaultFadeFrames,
		Volume:     defaultAmbientVolume,
		loadCue:    loadCue,
		loadTrack:  loadTrack,
		logger:     logger,
		cues:       make(map[Cue]voice),
		tracks:     make(map[Track]voice),
	}
}

// PlayCue restarts the cue from the beginning.
func (m *Mixer) PlayCue(c Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.cues[c]
	if !ok {
		var err error
		v, err = m.loadCue(c)
		if err != nil {
			m.logger.Warn("audio: load cue", "cue", string(c), "error", err)
			return
		}
		m.cues[c] = v
	}
	if err := v.Rewind(); err != nil {
		m.logger.Warn("audio: rewind cue", "cue", string(c), "error", err)
	}
	v.SetVolume(1)
	v.Play()
}

func (m *Mixer) PlayAmbient(t Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requested = &t
}

func (m *Mixer) StopAmbient() {
	m.PlayAmbient(TrackNone)
}

// Current reports the ambient track playing now, ignoring any fade in
// progress.
func (m *Mixer) Current() Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Update applies the latest ambient request and advances any fade. Call it
// once per tick.
func (m *Mixer) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.requested != nil {
		m.applyRequest(*m.requested)
		m.requested = nil
	}

	if m.pendingActive {
		m.updateTransition()
		return
	}

	if v := m.currentVoice(); v != nil && !v.IsPlaying() {
		_ = v.Rewind()
		v.SetVolume(m.currentVolume)
		v.Play()
	}
}

func (m *Mixer) applyRequest(t Track) {
	if t == TrackNone {
		m.pendingActive = false
		if m.currentVoice() == nil {
			m.current = TrackNone
			m.currentVolume = 0
			return
		}
		m.pending = TrackNone
		m.pendingActive = true
		m.startFade()
		return
	}

	cur := m.currentVoice()
	if !m.pendingActive && m.current == t && cur != nil {
		return
	}
	if m.pendingActive && m.pending == t {
		return
	}

	m.pending = t
	m.pendingActive = true
	if cur == nil {
		m.switchToPending()
		return
	}
	m.startFade()
}

// startFade fades from whatever volume the current loop is at now.
func (m *Mixer) startFade() {
	m.fadeFrom = m.currentVolume
	m.fadeFrame = 0
}

func (m *Mixer) fadeFrames() int {
	if m.FadeFrames <= 0 {
		return defaultFadeFrames
	}
	return m.FadeFrames
}

func (m *Mixer) updateTransition() {
	cur := m.currentVoice()
	if cur == nil {
		m.switchToPending()
		return
	}

	frames := m.fadeFrames()
	m.fadeFrame++
	m.currentVolume = common.Lerp(m.fadeFrom, 0, float64(m.fadeFrame)/float64(frames))
	if m.fadeFrame < frames && m.currentVolume > silence {
		cur.SetVolume(m.currentVolume)
		return
	}

	m.currentVolume = 0
	cur.SetVolume(0)
	cur.Pause()
	_ = cur.Rewind()
	m.current = TrackNone
	m.switchToPending()
}

func (m *Mixer) switchToPending() {
	if !m.pendingActive {
		return
	}
	t := m.pending
	m.pending = TrackNone
	m.pendingActive = false
	m.fadeFrame = 0

	if t == TrackNone {
		m.current = TrackNone
		m.currentVolume = 0
		return
	}

	v, err := m.voiceForTrack(t)
	if err != nil {
		m.logger.Warn("audio: load track", "track", string(t), "error", err)
		m.current = TrackNone
		m.currentVolume = 0
		return
	}

	m.current = t
	m.currentVolume = m.Volume
	_ = v.Rewind()
	v.SetVolume(m.currentVolume)
	v.Play()
}

func (m *Mixer) currentVoice() voice {
	if m.current == TrackNone {
		return nil
	}
	return m.tracks[m.current]
}

func (m *Mixer) voiceForTrack(t Track) (voice, error) {
	if v, ok := m.tracks[t]; ok {
		return v, nil
	}
	v, err := m.loadTrack(t)
	if err != nil {
		return nil, err
	}
	m.tracks[t] = v
	return v, nil
}
