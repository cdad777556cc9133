package audio

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVoice struct {
	playing bool
	volume  float64
	plays   int
	rewinds int
}

func (v *fakeVoice) Play()                 { v.playing = true; v.plays++ }
func (v *fakeVoice) Pause()                { v.playing = false }
func (v *fakeVoice) Rewind() error         { v.rewinds++; return nil }
func (v *fakeVoice) IsPlaying() bool       { return v.playing }
func (v *fakeVoice) SetVolume(vol float64) { v.volume = vol }

type fakeBank struct {
	cues   map[Cue]*fakeVoice
	tracks map[Track]*fakeVoice
}

func newTestMixer() (*Mixer, *fakeBank) {
	bank := &fakeBank{cues: map[Cue]*fakeVoice{}, tracks: map[Track]*fakeVoice{}}
	m := newMixer(
		func(c Cue) (voice, error) {
			v := &fakeVoice{}
			bank.cues[c] = v
			return v, nil
		},
		func(t Track) (voice, error) {
			if t == "broken" {
				return nil, errors.New("no such track")
			}
			v := &fakeVoice{}
			bank.tracks[t] = v
			return v, nil
		},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	m.FadeFrames = 4
	m.Volume = 0.8
	return m, bank
}

func TestMixerStartsAmbientImmediately(t *testing.T) {
	m, bank := newTestMixer()
	m.PlayAmbient(TrackDrone)
	m.Update()

	require.Contains(t, bank.tracks, TrackDrone)
	assert.True(t, bank.tracks[TrackDrone].playing)
	assert.Equal(t, 0.8, bank.tracks[TrackDrone].volume)
	assert.Equal(t, TrackDrone, m.Current())
}

func TestMixerFadesBetweenTracks(t *testing.T) {
	m, bank := newTestMixer()
	m.PlayAmbient(TrackDrone)
	m.Update()
	drone := bank.tracks[TrackDrone]

	m.PlayAmbient(TrackStatic)
	m.Update()
	assert.InDelta(t, 0.6, drone.volume, 1e-9)
	assert.NotContains(t, bank.tracks, TrackStatic)

	for i := 0; i < 3; i++ {
		m.Update()
	}
	assert.False(t, drone.playing)
	assert.Equal(t, TrackStatic, m.Current())
	assert.True(t, bank.tracks[TrackStatic].playing)
}

func TestMixerFadeIsLinear(t *testing.T) {
	m, bank := newTestMixer()
	m.PlayAmbient(TrackDrone)
	m.Update()
	drone := bank.tracks[TrackDrone]

	m.StopAmbient()
	for _, want := range []float64{0.6, 0.4, 0.2} {
		m.Update()
		assert.InDelta(t, want, drone.volume, 1e-9)
		assert.True(t, drone.playing)
	}
	m.Update()
	assert.Zero(t, drone.volume)
	assert.False(t, drone.playing)
}

func TestMixerRetargetRestartsFadeFromCurrentVolume(t *testing.T) {
	m, bank := newTestMixer()
	m.PlayAmbient(TrackDrone)
	m.Update()
	drone := bank.tracks[TrackDrone]

	m.PlayAmbient(TrackStatic)
	m.Update()
	m.Update()
	require.InDelta(t, 0.4, drone.volume, 1e-9)

	m.PlayAmbient(TrackOffice)
	m.Update()
	assert.InDelta(t, 0.3, drone.volume, 1e-9)
	for i := 0; i < 3; i++ {
		m.Update()
	}
	assert.Equal(t, TrackOffice, m.Current())
	assert.NotContains(t, bank.tracks, TrackStatic)
}

func TestMixerSameTrackIsNoop(t *testing.T) {
	m, bank := newTestMixer()
	m.PlayAmbient(TrackOffice)
	m.Update()
	m.PlayAmbient(TrackOffice)
	m.Update()

	assert.Equal(t, 1, bank.tracks[TrackOffice].plays)
	assert.Equal(t, 0.8, bank.tracks[TrackOffice].volume)
}

func TestMixerStopFadesOut(t *testing.T) {
	m, bank := newTestMixer()
	m.PlayAmbient(TrackHeartbeat)
	m.Update()
	m.StopAmbient()
	for i := 0; i < 4; i++ {
		m.Update()
	}
	assert.False(t, bank.tracks[TrackHeartbeat].playing)
	assert.Equal(t, TrackNone, m.Current())
}

func TestMixerBrokenTrackStaysSilent(t *testing.T) {
	m, _ := newTestMixer()
	m.PlayAmbient("broken")
	m.Update()
	assert.Equal(t, TrackNone, m.Current())
}

func TestMixerCueRewinds(t *testing.T) {
	m, bank := newTestMixer()
	m.PlayCue(CueChime)
	m.PlayCue(CueChime)
	v := bank.cues[CueChime]
	assert.Equal(t, 2, v.plays)
	assert.Equal(t, 2, v.rewinds)
}

func TestSynthesizeLength(t *testing.T) {
	for c, spec := range cueSpecs {
		pcm := synthesize(spec)
		assert.Equal(t, int(spec.seconds*SampleRate)*4, len(pcm), string(c))
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want Format
	}{
		{"wav", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), FormatWAV},
		{"id3", []byte("ID3\x04"), FormatMP3},
		{"mp3 frame", []byte{0xff, 0xfb, 0x90}, FormatMP3},
		{"pcm", []byte{0x00, 0x01, 0x02}, FormatPCM},
		{"empty", nil, FormatPCM},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sniff(tt.in))
		})
	}
}

func TestSilentIsCues(t *testing.T) {
	var c Cues = Silent{}
	c.PlayCue(CueAlarm)
	c.PlayAmbient(TrackDrone)
	c.StopAmbient()
}
