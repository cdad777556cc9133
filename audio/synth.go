package audio

import (
	"encoding/binary"
	"math"
)

// voiceSpec describes one synthesised sound as a sum of partials with an
// attack/release envelope and optional noise.
type voiceSpec struct {
	seconds  float64
	partials []partial
	noise    float64
	attack   float64
	release  float64
	// pulse gates the sound on and off at this rate in Hz.
	pulse float64
	gain  float64
}

type partial struct {
	freq  float64
	amp   float64
	sweep float64 // Hz per second
}

var cueSpecs = map[Cue]voiceSpec{
	CueClick:   {seconds: 0.04, partials: []partial{{freq: 1800, amp: 1}}, noise: 0.3, attack: 0.001, release: 0.03, gain: 0.4},
	CueChime:   {seconds: 0.9, partials: []partial{{freq: 880, amp: 1}, {freq: 1320, amp: 0.5}, {freq: 1760, amp: 0.25}}, attack: 0.005, release: 0.8, gain: 0.35},
	CueError:   {seconds: 0.35, partials: []partial{{freq: 220, amp: 1}, {freq: 233, amp: 1}}, attack: 0.005, release: 0.1, gain: 0.4},
	CueGlitch:  {seconds: 0.5, partials: []partial{{freq: 90, amp: 1, sweep: 1600}}, noise: 0.8, attack: 0.001, release: 0.05, pulse: 23, gain: 0.45},
	CueAlarm:   {seconds: 1.2, partials: []partial{{freq: 660, amp: 1}, {freq: 990, amp: 0.4}}, attack: 0.01, release: 0.1, pulse: 4, gain: 0.4},
	CueShutter: {seconds: 0.12, noise: 1, attack: 0.001, release: 0.1, gain: 0.5},
	CueHit:     {seconds: 0.2, partials: []partial{{freq: 160, amp: 1, sweep: -400}}, noise: 0.4, attack: 0.001, release: 0.18, gain: 0.5},
}

var trackSpecs = map[Track]voiceSpec{
	TrackOffice:    {seconds: 4, partials: []partial{{freq: 60, amp: 1}, {freq: 120, amp: 0.4}}, noise: 0.05, gain: 0.12},
	TrackDrone:     {seconds: 6, partials: []partial{{freq: 55, amp: 1}, {freq: 55.7, amp: 1}, {freq: 82.5, amp: 0.3}}, gain: 0.2},
	TrackStatic:    {seconds: 3, noise: 1, gain: 0.08},
	TrackHeartbeat: {seconds: 1, partials: []partial{{freq: 48, amp: 1}}, pulse: 1.1, gain: 0.5},
}

// synthesize renders spec as 16-bit little-endian stereo PCM, the format
// ebiten's audio context consumes directly.
func synthesize(spec voiceSpec) []byte {
	n := int(spec.seconds * SampleRate)
	out := make([]byte, n*4)
	noise := uint32(0x9e3779b9)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		var v float64
		for _, p := range spec.partials {
			f := p.freq + p.sweep*t/2
			v += p.amp * math.Sin(2*math.Pi*f*t)
		}
		if spec.noise > 0 {
			noise ^= noise << 13
			noise ^= noise >> 17
			noise ^= noise << 5
			v += spec.noise * (float64(noise)/math.MaxUint32*2 - 1)
		}
		v *= envelope(spec, t)
		if spec.pulse > 0 && math.Sin(2*math.Pi*spec.pulse*t) < 0 {
			v = 0
		}
		s := int16(math.Max(-1, math.Min(1, v*spec.gain)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}

func envelope(spec voiceSpec, t float64) float64 {
	e := 1.0
	if spec.attack > 0 && t < spec.attack {
		e = t / spec.attack
	}
	if spec.release > 0 {
		if left := spec.seconds - t; left < spec.release {
			e *= left / spec.release
		}
	}
	return e
}
