// Package audio plays the game's sound: one-shot cues, a looping ambient
// bed with fades between tracks, and decoded speech clips.
package audio

// SampleRate is the rate of the shared ebiten audio context.
const SampleRate = 44100

// Cue is a one-shot sound effect.
type Cue string

const (
	CueClick   Cue = "click"
	CueChime   Cue = "chime"
	CueError   Cue = "error"
	CueGlitch  Cue = "glitch"
	CueAlarm   Cue = "alarm"
	CueShutter Cue = "shutter"
	CueHit     Cue = "hit"
)

// Track is a looping ambient bed. The empty track is silence.
type Track string

const (
	TrackNone      Track = ""
	TrackOffice    Track = "office"
	TrackDrone     Track = "drone"
	TrackStatic    Track = "static"
	TrackHeartbeat Track = "heartbeat"
)

// Cues is what scenes use to make noise.
type Cues interface {
	PlayCue(c Cue)
	// PlayAmbient fades to t. Asking for the track already playing does
	// nothing.
	PlayAmbient(t Track)
	StopAmbient()
}

// Silent drops everything. It stands in when the audio device is missing
// or the game runs muted.
type Silent struct{}

func (Silent) PlayCue(Cue)       {}
func (Silent) PlayAmbient(Track) {}
func (Silent) StopAmbient()      {}

var _ Cues = Silent{}
