package scenes

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/audio"
	"github.com/milk9111/save/content"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

// typeRate is how many characters per second the typewriter reveals.
const typeRate = 60

// base is embedded by every scene.
type base struct {
	env    scene.Env
	deps   Deps
	script *content.Script
}

func newBase(env scene.Env, deps Deps) base {
	b := base{env: env, deps: deps, script: deps.Content.MustScript(env.ID.String())}
	if b.script.Ambient != "" {
		deps.Cues.PlayAmbient(audio.Track(b.script.Ambient))
	}
	return b
}

// complete applies effect and takes exit, unless the scene has already
// completed.
func (b *base) complete(exit string, effect func()) bool {
	if b.env.Exits.Fired() {
		b.env.Logger.Debug("scenes: already completed", "exit", exit, "taken", b.env.Exits.Taken())
		return false
	}
	if !b.env.Exits.Has(exit) {
		b.env.Logger.Warn("scenes: undeclared exit", "exit", exit)
		return false
	}
	if effect != nil {
		effect()
	}
	return b.env.Exits.Take(exit)
}

func (b *base) say(text string) {
	if text == "" {
		return
	}
	b.deps.Narrator.Say(b.env.Scope.Context(), text, nil)
}

func (b *base) cue(name string) {
	if name != "" {
		b.deps.Cues.PlayCue(audio.Cue(name))
	}
}

func (b *base) facts() content.Facts {
	return content.FactsFor(b.env.Session, b.env.Player)
}

func (b *base) text(key, fallback string) string {
	return b.script.Line(key, fallback)
}

// beats plays a script's beats on the scene's timeline, firing each beat's
// cue and narration as it appears.
type beats struct {
	b      *base
	list   []content.Beat
	reveal *scene.Reveal
	shown  int
	since  time.Duration
	quiet  bool
}

// playBeats reveals the script's beats whose conditions hold for the
// session as it is now.
func (b *base) playBeats(onDone func()) *beats {
	list := b.script.BeatsFor(b.facts())
	bt := &beats{b: b, list: list}
	bt.reveal = scene.NewReveal(b.env.Scope, content.Delays(list), bt.stage, onDone)
	return bt
}

func (bt *beats) stage(i int) {
	bt.shown = i
	bt.since = bt.b.env.Scope.Now()
	if bt.quiet {
		return
	}
	beat := bt.list[i-1]
	bt.b.cue(beat.Cue)
	if beat.Speak {
		bt.b.say(beat.Text)
	}
}

// Skip shows every remaining beat at once without their sounds.
func (bt *beats) Skip() {
	bt.quiet = true
	bt.reveal.Skip()
}

func (bt *beats) Done() bool {
	return bt.reveal.Done()
}

// Visible returns the beats shown so far.
func (bt *beats) Visible() []content.Beat {
	return bt.list[:bt.shown]
}

// Typed returns the latest beat's text as far as the typewriter has got.
// Earlier beats are always complete.
func (bt *beats) Typed(i int) string {
	text := bt.list[i].Text
	if i != bt.shown-1 || bt.quiet {
		return text
	}
	n := int((bt.b.env.Scope.Now() - bt.since).Seconds() * typeRate)
	return ui.Typewriter(text, n+1)
}

// drawBeats draws the visible non-empty beats as a column and returns the y
// below the last one.
func (bt *beats) drawBeats(screen *ebiten.Image, x, y float64, size float64, clr color.Color) float64 {
	face := ui.Face(ui.Mono, size)
	for i, beat := range bt.Visible() {
		if beat.Text == "" {
			continue
		}
		y = ui.DrawLines(screen, []string{bt.Typed(i)}, face, x, y, clr)
	}
	return y
}
