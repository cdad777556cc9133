package scenes

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/audio"
	"github.com/milk9111/save/content"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

const quitHold = time.Second

// ending shows the outcome the session reached. Holding Escape quits the
// game.
type ending struct {
	base
	outcome content.EndingText
	valid   bool
	elapsed time.Duration
	held    time.Duration
	photo   *ebiten.Image
}

func newEnding(env scene.Env, deps Deps) *ending {
	e := &ending{base: newBase(env, deps), elapsed: env.Session.Elapsed()}
	reached := env.Session.Ending()
	e.outcome, e.valid = e.script.Endings[reached.String()]
	if !reached.Valid() {
		e.valid = false
	}
	if !e.valid {
		env.Logger.Warn("scenes: no text for ending", "ending", reached)
		return e
	}
	e.cue(e.outcome.Cue)
	if e.outcome.Ambient != "" {
		deps.Cues.PlayAmbient(audio.Track(e.outcome.Ambient))
	}
	e.say(e.outcome.Title)
	env.Scope.Defer(func() {
		if e.photo != nil {
			e.photo.Deallocate()
		}
	})
	return e
}

func (e *ending) Update(frame input.Frame, dt time.Duration) error {
	if !frame.IsHeld(input.KeyEscape) {
		e.held = 0
		return nil
	}
	e.held += dt
	if e.held >= quitHold {
		e.env.Logger.Info("scenes: quit from ending", "ending", e.env.Session.Ending())
		return ebiten.Termination
	}
	return nil
}

func (e *ending) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Background)
	if !e.valid {
		return
	}
	if img := e.env.Player.Photo(); img != nil {
		if e.photo == nil {
			e.photo = ebiten.NewImageFromImage(img)
		}
		drawPhoto(screen, e.photo, 540, 60, 200)
	}
	ui.DrawCentered(screen, e.outcome.Title, ui.Face(ui.Bold, 44), 260, ui.Corporate)
	y := 340.0
	sans := ui.Face(ui.Sans, 22)
	for _, line := range e.outcome.Lines {
		ui.DrawCentered(screen, line, sans, y, ui.Corporate)
		y += 34
	}

	mono := ui.Face(ui.Mono, 16)
	ui.DrawCentered(screen, fmt.Sprintf(e.text("elapsed", "%s"), e.elapsed.Round(time.Second)), mono, 600, ui.Muted)
	ui.DrawCentered(screen, fmt.Sprintf(e.text("session", "%s"), e.env.Session.ID()), mono, 626, ui.Muted)
	quit := e.text("quit", "")
	if e.held > 0 {
		ui.Bar(screen, 540, 680, 200, 10, float64(e.held)/float64(quitHold), ui.Blood)
	} else {
		ui.DrawCentered(screen, quit, mono, 670, ui.Muted)
	}
}
