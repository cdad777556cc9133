package scenes

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/capture"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

const introDelay = 2 * time.Second

type desktopStep uint8

const (
	desktopIntro desktopStep = iota
	desktopAsk
	desktopWaiting
	desktopCaptured
	desktopRefused
)

// desktop is the tutorial workstation. It asks for the camera; granting it
// takes a photo kept for the mirror, refusing it gets a diegetic message and
// a way to continue without.
type desktop struct {
	base
	step    desktopStep
	message string
	photo   *ebiten.Image

	ask  *ui.Panel
	next *ui.Panel
}

func newDesktop(env scene.Env, deps Deps) *desktop {
	d := &desktop{base: newBase(env, deps)}
	d.ask = ui.NewChoicePanel(d.text("camera_request", "Allow camera access?"), []ui.Choice{
		{Label: d.text("allow", "Allow"), OnClick: d.allow},
		{Label: d.text("deny", "Deny"), OnClick: d.deny},
	})
	env.Scope.After(introDelay, func() {
		if d.step == desktopIntro {
			d.toAsk()
		}
	})
	env.Scope.Defer(func() {
		if d.photo != nil {
			d.photo.Deallocate()
		}
	})
	return d
}

func (d *desktop) toAsk() {
	d.step = desktopAsk
	d.cue("chime")
	d.say(d.text("camera_request", ""))
}

func (d *desktop) allow() {
	if d.step != desktopAsk {
		return
	}
	d.step = desktopWaiting
	d.message = d.text("waiting", "Waiting for device...")

	scope := d.env.Scope
	cam := d.deps.Camera
	scope.Go(func(ctx context.Context) func() {
		h, err := cam.Acquire(ctx)
		if err != nil {
			return func() { d.refused(err) }
		}
		scope.Defer(h.Release)
		img, err := h.Still(ctx)
		h.Release()
		if err != nil {
			return func() { d.refused(err) }
		}
		return func() { d.captured(img) }
	})
}

func (d *desktop) deny() {
	if d.step != desktopAsk {
		return
	}
	d.refused(capture.ErrDenied)
}

func (d *desktop) captured(img image.Image) {
	d.env.Player.SetPhoto(img)
	d.env.Session.SetWebcamGranted(true)
	d.step = desktopCaptured
	d.message = d.text("captured", "Thank you.")
	d.cue("shutter")
	d.say(d.message)
	d.next = ui.NewChoicePanel("", []ui.Choice{{Label: d.text("continue", "Continue"), OnClick: d.finish}})
}

func (d *desktop) refused(err error) {
	d.env.Logger.Warn("scenes: camera unavailable", "error", err)
	d.env.Session.SetWebcamGranted(false)
	d.step = desktopRefused
	if errors.Is(err, capture.ErrDenied) {
		d.message = d.text("denied", "Camera access was refused.")
	} else {
		d.message = d.text("no_camera", "No camera was found.")
	}
	d.cue("error")
	d.say(d.message)
	d.next = ui.NewChoicePanel("", []ui.Choice{{Label: d.text("continue_without", "Continue without"), OnClick: d.finish}})
}

func (d *desktop) finish() {
	d.complete("done", d.env.Session.CompleteTutorial)
}

func (d *desktop) Update(frame input.Frame, _ time.Duration) error {
	switch d.step {
	case desktopIntro:
		if frame.JustPressed(input.KeyEnter) {
			d.toAsk()
		}
	case desktopAsk:
		switch {
		case frame.JustPressed(input.KeyEnter), frame.JustPressed(input.KeyY):
			d.allow()
		case frame.JustPressed(input.KeyN):
			d.deny()
		default:
			d.ask.Update()
		}
	case desktopCaptured, desktopRefused:
		if frame.JustPressed(input.KeyEnter) {
			d.finish()
			return nil
		}
		d.next.Update()
	}
	return nil
}

func (d *desktop) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Accent)
	ui.Box(screen, 0, 690, 1280, 30, ui.Background, nil)
	ui.DrawText(screen, "S.A.V.E. OS", ui.Face(ui.Mono, 14), 12, 696, ui.Corporate)

	ui.Box(screen, 290, 160, 700, 380, ui.Corporate, ui.Muted)
	sans := ui.Face(ui.Sans, 22)
	ui.DrawText(screen, d.text("welcome", ""), ui.Face(ui.Bold, 26), 320, 190, ui.Background)
	ui.DrawText(screen, d.text("tutorial", ""), sans, 320, 240, ui.Background)

	switch d.step {
	case desktopAsk:
		ui.DrawText(screen, "[Y] allow   [N] deny", ui.Face(ui.Mono, 16), 320, 300, ui.Muted)
		d.ask.Draw(screen)
	case desktopWaiting:
		ui.DrawText(screen, d.message, sans, 320, 300, ui.Muted)
	case desktopCaptured:
		ui.DrawText(screen, d.message, sans, 320, 300, ui.Background)
		if img := d.env.Player.Photo(); img != nil {
			if d.photo == nil {
				d.photo = ebiten.NewImageFromImage(img)
			}
			drawPhoto(screen, d.photo, 800, 300, 160)
		}
		d.next.Draw(screen)
	case desktopRefused:
		ui.DrawText(screen, d.message, sans, 320, 300, ui.Blood)
		d.next.Draw(screen)
	}
}

// drawPhoto draws img scaled to width w with its top-left at (x, y).
func drawPhoto(screen, img *ebiten.Image, x, y, w float64) {
	b := img.Bounds()
	if b.Dx() == 0 {
		return
	}
	s := w / float64(b.Dx())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	screen.DrawImage(img, op)
}
