package scenes

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/minigame"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

const (
	workspaceQuota = 6
	wrapUpDelay    = time.Second
)

var binKeys = []input.Key{input.Key1, input.Key2, input.Key3, input.Key4}

// workspace is the emotion sorter. Files are dragged onto bins, or sorted
// with 1-4. Every sorted file counts toward the session's tally.
type workspace struct {
	base
	game     minigame.Sorter
	feedback string
	correct  bool
}

func newWorkspace(env scene.Env, deps Deps) *workspace {
	w := &workspace{base: newBase(env, deps)}

	items := make([]minigame.SortItem, 0, len(w.script.Items))
	for _, it := range w.script.Items {
		items = append(items, minigame.SortItem{Label: it.Label, Category: it.Category})
	}
	cats := w.script.Categories
	bins := make([]minigame.Bin, 0, len(cats))
	const binW, binH, gap = 240.0, 140.0, 40.0
	left := (1280 - float64(len(cats))*binW - float64(len(cats)-1)*gap) / 2
	for i, c := range cats {
		x := left + float64(i)*(binW+gap)
		bins = append(bins, minigame.Bin{Category: c, Box: cp.BB{L: x, B: 480, R: x + binW, T: 480 + binH}})
	}
	card := cp.BB{L: 440, B: 180, R: 840, T: 330}
	w.game = minigame.NewSorter(items, bins, card, workspaceQuota).Start()
	if w.game.Phase.Terminal() {
		// Nothing to sort.
		env.Logger.Warn("scenes: workspace has no files", "items", len(items))
		w.wrapUp()
	}
	return w
}

func (w *workspace) wrapUp() {
	w.env.Scope.After(wrapUpDelay, func() { w.complete("done", nil) })
}

func (w *workspace) actions(frame input.Frame) []minigame.SorterAction {
	for i, k := range binKeys {
		if i < len(w.game.Bins) && frame.JustPressed(k) {
			c := w.game.Card.Center()
			b := w.game.Bins[i].Box.Center()
			return []minigame.SorterAction{minigame.Grab(c.X, c.Y), minigame.Drop(b.X, b.Y)}
		}
	}
	var acts []minigame.SorterAction
	switch {
	case frame.MouseClicked:
		acts = append(acts, minigame.Grab(frame.MouseX, frame.MouseY))
	case frame.MouseReleased:
		acts = append(acts, minigame.Drop(frame.MouseX, frame.MouseY))
	case frame.MouseDown:
		acts = append(acts, minigame.Drag(frame.MouseX, frame.MouseY))
	}
	return acts
}

func (w *workspace) Update(frame input.Frame, _ time.Duration) error {
	if w.game.Phase.Terminal() {
		return nil
	}
	w.game = w.game.Step(w.actions(frame))
	for _, res := range w.game.Results {
		w.env.Session.IncrementFilesProcessed()
		w.correct = res.Correct
		if res.Correct {
			w.feedback = w.text("correct", "Sorted.")
			w.cue("click")
		} else {
			w.feedback = w.text("wrong", "Misfiled.")
			w.cue("error")
		}
	}
	if w.game.Phase == minigame.PhaseWon {
		w.cue("chime")
		w.wrapUp()
	}
	return nil
}

func (w *workspace) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Background)
	ui.DrawCentered(screen, w.script.Title, ui.Face(ui.Bold, 30), 40, ui.Corporate)
	ui.DrawCentered(screen, w.text("instructions", ""), ui.Face(ui.Sans, 18), 90, ui.Muted)
	ui.DrawText(screen, fmt.Sprintf(w.text("quota", "%d / %d"), w.game.Sorted, w.game.Quota), ui.Face(ui.Mono, 18), 40, 40, ui.Phosphor)

	c := w.game.Card
	ui.Box(screen, c.L, c.B, c.R-c.L, c.T-c.B, nil, ui.Muted)
	if item, ok := w.game.Current(); ok {
		x, y := c.L+20, c.B+60
		if w.game.Holding {
			x, y = w.game.Held.X-180, w.game.Held.Y-20
		}
		ui.Box(screen, x-10, y-20, 380, 70, ui.Corporate, nil)
		ui.DrawText(screen, item.Label, ui.Face(ui.Mono, 18), x, y, ui.Background)
	}

	for i, b := range w.game.Bins {
		bb := b.Box
		ui.Box(screen, bb.L, bb.B, bb.R-bb.L, bb.T-bb.B, nil, ui.Accent)
		ui.DrawText(screen, fmt.Sprintf("%d  %s", i+1, b.Category), ui.Face(ui.Bold, 22), bb.L+20, bb.B+55, ui.Corporate)
	}

	if w.feedback != "" {
		clr := ui.Phosphor
		if !w.correct {
			clr = ui.Blood
		}
		ui.DrawCentered(screen, w.feedback, ui.Face(ui.Sans, 20), 400, clr)
	}
}
