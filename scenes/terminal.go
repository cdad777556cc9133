package scenes

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/content"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

const (
	terminalRows    = 22
	maxCommandRunes = 120
	exitDelay       = 1500 * time.Millisecond
)

// terminal is the maintenance shell. Commands are handled by a script; the
// script's reply may name one of the scene's exits.
type terminal struct {
	base
	shell   *content.Terminal
	lines   []string
	input   []rune
	leaving bool
	ticks   int
}

func newTerminal(env scene.Env, deps Deps) (*terminal, error) {
	src, err := deps.Content.Program("terminal")
	if err != nil {
		return nil, err
	}
	shell, err := content.NewTerminal(src)
	if err != nil {
		return nil, err
	}
	t := &terminal{base: newBase(env, deps), shell: shell}
	t.print(shell.Banner()...)
	return t, nil
}

func (t *terminal) print(lines ...string) {
	t.lines = append(t.lines, lines...)
	if n := len(t.lines) - terminalRows; n > 0 {
		t.lines = append([]string(nil), t.lines[n:]...)
	}
}

func (t *terminal) prompt() string {
	return t.text("prompt", "$ ")
}

// submit runs one command line.
func (t *terminal) submit(line string) {
	t.print(t.prompt() + line)
	reply, err := t.shell.Run(line, t.facts())
	if err != nil {
		t.env.Logger.Warn("scenes: terminal command failed", "line", line, "error", err)
		t.print(fmt.Sprintf(t.text("error", "error: %s"), err))
		t.cue("error")
		return
	}
	if reply.Clear {
		t.lines = nil
	}
	t.print(reply.Lines...)
	if reply.Exit == "" {
		return
	}
	if !t.env.Exits.Has(reply.Exit) {
		t.env.Logger.Warn("scenes: terminal named an unknown exit", "exit", reply.Exit)
		return
	}
	t.leaving = true
	t.cue("glitch")
	exit := reply.Exit
	t.env.Scope.After(exitDelay, func() { t.complete(exit, nil) })
}

func (t *terminal) Update(frame input.Frame, _ time.Duration) error {
	t.ticks++
	if t.leaving {
		return nil
	}
	for _, c := range frame.Runes {
		if unicode.IsPrint(c) && len(t.input) < maxCommandRunes {
			t.input = append(t.input, c)
		}
	}
	if frame.JustPressed(input.KeyBackspace) && len(t.input) > 0 {
		t.input = t.input[:len(t.input)-1]
	}
	if frame.JustPressed(input.KeyEnter) {
		line := strings.TrimSpace(string(t.input))
		t.input = t.input[:0]
		t.submit(line)
	}
	return nil
}

func (t *terminal) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Background)
	face := ui.Face(ui.Mono, 18)
	y := ui.DrawLines(screen, t.lines, face, 40, 30, ui.Phosphor)
	if t.leaving {
		return
	}
	cursor := ""
	if (t.ticks/30)%2 == 0 {
		cursor = "_"
	}
	ui.DrawText(screen, t.prompt()+string(t.input)+cursor, face, 40, y, ui.Phosphor)
}
