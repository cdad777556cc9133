// Package input turns ebiten's polled input state into a plain per-frame
// snapshot. Scenes only ever see a Frame, so they can be driven headless.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key is the subset of keys scenes react to.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeySpace
	KeyEscape
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyY
	KeyN
	Key1
	Key2
	Key3
	Key4
	KeyF1
	KeyF2
	KeyF3

	keyCount
)

var ebitenKeys = [keyCount]ebiten.Key{
	KeyEnter:     ebiten.KeyEnter,
	KeySpace:     ebiten.KeySpace,
	KeyEscape:    ebiten.KeyEscape,
	KeyBackspace: ebiten.KeyBackspace,
	KeyUp:        ebiten.KeyArrowUp,
	KeyDown:      ebiten.KeyArrowDown,
	KeyLeft:      ebiten.KeyArrowLeft,
	KeyRight:     ebiten.KeyArrowRight,
	KeyY:         ebiten.KeyY,
	KeyN:         ebiten.KeyN,
	Key1:         ebiten.Key1,
	Key2:         ebiten.Key2,
	Key3:         ebiten.Key3,
	Key4:         ebiten.Key4,
	KeyF1:        ebiten.KeyF1,
	KeyF2:        ebiten.KeyF2,
	KeyF3:        ebiten.KeyF3,
}

// Frame holds the input state for one update tick.
type Frame struct {
	// Pressed is true on the frame a key went down.
	Pressed [keyCount]bool
	// Held is true while a key is down.
	Held [keyCount]bool
	// Runes are the characters typed this frame.
	Runes []rune

	MouseX, MouseY float64
	// MouseDown is true while the left button is held.
	MouseDown bool
	// MouseClicked is true on the frame the left button went down.
	MouseClicked bool
	// MouseReleased is true on the frame the left button came up.
	MouseReleased bool
}

// JustPressed reports whether k went down this frame.
func (f Frame) JustPressed(k Key) bool {
	if k <= KeyNone || k >= keyCount {
		return false
	}
	return f.Pressed[k]
}

// IsHeld reports whether k is currently down.
func (f Frame) IsHeld(k Key) bool {
	if k <= KeyNone || k >= keyCount {
		return false
	}
	return f.Held[k]
}

// Any reports whether any key or the mouse button went down this frame.
func (f Frame) Any() bool {
	if f.MouseClicked || len(f.Runes) > 0 {
		return true
	}
	for _, p := range f.Pressed {
		if p {
			return true
		}
	}
	return false
}

// Press returns a frame with k pressed and held. It is meant for tests and
// synthetic input.
func Press(k Key) Frame {
	var f Frame
	f.Pressed[k] = true
	f.Held[k] = true
	return f
}

// Hold returns a frame with k held but not newly pressed.
func Hold(k Key) Frame {
	var f Frame
	f.Held[k] = true
	return f
}

// Type returns a frame carrying typed characters.
func Type(s string) Frame {
	return Frame{Runes: []rune(s)}
}

// Click returns a frame with a left click at (x, y).
func Click(x, y float64) Frame {
	return Frame{MouseX: x, MouseY: y, MouseDown: true, MouseClicked: true}
}

// Poller reads ebiten input once per tick.
type Poller struct {
	runes []rune
}

func NewPoller() *Poller {
	return &Poller{}
}

// Poll builds the frame for the current tick.
func (p *Poller) Poll() Frame {
	var f Frame
	for k := KeyEnter; k < keyCount; k++ {
		ek := ebitenKeys[k]
		f.Pressed[k] = inpututil.IsKeyJustPressed(ek)
		f.Held[k] = ebiten.IsKeyPressed(ek)
	}

	// The gamepad's primary button doubles as Enter.
	for _, gid := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			f.Pressed[KeyEnter] = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			f.Held[KeyEnter] = true
		}
	}

	p.runes = ebiten.AppendInputChars(p.runes[:0])
	if len(p.runes) > 0 {
		f.Runes = append([]rune(nil), p.runes...)
	}

	mx, my := ebiten.CursorPosition()
	f.MouseX, f.MouseY = float64(mx), float64(my)
	f.MouseDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	f.MouseClicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	f.MouseReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return f
}
