package state

import (
	"image"
	"math"
	"time"

	"github.com/milk9111/save/envinfo"
)

// PointerIdleAfter is how long the pointer must stay still before it counts
// as idle.
const PointerIdleAfter = 5 * time.Second

// PointerState is the derived pointer tracking data.
type PointerState struct {
	X, Y     float64
	Velocity float64 // pixels per second
	Idle     bool
	Distance float64 // total distance travelled this session

	lastAt    time.Time
	lastMoved time.Time
}

// Player is the environment and capture store. It is written by onboarding
// scenes and read by the reveal scenes.
type Player struct {
	env     envinfo.Info
	hasEnv  bool
	photo   image.Image
	pointer PointerState
}

func NewPlayer() *Player {
	return &Player{}
}

func (p *Player) SetEnvironment(info envinfo.Info) {
	p.env = info
	p.hasEnv = true
}

// Environment returns the stored snapshot and whether one was collected.
func (p *Player) Environment() (envinfo.Info, bool) {
	return p.env, p.hasEnv
}

func (p *Player) SetPhoto(img image.Image) {
	p.photo = img
}

func (p *Player) Photo() image.Image {
	return p.photo
}

func (p *Player) HasPhoto() bool {
	return p.photo != nil
}

// UpdatePointer feeds a pointer sample. Velocity is derived from the previous
// sample; Idle flips on once the pointer has not moved for PointerIdleAfter.
func (p *Player) UpdatePointer(x, y float64, at time.Time) {
	ps := &p.pointer
	if ps.lastAt.IsZero() {
		ps.X, ps.Y = x, y
		ps.lastAt = at
		ps.lastMoved = at
		return
	}

	dist := math.Hypot(x-ps.X, y-ps.Y)
	dt := at.Sub(ps.lastAt).Seconds()
	if dt > 0 {
		ps.Velocity = dist / dt
	}
	if dist > 0 {
		ps.lastMoved = at
		ps.Distance += dist
	}
	ps.Idle = at.Sub(ps.lastMoved) >= PointerIdleAfter
	ps.X, ps.Y = x, y
	ps.lastAt = at
}

func (p *Player) Pointer() PointerState {
	return p.pointer
}

func (p *Player) Reset() {
	*p = Player{}
}
