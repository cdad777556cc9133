package minigame

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/save/common"
)

// DuelConfig tunes the avoidance duel.
type DuelConfig struct {
	Arena        cp.BB
	PlayerRadius float64
	PlayerSpeed  float64 // px/s
	BulletRadius float64
	BulletSpeed  float64 // px/s
	SpawnEvery   time.Duration
	// Volley is how many bullets each spawn fires, fanned out.
	Volley     int
	ArgueGain  float64
	DecayPerS  float64 // gauge lost per second while stunned
	Stun       time.Duration
	Timeout    time.Duration
	MaxBullets int
}

func DefaultDuelConfig() DuelConfig {
	return DuelConfig{
		Arena:        cp.BB{L: 240, B: 140, R: 1040, T: 620},
		PlayerRadius: 10,
		PlayerSpeed:  320,
		BulletRadius: 6,
		BulletSpeed:  220,
		SpawnEvery:   600 * time.Millisecond,
		Volley:       5,
		ArgueGain:    0.04,
		DecayPerS:    0.15,
		Stun:         time.Second,
		Timeout:      60 * time.Second,
		MaxBullets:   256,
	}
}

type DuelActionKind uint8

const (
	DuelMove DuelActionKind = iota + 1
	DuelArgue
)

// DuelAction is one input for a step. Dir is only read for DuelMove and is
// normalised before use.
type DuelAction struct {
	Kind DuelActionKind
	Dir  cp.Vector
}

func Move(dx, dy float64) DuelAction {
	return DuelAction{Kind: DuelMove, Dir: cp.Vector{X: dx, Y: dy}}
}

func Argue() DuelAction {
	return DuelAction{Kind: DuelArgue}
}

type Bullet struct {
	Pos cp.Vector
	Vel cp.Vector
}

// Duel is the logic duel: dodge the system's counter-arguments while
// building the gauge with Argue. A hit stuns the player; while stunned all
// input is dropped and the gauge drains. Full gauge wins, the timer running
// out loses.
type Duel struct {
	Config  DuelConfig
	Phase   Phase
	Player  cp.Vector
	Bullets []Bullet
	Gauge   float64
	Elapsed time.Duration
	Stunned time.Duration
	Hits    int

	spawnIn time.Duration
	volleys int
}

// minSpawnEvery bounds how many volleys a single step can fire.
const minSpawnEvery = 50 * time.Millisecond

// withDefaults fills every zero field from DefaultDuelConfig, so a partly
// tuned config still plays.
func (c DuelConfig) withDefaults() DuelConfig {
	def := DefaultDuelConfig()
	if c.Arena == (cp.BB{}) {
		c.Arena = def.Arena
	}
	if c.PlayerRadius <= 0 {
		c.PlayerRadius = def.PlayerRadius
	}
	if c.PlayerSpeed <= 0 {
		c.PlayerSpeed = def.PlayerSpeed
	}
	if c.BulletRadius <= 0 {
		c.BulletRadius = def.BulletRadius
	}
	if c.BulletSpeed <= 0 {
		c.BulletSpeed = def.BulletSpeed
	}
	if c.SpawnEvery <= 0 {
		c.SpawnEvery = def.SpawnEvery
	}
	if c.SpawnEvery < minSpawnEvery {
		c.SpawnEvery = minSpawnEvery
	}
	if c.Volley <= 0 {
		c.Volley = def.Volley
	}
	if c.ArgueGain <= 0 {
		c.ArgueGain = def.ArgueGain
	}
	if c.DecayPerS <= 0 {
		c.DecayPerS = def.DecayPerS
	}
	if c.Stun <= 0 {
		c.Stun = def.Stun
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.MaxBullets <= 0 {
		c.MaxBullets = def.MaxBullets
	}
	return c
}

// NewDuel builds an idle duel. Zero fields of cfg take their defaults.
func NewDuel(cfg DuelConfig) Duel {
	cfg = cfg.withDefaults()
	return Duel{
		Config:  cfg,
		Player:  cfg.Arena.Center(),
		spawnIn: cfg.SpawnEvery,
	}
}

// Start moves an idle duel to active.
func (d Duel) Start() Duel {
	if d.Phase == PhaseIdle {
		d.Phase = PhaseActive
	}
	return d
}

// Remaining is the time left before the duel is lost.
func (d Duel) Remaining() time.Duration {
	if r := d.Config.Timeout - d.Elapsed; r > 0 {
		return r
	}
	return 0
}

// Step advances the duel by dt.
func (d Duel) Step(actions []DuelAction, dt time.Duration) Duel {
	if d.Phase != PhaseActive {
		return d
	}
	cfg := d.Config
	secs := dt.Seconds()
	d.Bullets = append([]Bullet(nil), d.Bullets...)

	if d.Stunned > 0 {
		d.Stunned -= dt
		if d.Stunned < 0 {
			d.Stunned = 0
		}
		d.Gauge = common.Clamp(d.Gauge-cfg.DecayPerS*secs, 0, 1)
	} else {
		for _, a := range actions {
			switch a.Kind {
			case DuelMove:
				if a.Dir.Length() == 0 {
					continue
				}
				d.Player = d.Player.Add(a.Dir.Normalize().Mult(cfg.PlayerSpeed * secs))
			case DuelArgue:
				d.Gauge = common.Clamp(d.Gauge+cfg.ArgueGain, 0, 1)
			}
		}
		d.Player = cp.Vector{
			X: common.Clamp(d.Player.X, cfg.Arena.L+cfg.PlayerRadius, cfg.Arena.R-cfg.PlayerRadius),
			Y: common.Clamp(d.Player.Y, cfg.Arena.B+cfg.PlayerRadius, cfg.Arena.T-cfg.PlayerRadius),
		}
	}

	d.spawnIn -= dt
	for d.spawnIn <= 0 {
		d = d.spawn()
		d.spawnIn += cfg.SpawnEvery
	}

	live := d.Bullets[:0]
	hit := false
	for _, b := range d.Bullets {
		b.Pos = b.Pos.Add(b.Vel.Mult(secs))
		if !cfg.Arena.ContainsVect(b.Pos) {
			continue
		}
		if b.Pos.Distance(d.Player) <= cfg.PlayerRadius+cfg.BulletRadius {
			hit = true
			continue
		}
		live = append(live, b)
	}
	d.Bullets = live
	if hit && d.Stunned == 0 {
		d.Hits++
		d.Stunned = cfg.Stun
	}

	d.Elapsed += dt
	switch {
	case d.Gauge >= 1:
		d.Phase = PhaseWon
	case d.Elapsed >= cfg.Timeout:
		d.Phase = PhaseLost
	}
	return d
}

// spawn fires a fan of bullets from a point on the arena edge. The origin
// and angle rotate with each volley so the pattern is fixed and repeatable.
func (d Duel) spawn() Duel {
	cfg := d.Config
	d.volleys++
	if len(d.Bullets) >= cfg.MaxBullets {
		return d
	}
	center := cfg.Arena.Center()
	w, h := cfg.Arena.R-cfg.Arena.L, cfg.Arena.T-cfg.Arena.B
	theta := float64(d.volleys) * 2.399963 // golden angle
	origin := cp.Vector{
		X: center.X + math.Cos(theta)*(w/2-1),
		Y: center.Y + math.Sin(theta)*(h/2-1),
	}
	aim := center.Sub(origin)
	if aim.Length() == 0 {
		aim = cp.Vector{X: 1}
	}
	base := math.Atan2(aim.Y, aim.X)
	n := cfg.Volley
	if n < 1 {
		n = 1
	}
	const spread = 0.9
	for i := 0; i < n; i++ {
		a := base
		if n > 1 {
			a += spread * (float64(i)/float64(n-1) - 0.5)
		}
		d.Bullets = append(d.Bullets, Bullet{
			Pos: origin,
			Vel: cp.Vector{X: math.Cos(a), Y: math.Sin(a)}.Mult(cfg.BulletSpeed),
		})
	}
	return d
}
