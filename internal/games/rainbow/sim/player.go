package sim

import (
	"github.com/vovakirdan/rainbow-arcade/internal/config"
	"github.com/vovakirdan/rainbow-arcade/internal/core"
)

// Input is the per-tick snapshot of player intents.
type Input struct {
	MoveLeft  bool
	MoveRight bool
	Jump      bool
	Shoot     bool
	Restart   bool
}

// Facing is the direction the player looks in. Its value doubles as the
// sign of a bridge's launch direction.
type Facing int

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// OutcomeKind tags the result of a player update.
type OutcomeKind int

const (
	OutcomeAlive OutcomeKind = iota
	OutcomeFell
	OutcomeLandedOnBridge
)

// Outcome is the result of Player.Update. Bridge is set only for
// OutcomeLandedOnBridge and names the bridge that should dissolve.
type Outcome struct {
	Kind   OutcomeKind
	Bridge BridgeID
}

// BridgeSpawn is a request to create a bridge, produced by Player.ShootBridge.
type BridgeSpawn struct {
	X, Y      float64
	Direction Facing
}

// Player is the controllable character.
type Player struct {
	X, Y     float64
	VX, VY   float64
	W, H     float64
	Facing   Facing
	OnGround bool
	Cooldown int // Ticks until the next bridge can be shot

	// cooldownTicks is what Cooldown resets to after a shot.
	cooldownTicks int

	cfg     config.PlayerConfig
	bridge  config.BridgeConfig
	screenW float64
	screenH float64
}

// NewPlayer creates a player at (x, y) facing right.
func NewPlayer(cfg config.RainbowConfig, x, y float64) *Player {
	return &Player{
		X:             x,
		Y:             y,
		W:             cfg.Player.Width,
		H:             cfg.Player.Height,
		Facing:        FacingRight,
		cooldownTicks: cfg.Player.ShootCooldown,
		cfg:           cfg.Player,
		bridge:        cfg.Bridge,
		screenW:       cfg.Screen.Width,
		screenH:       cfg.Screen.Height,
	}
}

// Bounds returns the player's bounding box.
func (p *Player) Bounds() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// CenterX returns the horizontal middle of the player.
func (p *Player) CenterX() float64 {
	return p.X + p.W/2
}

// Update advances the player by one tick and resolves collisions against
// platforms and solid bridges.
func (p *Player) Update(in Input, platforms []Platform, bridges []*Bridge) Outcome {
	prevX, prevY := p.X, p.Y

	p.applyInput(in)

	if p.Cooldown > 0 {
		p.Cooldown--
	}

	p.VY += p.cfg.Gravity
	p.X += p.VX
	p.Y += p.VY
	p.OnGround = false

	if !p.standingOnBridge(bridges) {
		p.resolvePlatforms(platforms, prevX)
	}

	out := p.resolveBridges(bridges, prevY)

	p.X = core.ClampF(p.X, 0, p.screenW-p.W)

	if p.Y > p.screenH {
		return Outcome{Kind: OutcomeFell}
	}
	return out
}

// applyInput turns intents into velocity. Right wins when both directions are held.
func (p *Player) applyInput(in Input) {
	p.VX = 0
	switch {
	case in.MoveRight:
		p.VX = p.cfg.Speed
		p.Facing = FacingRight
	case in.MoveLeft:
		p.VX = -p.cfg.Speed
		p.Facing = FacingLeft
	}

	if in.Jump && p.OnGround {
		p.VY = p.cfg.JumpImpulse
		p.OnGround = false
	}
}

// ShootBridge returns a spawn request when the cooldown has elapsed and
// restarts the cooldown.
func (p *Player) ShootBridge() (BridgeSpawn, bool) {
	if p.Cooldown > 0 {
		return BridgeSpawn{}, false
	}
	p.Cooldown = p.cooldownTicks

	spawn := BridgeSpawn{
		Y:         p.Y + p.H/2,
		Direction: p.Facing,
	}
	if p.Facing == FacingRight {
		spawn.X = p.X + p.W + p.cfg.ShootOffset
	} else {
		spawn.X = p.X - p.cfg.ShootOffset
	}
	return spawn, true
}
