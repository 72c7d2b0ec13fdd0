package sim

import (
	"math"

	"github.com/vovakirdan/rainbow-arcade/internal/config"
	"github.com/vovakirdan/rainbow-arcade/internal/core"
)

// BridgeID identifies a bridge for the lifetime of a World.
type BridgeID int

// Phase is a bridge's lifecycle state. Phases only move forward.
type Phase int

const (
	PhaseAirborne   Phase = iota // Flying along its arc as a projectile
	PhaseSolid                   // Standing still, walkable
	PhaseDissolving              // Falling and fading, lethal to enemies
	PhaseExpired                 // Gone; removed from the world
)

func (p Phase) String() string {
	switch p {
	case PhaseAirborne:
		return "airborne"
	case PhaseSolid:
		return "solid"
	case PhaseDissolving:
		return "dissolving"
	case PhaseExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Bridge is a rainbow. It is shot as a projectile, arcs, then hardens into
// a temporary platform that eventually dissolves.
type Bridge struct {
	ID               BridgeID
	OriginX, OriginY float64
	X, Y             float64 // Projectile centre while airborne, top-left once solid
	W, H             float64
	Direction        Facing
	Phase            Phase
	ArcProgress      int
	SolidTimer       int
	DissolveTimer    int
	Lifetime         int

	cfg config.BridgeConfig
}

// NewBridge creates an airborne bridge from a spawn request.
func NewBridge(id BridgeID, spawn BridgeSpawn, cfg config.BridgeConfig) *Bridge {
	return &Bridge{
		ID:        id,
		OriginX:   spawn.X,
		OriginY:   spawn.Y,
		X:         spawn.X,
		Y:         spawn.Y,
		W:         cfg.ProjectileSize,
		H:         cfg.ProjectileSize,
		Direction: spawn.Direction,
		Phase:     PhaseAirborne,
		Lifetime:  cfg.Lifetime,
		cfg:       cfg,
	}
}

// Update advances the state machine by one tick and returns the new phase.
func (b *Bridge) Update() Phase {
	switch b.Phase {
	case PhaseAirborne:
		b.updateAirborne()
	case PhaseSolid:
		b.SolidTimer++
		if b.SolidTimer > b.cfg.SolidDuration {
			b.Phase = PhaseExpired
		}
	case PhaseDissolving:
		b.DissolveTimer++
		b.Y += b.cfg.FallSpeed
		if b.DissolveTimer > b.cfg.DissolveDuration {
			b.Phase = PhaseExpired
		}
	}
	return b.Phase
}

func (b *Bridge) updateAirborne() {
	b.ArcProgress += b.cfg.ArcStep
	dx := float64(b.Direction) * b.cfg.Speed * float64(b.ArcProgress)

	if b.ArcProgress > b.cfg.MaxArc {
		// Harden around the arc end point. Y stays where the arc left it.
		b.Phase = PhaseSolid
		b.W = b.cfg.Width
		b.H = b.cfg.Height
		b.X = b.OriginX + dx - b.W/2
		return
	}

	progress := float64(b.ArcProgress) / float64(b.cfg.MaxArc)
	b.X = b.OriginX + dx
	b.Y = b.OriginY - b.cfg.ArcAmplitude*math.Sin(progress*math.Pi)

	b.Lifetime--
	if b.Lifetime <= 0 {
		b.Phase = PhaseExpired
	}
}

// Dissolve starts the collapse of a solid bridge. It returns false when the
// bridge is not solid, including when it is already dissolving.
func (b *Bridge) Dissolve() bool {
	if b.Phase != PhaseSolid {
		return false
	}
	b.Phase = PhaseDissolving
	b.DissolveTimer = 0
	return true
}

// Bounds returns the bridge's bounding box. Airborne bridges are a small
// square around the projectile centre.
func (b *Bridge) Bounds() core.Box {
	if b.Phase == PhaseAirborne {
		return core.NewBox(b.X-b.W/2, b.Y-b.H/2, b.W, b.H)
	}
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

// HitBox returns the area in which an airborne projectile kills enemies.
func (b *Bridge) HitBox() core.Box {
	if b.Phase != PhaseAirborne {
		return b.Bounds()
	}
	s := b.cfg.ProjectileHitbox
	return core.NewBox(b.X-s/2, b.Y-s/2, s, s)
}

// SurfaceY returns the height of the walkable arc at world x. The second
// result is false unless the bridge is solid and x lies within its span.
func (b *Bridge) SurfaceY(x float64) (float64, bool) {
	if b.Phase != PhaseSolid || !core.InRange(x, b.X, b.X+b.W) {
		return 0, false
	}
	progress := (x - b.X) / b.W
	return b.Y - b.cfg.SurfaceAmplitude*math.Sin(progress*math.Pi), true
}

// Fade returns how far the dissolve animation has progressed, from 0 to 1.
func (b *Bridge) Fade() float64 {
	if b.Phase != PhaseDissolving {
		return 0
	}
	return core.ClampF(float64(b.DissolveTimer)/float64(b.cfg.DissolveDuration), 0, 1)
}

// chainReaction dissolves every solid bridge touched by a bridge that was
// already dissolving when the call began. Newly dissolved bridges do not
// propagate until the next call, so each bridge is triggered at most once.
func chainReaction(bridges []*Bridge) []*Bridge {
	var targets []*Bridge
	for _, falling := range bridges {
		if falling.Phase != PhaseDissolving {
			continue
		}
		box := falling.Bounds()
		for _, other := range bridges {
			if other == falling || other.Phase != PhaseSolid {
				continue
			}
			if box.Intersects(other.Bounds()) && !containsBridge(targets, other) {
				targets = append(targets, other)
			}
		}
	}

	triggered := targets[:0]
	for _, b := range targets {
		if b.Dissolve() {
			triggered = append(triggered, b)
		}
	}
	return triggered
}

func containsBridge(list []*Bridge, b *Bridge) bool {
	for _, x := range list {
		if x == b {
			return true
		}
	}
	return false
}
