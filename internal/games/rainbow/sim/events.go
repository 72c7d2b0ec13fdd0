package sim

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventBridgeSpawned EventKind = iota
	EventBridgeSolidified
	EventBridgeDissolving
	EventBridgeExpired
	EventEnemyKilled
	EventFruitSpawned
	EventFruitCollected
	EventPlayerFell
	EventPlayerCaught
	EventLevelComplete
)

func (k EventKind) String() string {
	switch k {
	case EventBridgeSpawned:
		return "bridge_spawned"
	case EventBridgeSolidified:
		return "bridge_solidified"
	case EventBridgeDissolving:
		return "bridge_dissolving"
	case EventBridgeExpired:
		return "bridge_expired"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventFruitSpawned:
		return "fruit_spawned"
	case EventFruitCollected:
		return "fruit_collected"
	case EventPlayerFell:
		return "player_fell"
	case EventPlayerCaught:
		return "player_caught"
	case EventLevelComplete:
		return "level_complete"
	default:
		return "unknown"
	}
}

// KillCause says what killed an enemy, or what made a bridge dissolve.
type KillCause int

const (
	CauseNone KillCause = iota
	CauseProjectile
	CauseFallingBridge
	CausePlayerLanding
	CauseChainReaction
)

func (c KillCause) String() string {
	switch c {
	case CauseProjectile:
		return "projectile"
	case CauseFallingBridge:
		return "falling_bridge"
	case CausePlayerLanding:
		return "player"
	case CauseChainReaction:
		return "chain"
	default:
		return "none"
	}
}

// Event is one entry of a TickReport. Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	Tick   int
	Bridge BridgeID
	Enemy  EnemyID
	Cause  KillCause
	X, Y   float64
	Points int // Score awarded by this event
}

// TickReport summarises a tick for the layers above the simulation.
type TickReport struct {
	State  State
	Score  int
	Events []Event
}

// Has reports whether an event of the given kind occurred.
func (r TickReport) Has(kind EventKind) bool {
	for _, ev := range r.Events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

// Count returns how many events of the given kind occurred.
func (r TickReport) Count(kind EventKind) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
