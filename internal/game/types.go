package game

import "fmt"

// --- Enums ---

type Team int

const (
	TeamPlayer Team = iota
	TeamEnemy
)

func (t Team) String() string {
	if t == TeamPlayer {
		return "Player"
	}
	return "Enemy"
}

// Opposite returns the other team.
func (t Team) Opposite() Team {
	if t == TeamPlayer {
		return TeamEnemy
	}
	return TeamPlayer
}

type CardState int

const (
	CardAlive CardState = iota
	CardDead
)

func (s CardState) String() string {
	if s == CardAlive {
		return "Alive"
	}
	return "Dead"
}

type GameState int

const (
	GameRunning GameState = iota
	GameOver
)

func (s GameState) String() string {
	if s == GameRunning {
		return "Running"
	}
	return "Over"
}

// WinState is only meaningful once the game is Over.
type WinState int

const (
	WinPlayer WinState = iota
	WinEnemy
	WinStalemate
)

func (w WinState) String() string {
	switch w {
	case WinPlayer:
		return "Player"
	case WinEnemy:
		return "Enemy"
	case WinStalemate:
		return "Stalemate"
	default:
		return "Unknown"
	}
}

// --- Card metadata (static, from the catalog) ---

// Metadata is the immutable catalog-level description of a card kind.
type Metadata struct {
	ID          string
	Name        string
	Description string
	BaseHealth  int
	BaseDamage  int
	Price       int
}

// Kind is one catalog entry: its metadata and the reactive effect it carries.
type Kind struct {
	Metadata

	// Purchasable is false for kinds that only enter play through effects (e.g. Bomb).
	Purchasable bool

	// Init sets up per-instance state when a card of this kind is created.
	Init func(card *Card)

	// OnEvent runs during the early broadcast phase, in deck order. It may rewrite
	// the event's delta or cancel it.
	OnEvent func(g *Game, card *Card, event *Event)

	// OnEventLate runs after the early phase completed without cancellation and
	// observes the finalized event. It never cancels.
	OnEventLate func(g *Game, card *Card, event *Event)
}

func (k *Kind) String() string {
	return k.Name
}

// --- Snapshots for external readers ---

// CardSnapshot is a read-only copy of a card's observable state.
type CardSnapshot struct {
	ID          string
	InstanceID  string
	Name        string
	Description string
	Price       int
	Health      int
	Damage      int
	State       CardState
	Team        Team
	Index       int
}

func (s CardSnapshot) String() string {
	return fmt.Sprintf("%s (%d / %d)", s.Name, s.Health, s.Damage)
}
