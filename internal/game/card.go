package game

import (
	"fmt"

	"github.com/peterkuimelis/wizard0x65/internal/log"
)

// Card is one unit on the field.
type Card struct {
	Kind       *Kind
	InstanceID string // opaque id correlating with an external deck record

	Health int
	Damage int
	State  CardState
	Team   Team

	// Counters holds per-instance effect state (e.g. replication depth).
	Counters map[string]int

	// game is a non-owning back-reference, set when the card joins a Game.
	game *Game
}

// NewCard creates a card of the given kind at its base stats.
func NewCard(kind *Kind) *Card {
	if kind == nil {
		panic("game: card has no kind")
	}
	return NewCardWithStats(kind, kind.BaseHealth, kind.BaseDamage)
}

// NewCardWithStats creates a card of the given kind with overridden stats.
// Panics on a nil kind or a kind without metadata.
func NewCardWithStats(kind *Kind, health, damage int) *Card {
	if kind == nil {
		panic("game: card has no kind")
	}
	if kind.ID == "" || kind.Name == "" {
		panic(fmt.Sprintf("game: kind %q is missing metadata", kind.ID))
	}
	c := &Card{
		Kind:     kind,
		Health:   health,
		Damage:   damage,
		State:    CardAlive,
		Counters: make(map[string]int),
	}
	if kind.Init != nil {
		kind.Init(c)
	}
	return c
}

// Name returns the display name of the card's kind.
func (c *Card) Name() string {
	return c.Kind.Name
}

// Game returns the game the card is bound to, or nil.
func (c *Card) Game() *Game {
	return c.game
}

func (c *Card) String() string {
	if c == nil {
		return "(none)"
	}
	return fmt.Sprintf("%s (%d / %d)", c.Name(), c.Health, c.Damage)
}

// Snapshot copies the card's observable state.
func (c *Card) Snapshot() CardSnapshot {
	idx := -1
	if c.game != nil {
		idx = c.game.IndexOf(c)
	}
	return CardSnapshot{
		ID:          c.Kind.ID,
		InstanceID:  c.InstanceID,
		Name:        c.Kind.Name,
		Description: c.Kind.Description,
		Price:       c.Kind.Price,
		Health:      c.Health,
		Damage:      c.Damage,
		State:       c.State,
		Team:        c.Team,
		Index:       idx,
	}
}

// onField reports whether the card is currently in one of its game's decks.
func (c *Card) onField() bool {
	return c.game != nil && c.game.IndexOf(c) >= 0
}

// Attack deals this card's damage to the target.
func (c *Card) Attack(target *Card) {
	if c.game != nil {
		c.game.log(log.NewAttackEvent(c.game.steps, c.Team.String(), c.Name(), target.Name(), c.Damage))
	}
	target.ChangeHealth(-c.Damage)
}

// ChangeHealth broadcasts a HealthChanged event and, unless a hook cancels it,
// applies the (possibly rewritten) delta. A card whose health drops to 0 or
// below goes through the death path.
//
// Cards that have already left the field only take the raw stat change.
func (c *Card) ChangeHealth(amount int) {
	if !c.onField() {
		c.Health += amount
		return
	}
	g := c.game

	event := NewHealthChangedEvent(c, amount)
	g.broadcast(event)
	if event.Cancelled() {
		g.log(log.NewHealthChangeCancelledEvent(g.steps, c.Team.String(), c.Name(), amount))
		return
	}

	old := c.Health
	c.Health += event.Delta
	g.log(log.NewHealthChangeEvent(g.steps, c.Team.String(), c.Name(), old, c.Health))

	if c.Health <= 0 && c.State == CardAlive {
		c.die()
	}
}

// ChangeDamage mutates damage directly. No event is broadcast.
func (c *Card) ChangeDamage(amount int) {
	old := c.Damage
	c.Damage += amount
	if c.game != nil {
		c.game.log(log.NewDamageChangeEvent(c.game.steps, c.Team.String(), c.Name(), old, c.Damage))
	}
}

// SwapStats exchanges health and damage. No event is broadcast.
func (c *Card) SwapStats() {
	c.Health, c.Damage = c.Damage, c.Health
	if c.game != nil {
		c.game.log(log.NewSwapStatsEvent(c.game.steps, c.Team.String(), c.Name(), c.Health, c.Damage))
	}
}

// Kill forces the death path regardless of current health.
func (c *Card) Kill() {
	if !c.onField() || c.State == CardDead {
		return
	}
	c.game.log(log.NewKillEvent(c.game.steps, c.Team.String(), c.Name()))
	c.die()
}

// die broadcasts CardDied. The death is aborted when a hook cancels the event
// or brings a card that was at 0 health or below back above 0.
func (c *Card) die() {
	g := c.game
	before := c.Health

	event := NewCardDiedEvent(c)
	g.broadcast(event)

	if event.Cancelled() || (before <= 0 && c.Health > 0) {
		g.log(log.NewReviveEvent(g.steps, c.Team.String(), c.Name(), c.Health))
		return
	}

	c.State = CardDead
	g.log(log.NewCardDiedEvent(g.steps, c.Team.String(), c.Name()))
}
