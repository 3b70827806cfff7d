package game

import (
	"fmt"

	"github.com/peterkuimelis/wizard0x65/internal/log"
)

// GameConfig holds configuration for creating a new battle.
type GameConfig struct {
	PlayerDeck []*Card // index 0 is the front card
	EnemyDeck  []*Card
	Logger     log.EventLogger
}

// Game owns both decks, the action queue and the battle state.
// It is single-threaded: one battle, one goroutine.
type Game struct {
	playerDeck []*Card
	enemyDeck  []*Card
	queue      ActionQueue

	state  GameState
	winner WinState
	steps  int

	Logger log.EventLogger
}

// NewGame binds every card to its team and the game, broadcasts RoundStart and
// evaluates the win state, so a battle starting with an empty side is already Over.
func NewGame(cfg GameConfig) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	g := &Game{
		playerDeck: make([]*Card, 0, len(cfg.PlayerDeck)),
		enemyDeck:  make([]*Card, 0, len(cfg.EnemyDeck)),
		state:      GameRunning,
		Logger:     logger,
	}

	seen := make(map[*Card]bool)
	bind := func(cards []*Card, team Team) []*Card {
		deck := make([]*Card, 0, len(cards))
		for _, c := range cards {
			if seen[c] {
				panic(fmt.Sprintf("game: card %s appears twice on the field", c.Name()))
			}
			seen[c] = true
			c.Team = team
			c.game = g
			deck = append(deck, c)
		}
		return deck
	}
	g.playerDeck = bind(cfg.PlayerDeck, TeamPlayer)
	g.enemyDeck = bind(cfg.EnemyDeck, TeamEnemy)

	g.log(log.NewRoundStartEvent(g.steps))
	g.broadcast(NewRoundStartEvent())
	g.checkWinState()

	return g
}

// State returns the current game state.
func (g *Game) State() GameState {
	return g.state
}

// Winner returns the win state. Only meaningful once State is GameOver.
func (g *Game) Winner() WinState {
	return g.winner
}

// Steps returns how many steps have executed.
func (g *Game) Steps() int {
	return g.steps
}

// Actions returns the explicitly queued actions, head first.
func (g *Game) Actions() []Action {
	return g.queue.Pending()
}

// NextAction returns the action the next Step will execute.
func (g *Game) NextAction() Action {
	return g.queue.Peek()
}

// Enqueue appends an action to the queue. Effects call this during broadcasts;
// the action runs on a later step.
func (g *Game) Enqueue(a Action) {
	g.queue.Push(a)
	g.log(log.NewActionQueuedEvent(g.steps, a.String()))
}

// Step executes one action (queued or the implicit Attack), removes dead cards
// and recomputes the win state. Once Over it is a no-op.
func (g *Game) Step() GameState {
	if g.state == GameOver {
		return g.state
	}

	g.steps++
	a := g.queue.Dequeue()
	g.log(log.NewStepEvent(g.steps, a.String()))

	g.execute(a)
	g.reap()
	g.checkWinState()

	return g.state
}

// execute applies one action against the cards it names.
func (g *Game) execute(a Action) {
	switch a.Type {
	case ActionAttack:
		g.executeAttack()
	case ActionChangeHealth:
		a.Card.ChangeHealth(a.Amount)
	case ActionChangeDamage:
		a.Card.ChangeDamage(a.Amount)
	case ActionSpawnCard:
		g.Spawn(a.Card, a.Team, a.Index)
	case ActionSwapHealth:
		a.Card.SwapStats()
	case ActionKillCard:
		a.Card.Kill()
	}
}

// executeAttack resolves the player's attack fully before the enemy's counter-attack.
// Both front cards act even if the first attack killed the second one.
func (g *Game) executeAttack() {
	if len(g.playerDeck) == 0 || len(g.enemyDeck) == 0 {
		return
	}
	playerCard := g.playerDeck[0]
	enemyCard := g.enemyDeck[0]

	playerCard.Attack(enemyCard)
	enemyCard.Attack(playerCard)

	g.log(log.NewRoundEndEvent(g.steps))
	g.broadcast(NewRoundEndEvent())
}

// broadcast runs the two-phase propagation over a snapshot of the field taken
// before the first hook runs. Phase 1 stops as soon as the event is cancelled;
// phase 2 only runs for uncancelled events and never stops early. Cards that
// are dead but not yet reaped are skipped in both phases.
func (g *Game) broadcast(event *Event) {
	snapshot := g.Cards()

	for _, c := range snapshot {
		if c.State == CardDead {
			continue
		}
		if c.Kind.OnEvent != nil {
			c.Kind.OnEvent(g, c, event)
		}
		if event.Cancelled() {
			return
		}
	}

	for _, c := range snapshot {
		if c.State == CardDead || c.Kind.OnEventLate == nil {
			continue
		}
		c.Kind.OnEventLate(g, c, event)
	}
}

// log emits a battle event through the logger.
func (g *Game) log(event log.GameEvent) {
	g.Logger.Log(event)
}
