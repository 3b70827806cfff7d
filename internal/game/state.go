package game

import (
	"fmt"

	"github.com/peterkuimelis/wizard0x65/internal/log"
)

// FillDeckSize is the deck size the field-filler tops each side up to.
const FillDeckSize = 4

// PlayerDeck returns a copy of the player's deck, front first.
func (g *Game) PlayerDeck() []*Card {
	return g.Deck(TeamPlayer)
}

// EnemyDeck returns a copy of the enemy's deck, front first.
func (g *Game) EnemyDeck() []*Card {
	return g.Deck(TeamEnemy)
}

// Deck returns a copy of the given team's deck.
func (g *Game) Deck(team Team) []*Card {
	deck := *g.deckRef(team)
	out := make([]*Card, len(deck))
	copy(out, deck)
	return out
}

// Cards returns every card on the field, player deck then enemy deck.
func (g *Game) Cards() []*Card {
	out := make([]*Card, 0, len(g.playerDeck)+len(g.enemyDeck))
	out = append(out, g.playerDeck...)
	out = append(out, g.enemyDeck...)
	return out
}

// IndexOf returns the card's position in its team's deck, or -1.
func (g *Game) IndexOf(card *Card) int {
	for i, c := range *g.deckRef(card.Team) {
		if c == card {
			return i
		}
	}
	return -1
}

// Snapshots returns read-only copies of a deck for external renderers.
func (g *Game) Snapshots(team Team) []CardSnapshot {
	deck := *g.deckRef(team)
	out := make([]CardSnapshot, len(deck))
	for i, c := range deck {
		out[i] = c.Snapshot()
	}
	return out
}

// Spawn binds a card to the team and this game, marks it alive and inserts it
// at index (clamped to the deck bounds). No event is broadcast.
// Panics if the card is already on a field.
func (g *Game) Spawn(card *Card, team Team, index int) {
	if card.onField() {
		panic(fmt.Sprintf("game: card %s is already on the field", card.Name()))
	}
	deck := g.deckRef(team)

	card.Team = team
	card.game = g
	card.State = CardAlive
	if card.Counters == nil {
		card.Counters = make(map[string]int)
	}

	if index < 0 {
		index = 0
	}
	if index > len(*deck) {
		index = len(*deck)
	}
	*deck = append(*deck, nil)
	copy((*deck)[index+1:], (*deck)[index:])
	(*deck)[index] = card

	g.log(log.NewSpawnEvent(g.steps, team.String(), card.Name(), index))
}

func (g *Game) deckRef(team Team) *[]*Card {
	if team == TeamPlayer {
		return &g.playerDeck
	}
	return &g.enemyDeck
}

// reap removes dead cards from both decks, preserving order.
func (g *Game) reap() {
	for _, team := range []Team{TeamPlayer, TeamEnemy} {
		deck := g.deckRef(team)
		kept := (*deck)[:0]
		for _, c := range *deck {
			if c.State == CardDead {
				g.log(log.NewReapEvent(g.steps, team.String(), c.Name()))
				continue
			}
			kept = append(kept, c)
		}
		for i := len(kept); i < len(*deck); i++ {
			(*deck)[i] = nil
		}
		*deck = kept
	}
}

// checkWinState moves the game to Over once either deck is empty.
func (g *Game) checkWinState() bool {
	if g.state == GameOver {
		return true
	}

	playerEmpty := len(g.playerDeck) == 0
	enemyEmpty := len(g.enemyDeck) == 0

	switch {
	case playerEmpty && enemyEmpty:
		g.state = GameOver
		g.winner = WinStalemate
		g.log(log.NewStalemateEvent(g.steps))
	case playerEmpty:
		g.state = GameOver
		g.winner = WinEnemy
		g.log(log.NewWinEvent(g.steps, WinEnemy.String()))
	case enemyEmpty:
		g.state = GameOver
		g.winner = WinPlayer
		g.log(log.NewWinEvent(g.steps, WinPlayer.String()))
	default:
		return false
	}
	return true
}
