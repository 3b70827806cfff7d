package game

import (
	"testing"

	"github.com/peterkuimelis/wizard0x65/internal/log"
)

// --- Test kind helpers ---

func vanillaKind(name string) *Kind {
	return &Kind{
		Metadata: Metadata{ID: "test", Name: name},
	}
}

func testCard(health, damage int) *Card {
	return NewCardWithStats(vanillaKind("Test Card"), health, damage)
}

// eventRecorder collects the events its card observes in the early phase.
type eventRecorder struct {
	roundStarts    []*Event
	healthChanges  []*Event
	healthDeltas   []int
	deaths         []*Event
	lateDeltas     []int
	lateRoundEnds  int
	earlyRoundEnds int
}

func (r *eventRecorder) kind() *Kind {
	k := vanillaKind("Event Logger")
	k.OnEvent = func(g *Game, card *Card, event *Event) {
		switch event.Type {
		case EventRoundStart:
			r.roundStarts = append(r.roundStarts, event)
		case EventRoundEnd:
			r.earlyRoundEnds++
		case EventHealthChanged:
			r.healthChanges = append(r.healthChanges, event)
			r.healthDeltas = append(r.healthDeltas, event.Delta)
		case EventCardDied:
			r.deaths = append(r.deaths, event)
		}
	}
	k.OnEventLate = func(g *Game, card *Card, event *Event) {
		switch event.Type {
		case EventHealthChanged:
			r.lateDeltas = append(r.lateDeltas, event.Delta)
		case EventRoundEnd:
			r.lateRoundEnds++
		}
	}
	return k
}

func (r *eventRecorder) reset() {
	*r = eventRecorder{}
}

// friendlyHalverKind halves damage taken by any card on its own team.
func friendlyHalverKind() *Kind {
	k := vanillaKind("Friendly Halver")
	k.OnEvent = func(g *Game, card *Card, event *Event) {
		if event.Type != EventHealthChanged || event.Card.Team != card.Team || event.Delta > 0 {
			return
		}
		event.Delta /= 2
	}
	return k
}

// reviveSelfKind survives its first death at 1 health.
func reviveSelfKind() *Kind {
	k := vanillaKind("Revive Self")
	k.OnEvent = func(g *Game, card *Card, event *Event) {
		if card.Counters["revived"] > 0 {
			return
		}
		if event.Type != EventCardDied || !event.Targets(card) {
			return
		}
		card.Health = 1
		event.Cancel()
		card.Counters["revived"] = 1
	}
	return k
}

// cancelDeathOnceKind cancels its own first death without restoring health.
func cancelDeathOnceKind() *Kind {
	k := vanillaKind("Stubborn")
	k.OnEvent = func(g *Game, card *Card, event *Event) {
		if event.Type != EventCardDied || !event.Targets(card) || card.Counters["cancelled"] > 0 {
			return
		}
		card.Counters["cancelled"] = 1
		event.Cancel()
	}
	return k
}

// shieldKind cancels every health change on the field.
func shieldKind() *Kind {
	k := vanillaKind("Shield")
	k.OnEvent = func(g *Game, card *Card, event *Event) {
		if event.Type == EventHealthChanged {
			event.Cancel()
		}
	}
	return k
}

func newGame(player, enemy []*Card) (*Game, *log.MemoryLogger) {
	logger := log.NewMemoryLogger()
	g := NewGame(GameConfig{PlayerDeck: player, EnemyDeck: enemy, Logger: logger})
	return g, logger
}

func deckIDs(deck []*Card) []string {
	ids := make([]string, len(deck))
	for i, c := range deck {
		ids[i] = c.Kind.ID
	}
	return ids
}

// runToCompletion steps the game until Over, checking that no dead card
// survives a step.
func runToCompletion(t *testing.T, g *Game, maxSteps int) {
	t.Helper()
	for i := 0; i < maxSteps && g.State() == GameRunning; i++ {
		g.Step()
		for _, c := range g.Cards() {
			if c.State == CardDead {
				t.Fatalf("step %d: dead card %s left on the field", g.Steps(), c.Name())
			}
		}
	}
	if g.State() != GameOver {
		t.Logf("Event log:\n%s", log.FormatAll(g.Logger.Events()))
		t.Fatalf("battle not over after %d steps", maxSteps)
	}
}
