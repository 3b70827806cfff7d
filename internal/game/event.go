package game

import "fmt"

// EventType tags the variant carried by an Event.
type EventType int

const (
	EventRoundStart EventType = iota
	EventRoundEnd
	EventHealthChanged
	EventCardDied
)

func (e EventType) String() string {
	switch e {
	case EventRoundStart:
		return "RoundStart"
	case EventRoundEnd:
		return "RoundEnd"
	case EventHealthChanged:
		return "HealthChanged"
	case EventCardDied:
		return "CardDied"
	default:
		return "Unknown"
	}
}

// Cancellable reports whether hooks may cancel events of this type.
func (e EventType) Cancellable() bool {
	return e == EventHealthChanged || e == EventCardDied
}

// Event is constructed right before a broadcast, mutated in place by the hooks
// of that one broadcast, and discarded afterwards.
type Event struct {
	Type  EventType
	Card  *Card // target of HealthChanged and CardDied; nil for round events
	Delta int   // HealthChanged only; hooks may rewrite it

	cancelled bool
}

func NewRoundStartEvent() *Event {
	return &Event{Type: EventRoundStart}
}

func NewRoundEndEvent() *Event {
	return &Event{Type: EventRoundEnd}
}

func NewHealthChangedEvent(card *Card, delta int) *Event {
	return &Event{Type: EventHealthChanged, Card: card, Delta: delta}
}

func NewCardDiedEvent(card *Card) *Event {
	return &Event{Type: EventCardDied, Card: card}
}

// Cancel stops the early phase of the current broadcast and skips the late phase.
// Panics on round events, which cannot be cancelled.
func (e *Event) Cancel() {
	if !e.Type.Cancellable() {
		panic(fmt.Sprintf("event %s cannot be cancelled", e.Type))
	}
	e.cancelled = true
}

func (e *Event) Cancelled() bool {
	return e.cancelled
}

// Targets reports whether the event is about the given card.
func (e *Event) Targets(card *Card) bool {
	return e.Card != nil && e.Card == card
}

func (e *Event) String() string {
	switch e.Type {
	case EventHealthChanged:
		return fmt.Sprintf("%s %s %+d", e.Type, e.Card.Name(), e.Delta)
	case EventCardDied:
		return fmt.Sprintf("%s %s", e.Type, e.Card.Name())
	default:
		return e.Type.String()
	}
}
