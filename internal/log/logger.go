package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging battle events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Since returns the events logged after the given sequence number.
func (l *MemoryLogger) Since(seq int) []GameEvent {
	for i, e := range l.events {
		if e.Seq > seq {
			return l.events[i:]
		}
	}
	return nil
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	team := e.Team
	// Pad team to 6 chars for alignment
	for len(team) < 6 {
		team += " "
	}

	return fmt.Sprintf("S%-3d %s| %s", e.Step, team, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewRoundStartEvent(step int) GameEvent {
	return GameEvent{
		Step:    step,
		Type:    EventRoundStart,
		Details: "=== Round start ===",
	}
}

func NewRoundEndEvent(step int) GameEvent {
	return GameEvent{
		Step:    step,
		Type:    EventRoundEnd,
		Details: "=== Round end ===",
	}
}

func NewStepEvent(step int, action string) GameEvent {
	return GameEvent{
		Step:    step,
		Type:    EventStep,
		Details: fmt.Sprintf("--- Step %d: %s ---", step, action),
	}
}

func NewAttackEvent(step int, team, attacker, target string, damage int) GameEvent {
	return GameEvent{
		Step:    step,
		Team:    team,
		Type:    EventAttack,
		Card:    attacker,
		Details: fmt.Sprintf("%s attacks %s for %d", attacker, target, damage),
	}
}

func NewHealthChangeEvent(step int, team, card string, oldHealth, newHealth int) GameEvent {
	return GameEvent{
		Step:    step,
		Team:    team,
		Type:    EventHealthChange,
		Card:    card,
		Details: fmt.Sprintf("%s health: %d → %d", card, oldHealth, newHealth),
	}
}

func NewHealthChangeCancelledEvent(step int, team, card string, delta int) GameEvent {
	return GameEvent{
		Step:    step,
		Team:    team,
		Type:    EventHealthChangeCancelled,
		Card:    card,
		Details: fmt.Sprintf("%s health change of %+d is cancelled", card, delta),
	}
}

func NewDamageChangeEvent(step int, team, card string, oldDamage, newDamage int) GameEvent {
	return GameEvent{
		Step:    step,
		Team:    team,
		Type:    EventDamageChange,
		Card:    card,
		Details: fmt.Sprintf("%s damage: %d → %d", card, oldDamage, newDamage),
	}
}

func NewSwapStatsEvent(step int, team, card string, health, damage int) GameEvent {
	return GameEvent{
		Step:    step,
		Team:    team,
		Type:    EventSwapStats,
		Card:    card,
		Details: fmt.Sprintf("%s swaps health and damage (now %d / %d)", card, health, damage),
	}
}

func NewCardDiedEvent(step int, team, card string) GameEvent {
	return GameEvent{
		Step:    step,
		Team:    team,
		Type:    EventCardDied,
		Card:    card,
		Details: fmt.Sprintf("%s dies", card),
	}
}

func NewReviveEvent(step int, team, card string, health int) GameEvent {
	return GameEvent{
		Step:    step,
		Team:    team,
		Type:    EventRevive,
		Card:    card,
		Details: fmt.Sprintf("%s is revived at %d health", card, health),
	}
}

func NewSpawnEvent(step int, team, card string, index int) GameEvent {
	return GameEvent{
		Step:    step,
		Team:    team,
		Type:    EventSpawn,
		Card:    card,
		Details: fmt.Sprintf("%s spawns at position %d of the %s deck", card, index, team),
	}
}

func NewKillEvent(step int, team, card string) GameEvent {
	return GameEvent{
		Step:    step,
		Team:    team,
		Type:    EventKill,
		Card:    card,
		Details: fmt.Sprintf("%s is killed", card),
	}
}

func NewActionQueuedEvent(step int, action string) GameEvent {
	return GameEvent{
		Step:    step,
		Type:    EventActionQueued,
		Details: fmt.Sprintf("queued: %s", action),
	}
}

func NewReapEvent(step int, team, card string) GameEvent {
	return GameEvent{
		Step:    step,
		Team:    team,
		Type:    EventReap,
		Card:    card,
		Details: fmt.Sprintf("%s is removed from the %s deck", card, team),
	}
}

func NewWinEvent(step int, winner string) GameEvent {
	return GameEvent{
		Step:    step,
		Team:    winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins!", winner),
	}
}

func NewStalemateEvent(step int) GameEvent {
	return GameEvent{
		Step:    step,
		Type:    EventStalemate,
		Details: "Stalemate (both decks are empty)",
	}
}
