package log

// EventType enumerates all observable battle events.
type EventType int

const (
	EventRoundStart EventType = iota
	EventRoundEnd
	EventStep
	EventAttack
	EventHealthChange
	EventHealthChangeCancelled
	EventDamageChange
	EventSwapStats
	EventCardDied
	EventRevive
	EventSpawn
	EventKill
	EventActionQueued
	EventReap
	EventWin
	EventStalemate
)

func (e EventType) String() string {
	switch e {
	case EventRoundStart:
		return "RoundStart"
	case EventRoundEnd:
		return "RoundEnd"
	case EventStep:
		return "Step"
	case EventAttack:
		return "Attack"
	case EventHealthChange:
		return "HealthChange"
	case EventHealthChangeCancelled:
		return "HealthChangeCancelled"
	case EventDamageChange:
		return "DamageChange"
	case EventSwapStats:
		return "SwapStats"
	case EventCardDied:
		return "CardDied"
	case EventRevive:
		return "Revive"
	case EventSpawn:
		return "Spawn"
	case EventKill:
		return "Kill"
	case EventActionQueued:
		return "ActionQueued"
	case EventReap:
		return "Reap"
	case EventWin:
		return "Win"
	case EventStalemate:
		return "Stalemate"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a battle.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Step    int       // step counter at the time of the event (0 = construction)
	Team    string    // team of the card involved ("Player", "Enemy" or "")
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
