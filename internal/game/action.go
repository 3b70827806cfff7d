package game

import "fmt"

// --- Action types ---

type ActionType int

const (
	ActionAttack ActionType = iota
	ActionChangeHealth
	ActionChangeDamage
	ActionSpawnCard
	ActionSwapHealth
	ActionKillCard
)

func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "Attack"
	case ActionChangeHealth:
		return "Change Health"
	case ActionChangeDamage:
		return "Change Damage"
	case ActionSpawnCard:
		return "Spawn Card"
	case ActionSwapHealth:
		return "Swap Health"
	case ActionKillCard:
		return "Kill Card"
	default:
		return "Unknown"
	}
}

// Action is one atomic queued mutation. Which fields matter depends on Type.
type Action struct {
	Type   ActionType
	Card   *Card // target (or the card to spawn)
	Amount int   // ChangeHealth / ChangeDamage
	Team   Team  // SpawnCard
	Index  int   // SpawnCard
}

func AttackAction() Action {
	return Action{Type: ActionAttack}
}

func ChangeHealthAction(card *Card, amount int) Action {
	return Action{Type: ActionChangeHealth, Card: card, Amount: amount}
}

func ChangeDamageAction(card *Card, amount int) Action {
	return Action{Type: ActionChangeDamage, Card: card, Amount: amount}
}

func SpawnCardAction(card *Card, team Team, index int) Action {
	return Action{Type: ActionSpawnCard, Card: card, Team: team, Index: index}
}

func SwapHealthAction(card *Card) Action {
	return Action{Type: ActionSwapHealth, Card: card}
}

func KillCardAction(card *Card) Action {
	return Action{Type: ActionKillCard, Card: card}
}

func (a Action) String() string {
	switch a.Type {
	case ActionAttack:
		return a.Type.String()
	case ActionChangeHealth, ActionChangeDamage:
		return fmt.Sprintf("%s %s (%s) %+d", a.Type, a.Card.Name(), a.Card.Team, a.Amount)
	case ActionSpawnCard:
		return fmt.Sprintf("%s %s → %s[%d]", a.Type, a.Card.Name(), a.Team, a.Index)
	default:
		return fmt.Sprintf("%s %s (%s)", a.Type, a.Card.Name(), a.Card.Team)
	}
}

// --- Queue ---

// ActionQueue is the FIFO of pending actions owned by a Game.
// Queued actions run before the next implicit Attack: Peek and Dequeue fall
// back to a fresh Attack when nothing is queued.
type ActionQueue struct {
	pending []Action
}

// Push appends an action to the back of the queue.
func (q *ActionQueue) Push(a Action) {
	q.pending = append(q.pending, a)
}

// Len returns the number of explicitly queued actions.
func (q *ActionQueue) Len() int {
	return len(q.pending)
}

// Peek returns the head of the queue without removing it.
func (q *ActionQueue) Peek() Action {
	if len(q.pending) == 0 {
		return AttackAction()
	}
	return q.pending[0]
}

// Dequeue removes and returns the head of the queue.
func (q *ActionQueue) Dequeue() Action {
	if len(q.pending) == 0 {
		return AttackAction()
	}
	a := q.pending[0]
	q.pending[0] = Action{}
	q.pending = q.pending[1:]
	return a
}

// Pending returns a copy of the explicitly queued actions in execution order.
func (q *ActionQueue) Pending() []Action {
	out := make([]Action, len(q.pending))
	copy(out, q.pending)
	return out
}
