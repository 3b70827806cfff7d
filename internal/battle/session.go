package battle

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/peterkuimelis/wizard0x65/internal/game"
	"github.com/peterkuimelis/wizard0x65/internal/log"
)

// DefaultMaxSteps bounds Run when the caller passes no limit. The engine itself
// has no step limit: a battle whose effects keep re-arming never ends.
const DefaultMaxSteps = 1000

// EventLog is the logger a session reads new events back from.
// Both log.MemoryLogger and log.TextLogger satisfy it.
type EventLog interface {
	log.EventLogger
	Since(seq int) []log.GameEvent
}

// Session is one battle plus its event log. It is not safe for concurrent use;
// servers serialize access per session.
type Session struct {
	ID     uuid.UUID
	Game   *game.Game
	Logger EventLog

	cursor int // seq of the last event handed out by Drain
}

// NewSession builds a battle from card spec strings. A nil logger records to memory.
func NewSession(player, enemy []string, logger EventLog) (*Session, error) {
	playerDeck, err := ParseDeck(player)
	if err != nil {
		return nil, fmt.Errorf("player deck: %w", err)
	}
	enemyDeck, err := ParseDeck(enemy)
	if err != nil {
		return nil, fmt.Errorf("enemy deck: %w", err)
	}
	return NewSessionFromCards(playerDeck, enemyDeck, logger), nil
}

// NewSessionFromDecks builds a battle from two entries (1-indexed) of a YAML deck file.
func NewSessionFromDecks(path string, playerDeck, enemyDeck int, logger EventLog) (*Session, error) {
	_, player, err := game.DeckByNumber(path, playerDeck)
	if err != nil {
		return nil, fmt.Errorf("load player deck: %w", err)
	}
	_, enemy, err := game.DeckByNumber(path, enemyDeck)
	if err != nil {
		return nil, fmt.Errorf("load enemy deck: %w", err)
	}
	return NewSessionFromCards(player, enemy, logger), nil
}

// NewSessionFromCards starts a battle between two already-built decks.
func NewSessionFromCards(player, enemy []*game.Card, logger EventLog) *Session {
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	return &Session{
		ID:     uuid.New(),
		Game:   game.NewGame(game.GameConfig{PlayerDeck: player, EnemyDeck: enemy, Logger: logger}),
		Logger: logger,
	}
}

// Over reports whether the battle has finished.
func (s *Session) Over() bool {
	return s.Game.State() == game.GameOver
}

// Step executes one action and returns the events it produced.
func (s *Session) Step() []EventView {
	s.Game.Step()
	return s.Drain()
}

// Drain returns the events logged since the previous Drain.
func (s *Session) Drain() []EventView {
	events := s.Logger.Since(s.cursor)
	if len(events) > 0 {
		s.cursor = events[len(events)-1].Seq
	}
	return BuildEventViews(events)
}

// Run steps the battle until it is over, the context is done, or maxSteps
// steps have executed in this call. maxSteps <= 0 means DefaultMaxSteps.
func (s *Session) Run(ctx context.Context, maxSteps int) (Result, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	for i := 0; i < maxSteps && !s.Over(); i++ {
		if err := ctx.Err(); err != nil {
			return s.Result(), err
		}
		s.Game.Step()
	}
	if !s.Over() {
		return s.Result(), fmt.Errorf("battle %s: %w after %d steps", s.ID, ErrStepLimit, s.Game.Steps())
	}
	return s.Result(), nil
}

// State snapshots the battle.
func (s *Session) State() StateView {
	return BuildStateView(s.ID.String(), s.Game)
}

// Result summarizes the battle. Winner and RoundStatus stay empty while it runs.
func (s *Session) Result() Result {
	r := Result{
		Steps:  s.Game.Steps(),
		Player: BuildCardViews(s.Game.Snapshots(game.TeamPlayer)),
		Enemy:  BuildCardViews(s.Game.Snapshots(game.TeamEnemy)),
	}
	if s.Over() {
		r.Winner = s.Game.Winner().String()
		r.RoundStatus = RoundStatus(s.Game.Winner())
	}
	return r
}
