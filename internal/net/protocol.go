package net

import "github.com/peterkuimelis/wizard0x65/internal/battle"

// Message types for the JSON protocol over TCP. Each message is one JSON value;
// the server answers every client message with exactly one server message.

// --- Client → Server messages ---

const (
	MsgStart = "start"
	MsgStep  = "step"
	MsgRun   = "run"
	MsgState = "state"
)

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "start": either card specs or 1-indexed deck numbers from the
	// server's deck file.
	Player     []string `json:"player,omitempty"`
	Enemy      []string `json:"enemy,omitempty"`
	PlayerDeck int      `json:"player_deck,omitempty"`
	EnemyDeck  int      `json:"enemy_deck,omitempty"`

	// For "run": watchdog override, capped by the server's own limit.
	MaxSteps int `json:"max_steps,omitempty"`
}

// --- Server → Client messages ---

const (
	MsgGameOver = "game_over"
	MsgError    = "error"
)

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	State  *battle.StateView  `json:"state,omitempty"`
	Events []battle.EventView `json:"events,omitempty"`

	// For "game_over"
	Result *battle.Result `json:"result,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}
