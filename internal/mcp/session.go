package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/wizard0x65/internal/battle"
)

// ToolResponse is the JSON envelope returned by all battle tools.
type ToolResponse struct {
	BattleID string             `json:"battle_id"`
	Events   []battle.EventView `json:"events"`
	State    *battle.StateView  `json:"state,omitempty"`
	GameOver bool               `json:"game_over"`
	Result   *battle.Result     `json:"result,omitempty"`
}

// entry guards one battle session; sessions are single-threaded.
type entry struct {
	mu      sync.Mutex
	session *battle.Session
}

// Simulator holds the battles started over MCP.
type Simulator struct {
	DecksFile string
	MaxSteps  int
	Log       *logrus.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewSimulator creates an empty simulator.
func NewSimulator(decksFile string, maxSteps int, logger *logrus.Logger) *Simulator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if maxSteps <= 0 {
		maxSteps = battle.DefaultMaxSteps
	}
	return &Simulator{
		DecksFile: decksFile,
		MaxSteps:  maxSteps,
		Log:       logger,
		sessions:  make(map[string]*entry),
	}
}

func (sim *Simulator) add(s *battle.Session) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.sessions[s.ID.String()] = &entry{session: s}
}

func (sim *Simulator) get(id string) (*entry, error) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	e, ok := sim.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no battle with id %q. Use start_battle first", id)
	}
	return e, nil
}

func (sim *Simulator) remove(id string) bool {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	_, ok := sim.sessions[id]
	delete(sim.sessions, id)
	return ok
}

// Len returns the number of live battles.
func (sim *Simulator) Len() int {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return len(sim.sessions)
}

// buildResponse snapshots a session. Must be called with the entry locked.
func buildResponse(s *battle.Session, events []battle.EventView) *ToolResponse {
	state := s.State()
	resp := &ToolResponse{
		BattleID: s.ID.String(),
		Events:   events,
		State:    &state,
		GameOver: s.Over(),
	}
	if resp.Events == nil {
		resp.Events = []battle.EventView{}
	}
	if resp.GameOver {
		result := s.Result()
		resp.Result = &result
	}
	return resp
}

// respondJSON marshals a response to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
