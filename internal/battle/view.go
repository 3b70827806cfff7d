package battle

import (
	"github.com/peterkuimelis/wizard0x65/internal/game"
	"github.com/peterkuimelis/wizard0x65/internal/log"
)

// Round status reported to the player once a battle is over.
const (
	RoundWin  = "WIN"
	RoundLose = "LOSE"
	RoundDraw = "DRAW"
)

// CardView is one card as presented to clients.
type CardView struct {
	Index      int    `json:"index"`
	ID         string `json:"id"`
	InstanceID string `json:"instance_id,omitempty"`
	Name       string `json:"name"`
	Health     int    `json:"health"`
	Damage     int    `json:"damage"`
	State      string `json:"state"`
}

// EventView is a battle log line as presented to clients.
type EventView struct {
	Seq     int    `json:"seq"`
	Step    int    `json:"step"`
	Team    string `json:"team,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// StateView is a full snapshot of a battle.
type StateView struct {
	ID          string     `json:"id"`
	Step        int        `json:"step"`
	State       string     `json:"state"`
	Winner      string     `json:"winner,omitempty"`
	RoundStatus string     `json:"round_status,omitempty"`
	Next        string     `json:"next,omitempty"`
	Queue       []string   `json:"queue"`
	Player      []CardView `json:"player"`
	Enemy       []CardView `json:"enemy"`
	Dump        string     `json:"dump"`
}

// Result summarizes a finished battle.
type Result struct {
	Winner      string     `json:"winner"`
	RoundStatus string     `json:"round_status"`
	Steps       int        `json:"steps"`
	Player      []CardView `json:"player"`
	Enemy       []CardView `json:"enemy"`
}

// RoundStatus maps a win state to the player's point of view.
func RoundStatus(w game.WinState) string {
	switch w {
	case game.WinPlayer:
		return RoundWin
	case game.WinEnemy:
		return RoundLose
	default:
		return RoundDraw
	}
}

// BuildCardViews converts deck snapshots to views, front card first.
func BuildCardViews(deck []game.CardSnapshot) []CardView {
	views := make([]CardView, len(deck))
	for i, c := range deck {
		views[i] = CardView{
			Index:      c.Index,
			ID:         c.ID,
			InstanceID: c.InstanceID,
			Name:       c.Name,
			Health:     c.Health,
			Damage:     c.Damage,
			State:      c.State.String(),
		}
	}
	return views
}

// BuildStateView snapshots a game.
func BuildStateView(id string, g *game.Game) StateView {
	sv := StateView{
		ID:     id,
		Step:   g.Steps(),
		State:  g.State().String(),
		Queue:  []string{},
		Player: BuildCardViews(g.Snapshots(game.TeamPlayer)),
		Enemy:  BuildCardViews(g.Snapshots(game.TeamEnemy)),
		Dump:   g.String(),
	}
	for _, a := range g.Actions() {
		sv.Queue = append(sv.Queue, a.String())
	}
	if g.State() == game.GameOver {
		sv.Winner = g.Winner().String()
		sv.RoundStatus = RoundStatus(g.Winner())
	} else {
		sv.Next = g.NextAction().String()
	}
	return sv
}

// BuildEventViews converts log events for clients.
func BuildEventViews(events []log.GameEvent) []EventView {
	views := make([]EventView, len(events))
	for i, e := range events {
		views[i] = EventView{
			Seq:     e.Seq,
			Step:    e.Step,
			Team:    e.Team,
			Type:    e.Type.String(),
			Card:    e.Card,
			Details: e.Details,
		}
	}
	return views
}
