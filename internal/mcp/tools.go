package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/wizard0x65/internal/battle"
	"github.com/peterkuimelis/wizard0x65/internal/game"
)

// RegisterTools adds all battle tools to the MCP server.
func RegisterTools(s *server.MCPServer, sim *Simulator) {
	s.AddTool(listCardsTool(), sim.handleListCards)
	s.AddTool(startBattleTool(), sim.handleStartBattle)
	s.AddTool(stepBattleTool(), sim.handleStepBattle)
	s.AddTool(getBattleTool(), sim.handleGetBattle)
	s.AddTool(runBattleTool(), sim.handleRunBattle)
	s.AddTool(endBattleTool(), sim.handleEndBattle)
}

// --- Tool definitions ---

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List the card catalog, cheapest first. Health is called "+game.HealthTerm+
			" and damage is called "+game.DamageTerm+"."),
		mcp.WithBoolean("include_tokens", mcp.Description("Also list cards that only enter play through effects (e.g. Bomb)")),
	)
}

func startBattleTool() mcp.Tool {
	return mcp.NewTool("start_battle",
		mcp.WithDescription("Start a new auto-battle between two decks. Decks are given either as card specs "+
			"(\"cardId\" or \"cardId:health:damage\", separated by commas, front card first) or as deck numbers "+
			"from the decks file. Returns the battle id and the initial state."),
		mcp.WithString("player", mcp.Description("Player deck as card specs, e.g. 'pl_c, pl_java:3:3'")),
		mcp.WithString("enemy", mcp.Description("Enemy deck as card specs")),
		mcp.WithNumber("player_deck", mcp.Description("Player deck number (1-indexed from decks.yaml)")),
		mcp.WithNumber("enemy_deck", mcp.Description("Enemy deck number (1-indexed from decks.yaml)")),
	)
}

func stepBattleTool() mcp.Tool {
	return mcp.NewTool("step_battle",
		mcp.WithDescription("Execute the next queued action (or the implicit mutual attack). Returns the events it produced and the new state."),
		mcp.WithString("battle_id", mcp.Required(), mcp.Description("Id returned by start_battle")),
		mcp.WithNumber("steps", mcp.Description("Number of steps to execute (default 1)")),
	)
}

func getBattleTool() mcp.Tool {
	return mcp.NewTool("get_battle",
		mcp.WithDescription("Get the current state of a battle and any events not yet returned. Read-only."),
		mcp.WithString("battle_id", mcp.Required(), mcp.Description("Id returned by start_battle")),
	)
}

func runBattleTool() mcp.Tool {
	return mcp.NewTool("run_battle",
		mcp.WithDescription("Step a battle until it is over or the step limit is reached. Returns the result."),
		mcp.WithString("battle_id", mcp.Required(), mcp.Description("Id returned by start_battle")),
		mcp.WithNumber("max_steps", mcp.Description("Step limit for this call, capped by the server's limit")),
	)
}

func endBattleTool() mcp.Tool {
	return mcp.NewTool("end_battle",
		mcp.WithDescription("Discard a battle."),
		mcp.WithString("battle_id", mcp.Required(), mcp.Description("Id returned by start_battle")),
	)
}

// --- Tool handlers ---

// CardInfo is one catalog entry in the list_cards response.
type CardInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Health      int    `json:"health"`
	Damage      int    `json:"damage"`
	Price       int    `json:"price"`
	Purchasable bool   `json:"purchasable"`
}

func (sim *Simulator) handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kinds := game.PurchasableKinds()
	if request.GetBool("include_tokens", false) {
		kinds = game.Kinds()
	}

	cards := make([]CardInfo, 0, len(kinds))
	for _, k := range kinds {
		cards = append(cards, CardInfo{
			ID:          k.ID,
			Name:        k.Name,
			Description: k.Description,
			Health:      k.BaseHealth,
			Damage:      k.BaseDamage,
			Price:       k.Price,
			Purchasable: k.Purchasable,
		})
	}
	return mcp.NewToolResultText(respondJSON(cards)), nil
}

func (sim *Simulator) handleStartBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	player := battle.SplitSpecs(request.GetString("player", ""))
	enemy := battle.SplitSpecs(request.GetString("enemy", ""))
	playerDeck := request.GetInt("player_deck", 0)
	enemyDeck := request.GetInt("enemy_deck", 0)

	var (
		s   *battle.Session
		err error
	)
	switch {
	case len(player) > 0 || len(enemy) > 0:
		s, err = battle.NewSession(player, enemy, nil)
	case playerDeck > 0 && enemyDeck > 0:
		s, err = battle.NewSessionFromDecks(sim.DecksFile, playerDeck, enemyDeck, nil)
	default:
		return mcp.NewToolResultError("Give either player/enemy card specs or player_deck/enemy_deck numbers."), nil
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start battle: %v", err), nil
	}

	sim.add(s)
	sim.Log.WithFields(logrus.Fields{"battle": s.ID, "tool": "start_battle"}).Info("battle started")

	return mcp.NewToolResultText(respondJSON(buildResponse(s, s.Drain()))), nil
}

func (sim *Simulator) handleStepBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, err := sim.get(request.GetString("battle_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	steps := request.GetInt("steps", 1)
	if steps < 1 || steps > sim.MaxSteps {
		return mcp.NewToolResultErrorf("steps must be between 1 and %d", sim.MaxSteps), nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var events []battle.EventView
	for i := 0; i < steps && !e.session.Over(); i++ {
		events = append(events, e.session.Step()...)
	}
	return mcp.NewToolResultText(respondJSON(buildResponse(e.session, events))), nil
}

func (sim *Simulator) handleGetBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, err := sim.get(request.GetString("battle_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return mcp.NewToolResultText(respondJSON(buildResponse(e.session, e.session.Drain()))), nil
}

func (sim *Simulator) handleRunBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, err := sim.get(request.GetString("battle_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := request.GetInt("max_steps", sim.MaxSteps)
	if limit <= 0 || limit > sim.MaxSteps {
		limit = sim.MaxSteps
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	_, err = e.session.Run(ctx, limit)
	if errors.Is(err, battle.ErrStepLimit) {
		sim.Log.WithFields(logrus.Fields{"battle": e.session.ID, "steps": e.session.Game.Steps()}).
			Warn("battle hit the step limit")
		return mcp.NewToolResultErrorf("%v. The battle is still running; call run_battle again or end_battle.", err), nil
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Run interrupted: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(buildResponse(e.session, e.session.Drain()))), nil
}

func (sim *Simulator) handleEndBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("battle_id", "")
	if !sim.remove(id) {
		return mcp.NewToolResultErrorf("no battle with id %q", id), nil
	}
	sim.Log.WithField("battle", id).Info("battle ended")
	return mcp.NewToolResultText(respondJSON(map[string]string{"battle_id": id, "status": "ended"})), nil
}
