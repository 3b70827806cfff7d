package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/wizard0x65/internal/battle"
)

// BattleController drives one battle over one connection. The client sends a
// request, the controller applies it to the session and replies.
type BattleController struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	log  *logrus.Entry

	decksFile string
	maxSteps  int

	session *battle.Session
}

// NewBattleController creates a controller for the given connection.
func NewBattleController(conn net.Conn, decksFile string, maxSteps int, logger *logrus.Logger) *BattleController {
	return &BattleController{
		conn:      conn,
		enc:       json.NewEncoder(conn),
		dec:       json.NewDecoder(conn),
		log:       logger.WithField("remote", conn.RemoteAddr().String()),
		decksFile: decksFile,
		maxSteps:  maxSteps,
	}
}

// send sends a server message to the client.
func (bc *BattleController) send(msg ServerMessage) error {
	return bc.enc.Encode(msg)
}

// recv reads a client message.
func (bc *BattleController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := bc.dec.Decode(&msg)
	return msg, err
}

func (bc *BattleController) sendError(err error) error {
	bc.log.WithError(err).Warn("request failed")
	return bc.send(ServerMessage{Type: MsgError, Error: err.Error()})
}

// Serve handles requests until the client disconnects or ctx is done.
func (bc *BattleController) Serve(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := bc.recv()
		if err != nil {
			return fmt.Errorf("recv: %w", err)
		}
		if err := bc.handle(ctx, msg); err != nil {
			return fmt.Errorf("send %s reply: %w", msg.Type, err)
		}
	}
}

func (bc *BattleController) handle(ctx context.Context, msg ClientMessage) error {
	if msg.Type == MsgStart {
		return bc.start(msg)
	}
	if bc.session == nil {
		return bc.sendError(fmt.Errorf("no battle running: send %q first", MsgStart))
	}

	switch msg.Type {
	case MsgStep:
		events := bc.session.Step()
		return bc.reply(events)

	case MsgRun:
		limit := bc.maxSteps
		if msg.MaxSteps > 0 && msg.MaxSteps < limit {
			limit = msg.MaxSteps
		}
		_, err := bc.session.Run(ctx, limit)
		events := bc.session.Drain()
		if errors.Is(err, battle.ErrStepLimit) {
			bc.log.WithFields(logrus.Fields{
				"battle": bc.session.ID,
				"steps":  bc.session.Game.Steps(),
			}).Warn("battle hit the step limit")
			state := bc.session.State()
			return bc.send(ServerMessage{Type: MsgError, Error: err.Error(), State: &state, Events: events})
		}
		if err != nil {
			return bc.sendError(err)
		}
		return bc.reply(events)

	case MsgState:
		return bc.reply(bc.session.Drain())

	default:
		return bc.sendError(fmt.Errorf("unknown message type %q", msg.Type))
	}
}

func (bc *BattleController) start(msg ClientMessage) error {
	var (
		s   *battle.Session
		err error
	)
	if len(msg.Player) > 0 || len(msg.Enemy) > 0 {
		s, err = battle.NewSession(msg.Player, msg.Enemy, nil)
	} else {
		s, err = battle.NewSessionFromDecks(bc.decksFile, msg.PlayerDeck, msg.EnemyDeck, nil)
	}
	if err != nil {
		return bc.sendError(err)
	}

	bc.session = s
	bc.log.WithFields(logrus.Fields{
		"battle": s.ID,
		"player": len(s.Game.PlayerDeck()),
		"enemy":  len(s.Game.EnemyDeck()),
	}).Info("battle started")
	return bc.reply(s.Drain())
}

// reply sends the current state, or the final result once the battle is over.
func (bc *BattleController) reply(events []battle.EventView) error {
	state := bc.session.State()
	if !bc.session.Over() {
		return bc.send(ServerMessage{Type: MsgState, State: &state, Events: events})
	}

	result := bc.session.Result()
	bc.log.WithFields(logrus.Fields{
		"battle": bc.session.ID,
		"steps":  result.Steps,
		"winner": result.Winner,
	}).Info("battle over")
	return bc.send(ServerMessage{Type: MsgGameOver, State: &state, Events: events, Result: &result})
}
