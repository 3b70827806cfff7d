package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/wizard0x65/internal/game"
	wizardnet "github.com/peterkuimelis/wizard0x65/internal/net"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	opts.Log = logger
	srv := httptest.NewServer(NewServer(opts).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "wizard0x65")

	resp, err = http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCards(t *testing.T) {
	srv := newTestServer(t, Options{})

	var cards []CardInfo
	resp, err := http.Get(srv.URL + "/api/cards")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cards))

	assert.Len(t, cards, len(game.PurchasableKinds()))
	assert.Equal(t, game.IDTempleOS, cards[0].ID)
	assert.Equal(t, game.IDLlama, cards[len(cards)-1].ID)
}

func TestDecks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
decks:
  - name: swarm
    cards:
      - id: pl_c
        count: 3
      - id: ide_vim
`), 0o644))
	srv := newTestServer(t, Options{DecksFile: path})

	var decks []DeckInfo
	resp, err := http.Get(srv.URL + "/api/decks")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decks))

	require.Len(t, decks, 1)
	assert.Equal(t, DeckInfo{Number: 1, Name: "swarm", Cards: []string{"pl_c x3", "ide_vim"}}, decks[0])

	missing := newTestServer(t, Options{DecksFile: filepath.Join(t.TempDir(), "none.yaml")})
	resp, err = http.Get(missing.URL + "/api/decks")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func postSimulate(t *testing.T, url string, req SimulateRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	resp, err := http.Post(url+"/api/simulate", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSimulate(t *testing.T) {
	srv := newTestServer(t, Options{MaxSteps: 100})

	resp := postSimulate(t, srv.URL, SimulateRequest{Player: []string{"ge_unreal"}, Enemy: []string{"pl_c"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out SimulateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "WIN", out.Result.RoundStatus)
	assert.Equal(t, 2, out.Result.Steps)
	assert.NotEmpty(t, out.BattleID)
	assert.NotEmpty(t, out.Events)
	assert.Contains(t, out.Dump, "winner: Player")
}

func TestSimulateErrors(t *testing.T) {
	srv := newTestServer(t, Options{MaxSteps: 100})

	resp := postSimulate(t, srv.URL, SimulateRequest{Player: []string{"nope"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postSimulate(t, srv.URL, SimulateRequest{
		Player:   []string{"ge_unreal:5:0"},
		Enemy:    []string{"ge_unreal:5:0"},
		MaxSteps: 10,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	bad, err := http.Post(srv.URL+"/api/simulate", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func dialWS(t *testing.T, srv *httptest.Server) (*websocket.Conn, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })
	return conn, ctx
}

func TestWebSocketStream(t *testing.T) {
	srv := newTestServer(t, Options{Interval: time.Millisecond})
	conn, ctx := dialWS(t, srv)

	require.NoError(t, wsjson.Write(ctx, conn, wizardnet.ClientMessage{
		Type:   wizardnet.MsgStart,
		Player: []string{"pl_c"},
		Enemy:  []string{"pl_c"},
	}))

	var frames []wizardnet.ServerMessage
	for {
		var msg wizardnet.ServerMessage
		require.NoError(t, wsjson.Read(ctx, conn, &msg))
		frames = append(frames, msg)
		if msg.Type != wizardnet.MsgState {
			break
		}
	}

	require.Len(t, frames, 3, "initial frame plus one per step")
	assert.Equal(t, 0, frames[0].State.Step)
	assert.Equal(t, 1, frames[1].State.Step)
	last := frames[2]
	assert.Equal(t, wizardnet.MsgGameOver, last.Type)
	require.NotNil(t, last.Result)
	assert.Equal(t, "DRAW", last.Result.RoundStatus)
}

func TestWebSocketStepLimit(t *testing.T) {
	srv := newTestServer(t, Options{MaxSteps: 3})
	conn, ctx := dialWS(t, srv)

	require.NoError(t, wsjson.Write(ctx, conn, wizardnet.ClientMessage{
		Type:   wizardnet.MsgStart,
		Player: []string{"ge_unreal:5:0"},
		Enemy:  []string{"ge_unreal:5:0"},
	}))

	var msg wizardnet.ServerMessage
	for msg.Type != wizardnet.MsgError {
		msg = wizardnet.ServerMessage{}
		require.NoError(t, wsjson.Read(ctx, conn, &msg))
	}
	assert.Contains(t, msg.Error, "step limit")
}

func TestWebSocketBadStart(t *testing.T) {
	srv := newTestServer(t, Options{})
	conn, ctx := dialWS(t, srv)

	require.NoError(t, wsjson.Write(ctx, conn, wizardnet.ClientMessage{
		Type:   wizardnet.MsgStart,
		Player: []string{"nope"},
	}))

	var msg wizardnet.ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, wizardnet.MsgError, msg.Type)
	assert.Contains(t, msg.Error, "unknown card")
}
