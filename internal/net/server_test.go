package net

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// startPipe serves one connection in the background and returns the client end.
func startPipe(t *testing.T, srv *Server) net.Conn {
	t.Helper()
	client, server := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.HandleConn(ctx, server)
	}()
	t.Cleanup(func() {
		cancel()
		client.Close()
		<-done
	})
	return client
}

type rawClient struct {
	enc *json.Encoder
	dec *json.Decoder
}

func newRawClient(conn net.Conn) *rawClient {
	return &rawClient{enc: json.NewEncoder(conn), dec: json.NewDecoder(conn)}
}

func (c *rawClient) roundTrip(t *testing.T, msg ClientMessage) ServerMessage {
	t.Helper()
	require.NoError(t, c.enc.Encode(msg))
	var resp ServerMessage
	require.NoError(t, c.dec.Decode(&resp))
	return resp
}

func TestControllerStepToGameOver(t *testing.T) {
	c := newRawClient(startPipe(t, &Server{Log: quietLogger()}))

	resp := c.roundTrip(t, ClientMessage{Type: MsgStart, Player: []string{"pl_c"}, Enemy: []string{"pl_c"}})
	require.Equal(t, MsgState, resp.Type)
	require.NotNil(t, resp.State)
	assert.Equal(t, "Running", resp.State.State)
	assert.NotEmpty(t, resp.Events)

	resp = c.roundTrip(t, ClientMessage{Type: MsgStep})
	assert.Equal(t, MsgState, resp.Type)
	assert.Equal(t, 1, resp.State.Step)

	resp = c.roundTrip(t, ClientMessage{Type: MsgStep})
	require.Equal(t, MsgGameOver, resp.Type)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "DRAW", resp.Result.RoundStatus)
	assert.Equal(t, 2, resp.Result.Steps)

	resp = c.roundTrip(t, ClientMessage{Type: MsgState})
	assert.Equal(t, MsgGameOver, resp.Type)
	assert.Empty(t, resp.Events)
}

func TestControllerRun(t *testing.T) {
	c := newRawClient(startPipe(t, &Server{Log: quietLogger()}))

	c.roundTrip(t, ClientMessage{Type: MsgStart, Player: []string{"ge_unreal"}, Enemy: []string{"pl_c"}})
	resp := c.roundTrip(t, ClientMessage{Type: MsgRun})

	require.Equal(t, MsgGameOver, resp.Type)
	assert.Equal(t, "WIN", resp.Result.RoundStatus)
	assert.NotEmpty(t, resp.Events)
}

func TestControllerStepLimit(t *testing.T) {
	c := newRawClient(startPipe(t, &Server{Log: quietLogger(), MaxSteps: 20}))

	c.roundTrip(t, ClientMessage{Type: MsgStart, Player: []string{"ge_unreal:5:0"}, Enemy: []string{"ge_unreal:5:0"}})
	resp := c.roundTrip(t, ClientMessage{Type: MsgRun, MaxSteps: 5})

	require.Equal(t, MsgError, resp.Type)
	assert.Contains(t, resp.Error, "step limit")
	require.NotNil(t, resp.State)
	assert.Equal(t, 5, resp.State.Step)
}

func TestControllerErrors(t *testing.T) {
	c := newRawClient(startPipe(t, &Server{Log: quietLogger()}))

	resp := c.roundTrip(t, ClientMessage{Type: MsgStep})
	assert.Equal(t, MsgError, resp.Type)
	assert.Contains(t, resp.Error, "no battle running")

	resp = c.roundTrip(t, ClientMessage{Type: MsgStart, Player: []string{"nope"}})
	assert.Equal(t, MsgError, resp.Type)
	assert.Contains(t, resp.Error, "unknown card")

	c.roundTrip(t, ClientMessage{Type: MsgStart, Player: []string{"pl_c"}, Enemy: []string{"pl_c"}})
	resp = c.roundTrip(t, ClientMessage{Type: "dance"})
	assert.Equal(t, MsgError, resp.Type)
}

func TestControllerDeckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
decks:
  - name: healers
    cards:
      - id: ide_vim
      - id: pl_c
  - name: os
    cards:
      - id: os_arch
`), 0o644))

	c := newRawClient(startPipe(t, &Server{Log: quietLogger(), DeckFile: path}))

	resp := c.roundTrip(t, ClientMessage{Type: MsgStart, PlayerDeck: 1, EnemyDeck: 2})
	require.Equal(t, MsgState, resp.Type)
	assert.Len(t, resp.State.Player, 2)
	assert.Len(t, resp.State.Enemy, 1)

	resp = c.roundTrip(t, ClientMessage{Type: MsgStart, PlayerDeck: 1, EnemyDeck: 9})
	assert.Equal(t, MsgError, resp.Type)
}

func TestClientPlay(t *testing.T) {
	conn := startPipe(t, &Server{Log: quietLogger()})

	var out bytes.Buffer
	client := NewClient(conn, strings.NewReader("\n\n\n"), &out)
	client.Verbose = true

	err := client.Play(context.Background(), ClientMessage{Player: []string{"pl_c"}, Enemy: []string{"pl_c"}})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Player deck:")
	assert.Contains(t, out.String(), "=== Round start ===")
	assert.Contains(t, out.String(), "DRAW")
}

func TestClientQuit(t *testing.T) {
	conn := startPipe(t, &Server{Log: quietLogger()})

	var out bytes.Buffer
	client := NewClient(conn, strings.NewReader("q\n"), &out)

	err := client.Play(context.Background(), ClientMessage{Player: []string{"pl_c"}, Enemy: []string{"pl_c"}})
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "DRAW")
}

func TestServeTCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := &Server{Log: quietLogger()}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	c := newRawClient(conn)
	resp := c.roundTrip(t, ClientMessage{Type: MsgStart, Player: []string{"os_temple"}, Enemy: []string{"pl_c"}})
	assert.Equal(t, MsgState, resp.Type)
	resp = c.roundTrip(t, ClientMessage{Type: MsgRun})
	assert.Equal(t, "LOSE", resp.Result.RoundStatus)
	conn.Close()

	cancel()
	assert.NoError(t, <-done)
}

func TestFormatEventView(t *testing.T) {
	c := newRawClient(startPipe(t, &Server{Log: quietLogger()}))
	resp := c.roundTrip(t, ClientMessage{Type: MsgStart, Player: []string{"pl_c"}, Enemy: []string{"pl_c"}})
	require.NotEmpty(t, resp.Events)
	assert.Equal(t, "S0         | === Round start ===", FormatEventView(resp.Events[0]))
}
