package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/peterkuimelis/wizard0x65/internal/battle"
)

// Client connects to a battle server and provides a terminal REPL.
type Client struct {
	conn    net.Conn
	in      *bufio.Reader
	out     io.Writer
	Verbose bool // print the battle log along with each dump
}

// NewClient wraps an open connection. Commands are read from in and the
// battle is rendered to out.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// Connect dials a server, starts the battle and runs the REPL on stdin/stdout.
func Connect(ctx context.Context, addr string, start ClientMessage, verbose bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	client := NewClient(conn, os.Stdin, os.Stdout)
	client.Verbose = verbose
	return client.Play(ctx, start)
}

// Play sends the start message, then steps the battle each time the user
// presses enter. "r" runs to the end, "q" quits.
func (c *Client) Play(ctx context.Context, start ClientMessage) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	start.Type = MsgStart
	if err := enc.Encode(start); err != nil {
		return fmt.Errorf("send start: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		c.renderEvents(msg.Events)
		c.renderState(msg.State)

		switch msg.Type {
		case MsgGameOver:
			c.renderResult(msg.Result)
			return nil
		case MsgError:
			return fmt.Errorf("server: %s", msg.Error)
		}

		fmt.Fprint(c.out, "Press enter to continue (r: run to the end, q: quit)... ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(c.out)
			return nil
		}

		req := ClientMessage{Type: MsgStep}
		switch strings.TrimSpace(line) {
		case "q":
			return nil
		case "r":
			req.Type = MsgRun
		}
		if err := enc.Encode(req); err != nil {
			return fmt.Errorf("send %s: %w", req.Type, err)
		}
	}
}

func (c *Client) renderEvents(events []battle.EventView) {
	if !c.Verbose {
		return
	}
	for _, ev := range events {
		fmt.Fprintln(c.out, FormatEventView(ev))
	}
}

func (c *Client) renderState(sv *battle.StateView) {
	if sv == nil {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprint(c.out, sv.Dump)
}

func (c *Client) renderResult(r *battle.Result) {
	if r == nil {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "===================================")
	fmt.Fprintf(c.out, "  %s  (winner: %s, %d steps)\n", r.RoundStatus, r.Winner, r.Steps)
	fmt.Fprintln(c.out, "===================================")
}

// FormatEventView formats an event like the text battle log.
func FormatEventView(ev battle.EventView) string {
	return fmt.Sprintf("S%-3d %-6s| %s", ev.Step, ev.Team, ev.Details)
}
