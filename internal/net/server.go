package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/wizard0x65/internal/battle"
)

// Server hosts battles for TCP clients, one battle per connection.
type Server struct {
	DeckFile string
	Port     string
	MaxSteps int
	Log      *logrus.Logger
}

// Run listens on the configured port and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.logger().WithField("addr", ln.Addr().String()).Info("battle server listening")
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is done or ln is closed.
// Each connection gets its own goroutine and its own battle.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.HandleConn(ctx, conn)
		}()
	}
}

// HandleConn serves a single client until it disconnects.
func (s *Server) HandleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	bc := NewBattleController(conn, s.DeckFile, s.maxSteps(), s.logger())
	bc.log.Info("client connected")
	if err := bc.Serve(ctx); err != nil {
		bc.log.WithError(err).Debug("client disconnected")
	}
}

func (s *Server) maxSteps() int {
	if s.MaxSteps <= 0 {
		return battle.DefaultMaxSteps
	}
	return s.MaxSteps
}

func (s *Server) logger() *logrus.Logger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}
