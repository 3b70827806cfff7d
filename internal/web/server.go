package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/peterkuimelis/wizard0x65/internal/battle"
	"github.com/peterkuimelis/wizard0x65/internal/game"
	wizardnet "github.com/peterkuimelis/wizard0x65/internal/net"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card kind for the /api/cards endpoint.
type CardInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Health      int    `json:"health"`
	Damage      int    `json:"damage"`
	Price       int    `json:"price"`
}

// SimulateRequest is the body of POST /api/simulate.
type SimulateRequest struct {
	Player   []string `json:"player"`
	Enemy    []string `json:"enemy"`
	MaxSteps int      `json:"max_steps,omitempty"`
}

// SimulateResponse is the reply of POST /api/simulate.
type SimulateResponse struct {
	BattleID string             `json:"battle_id"`
	Result   battle.Result      `json:"result"`
	Events   []battle.EventView `json:"events"`
	Dump     string             `json:"dump"`
}

// Options configures a Server.
type Options struct {
	DecksFile string
	MaxSteps  int
	// Interval paces the frames streamed over /ws.
	Interval time.Duration
	Log      *logrus.Logger
}

// Server is the wizard0x65 web UI server.
type Server struct {
	opts Options
	log  *logrus.Logger
	mux  *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = battle.DefaultMaxSteps
	}
	s := &Server{
		opts: opts,
		log:  opts.Log,
		mux:  http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("POST /api/simulate", s.handleSimulate)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	kinds := game.PurchasableKinds()
	if r.URL.Query().Get("all") != "" {
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
		})
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	sess, err := battle.NewSession(req.Player, req.Enemy, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := s.opts.MaxSteps
	if req.MaxSteps > 0 && req.MaxSteps < limit {
		limit = req.MaxSteps
	}
	res, err := sess.Run(r.Context(), limit)
	if errors.Is(err, battle.ErrStepLimit) {
		s.log.WithFields(logrus.Fields{"battle": sess.ID, "steps": res.Steps}).Warn("simulation hit the step limit")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}

	s.log.WithFields(logrus.Fields{"battle": sess.ID, "steps": res.Steps, "winner": res.Winner}).Info("simulation finished")
	writeJSON(w, http.StatusOK, SimulateResponse{
		BattleID: sess.ID.String(),
		Result:   res,
		Events:   sess.Drain(),
		Dump:     sess.Game.String(),
	})
}

// handleWebSocket streams a battle to the browser: the client sends one start
// message, then receives one frame per step, paced by the autoplay interval.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept")
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	log := s.log.WithField("remote", r.RemoteAddr)

	var start wizardnet.ClientMessage
	if err := wsjson.Read(ctx, wsConn, &start); err != nil || start.Type != wizardnet.MsgStart {
		wsConn.Close(websocket.StatusPolicyViolation, "expected start message")
		return
	}

	var sess *battle.Session
	if len(start.Player) > 0 || len(start.Enemy) > 0 {
		sess, err = battle.NewSession(start.Player, start.Enemy, nil)
	} else {
		sess, err = battle.NewSessionFromDecks(s.opts.DecksFile, start.PlayerDeck, start.EnemyDeck, nil)
	}
	if err != nil {
		wsjson.Write(ctx, wsConn, wizardnet.ServerMessage{Type: wizardnet.MsgError, Error: err.Error()})
		wsConn.Close(websocket.StatusNormalClosure, "bad start message")
		return
	}
	log = log.WithField("battle", sess.ID)
	log.Info("streaming battle")

	if err := s.stream(ctx, wsConn, sess); err != nil {
		log.WithError(err).Debug("stream ended")
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "battle over")
}

func (s *Server) stream(ctx context.Context, wsConn *websocket.Conn, sess *battle.Session) error {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if s.opts.Interval > 0 {
		limiter = rate.NewLimiter(rate.Every(s.opts.Interval), 1)
	}

	send := func(events []battle.EventView) error {
		state := sess.State()
		msg := wizardnet.ServerMessage{Type: wizardnet.MsgState, State: &state, Events: events}
		if sess.Over() {
			result := sess.Result()
			msg.Type = wizardnet.MsgGameOver
			msg.Result = &result
		}
		return wsjson.Write(ctx, wsConn, msg)
	}

	if err := send(sess.Drain()); err != nil {
		return err
	}
	for !sess.Over() {
		if sess.Game.Steps() >= s.opts.MaxSteps {
			return wsjson.Write(ctx, wsConn, wizardnet.ServerMessage{
				Type:  wizardnet.MsgError,
				Error: battle.ErrStepLimit.Error(),
			})
		}
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		if err := send(sess.Step()); err != nil {
			return err
		}
	}
	return nil
}

// ListenAndServe starts the HTTP server and shuts it down when ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
