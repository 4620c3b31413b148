// Package mockapi is an in-process fake of the Golden Duck game backend.
// It serves the session endpoints for local play and for tests.
package mockapi

import (
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

// Config controls the fake backend's economy.
type Config struct {
	Token      string          // Required bearer token; empty accepts any non-empty token
	EggValue   decimal.Decimal // USDT credited per collected egg
	WinChance  float64         // Probability that win_next is true
	Seed       int64
	StartEggs  int             // Starting egg balance per account
	StartUSDT  decimal.Decimal // Starting USDT balance per account
	FailStarts int             // Reject this many start calls with 503 before succeeding
}

// DefaultConfig returns a backend that pays 0.10 per egg and always predicts a win.
func DefaultConfig() Config {
	return Config{
		EggValue:  decimal.RequireFromString("0.10"),
		WinChance: 1,
	}
}

type account struct {
	eggs     int
	usdt     decimal.Decimal
	session  int // 0 when no session is open
	winNext  bool
	collects int
}

// Server implements http.Handler for /game/start and /game/check.
type Server struct {
	cfg    Config
	logger *log.Logger
	mux    *http.ServeMux

	mu         sync.Mutex
	rng        *rand.Rand
	accounts   map[string]*account
	nextID     int
	failStarts int
}

// New creates a fake backend. A nil logger discards output.
func New(cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		cfg:        cfg,
		logger:     logger,
		mux:        http.NewServeMux(),
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		accounts:   make(map[string]*account),
		failStarts: cfg.FailStarts,
	}
	s.mux.HandleFunc("GET /game/start", s.handleStart)
	s.mux.HandleFunc("GET /game/check", s.handleCheck)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Collects returns how many coin actions the token's current or last
// session received.
func (s *Server) Collects(token string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.accounts[token]; ok {
		return acc.collects
	}
	return 0
}

func (s *Server) authorize(w http.ResponseWriter, r *http.Request) (*account, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" || (s.cfg.Token != "" && token != s.cfg.Token) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "message": "invalid token"})
		return nil, false
	}
	acc, exists := s.accounts[token]
	if !exists {
		acc = &account{eggs: s.cfg.StartEggs, usdt: s.cfg.StartUSDT}
		s.accounts[token] = acc
	}
	return acc, true
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.authorize(w, r)
	if !ok {
		return
	}
	skin, err := strconv.Atoi(r.URL.Query().Get("skin"))
	if err != nil || skin < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "message": "invalid skin"})
		return
	}
	if s.failStarts > 0 {
		s.failStarts--
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "message": "try again later"})
		return
	}

	s.nextID++
	acc.session = s.nextID
	acc.collects = 0
	acc.winNext = s.rng.Float64() < s.cfg.WinChance
	s.logger.Info("session started", "session", acc.session, "skin", skin, "win_next", acc.winNext)

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": acc.session,
		"win_next":   acc.winNext,
		"eggs":       strconv.Itoa(acc.eggs),
		"usdt":       acc.usdt.StringFixed(2),
		"status":     "started",
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.authorize(w, r)
	if !ok {
		return
	}
	if acc.session == 0 {
		writeJSON(w, http.StatusConflict, map[string]any{"ok": false, "message": "no active session"})
		return
	}

	switch action := r.URL.Query().Get("action"); action {
	case "coin":
		acc.eggs++
		acc.collects++
		acc.usdt = acc.usdt.Add(s.cfg.EggValue)
		s.logger.Debug("coin", "session", acc.session, "eggs", acc.eggs)
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":   true,
			"eggs": strconv.Itoa(acc.eggs),
			"usdt": acc.usdt.StringFixed(2),
		})
	case "end":
		id := acc.session
		acc.session = 0
		s.logger.Info("session ended", "session", id, "collects", acc.collects, "eggs", acc.eggs)
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":         true,
			"session_id": id,
			"status":     "ended",
			"eggs":       strconv.Itoa(acc.eggs),
			"usdt":       acc.usdt.StringFixed(2),
		})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "message": "unknown action " + strconv.Quote(action)})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
