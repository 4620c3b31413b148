// Package session tracks one game session against the backend: start,
// one collect per egg, and a single end.
//
// The Machine does no I/O. It hands out Requests, the platform executes
// them off the update loop (see Do), and the Results are fed back through
// Apply on the loop goroutine. Each request carries the epoch it was made
// in; Reset bumps the epoch so results of abandoned calls are dropped.
package session

import (
	"errors"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/golden-duck/internal/api"
	"github.com/vovakirdan/golden-duck/internal/core"
)

var (
	// ErrNotIdle is returned when starting a session that is already open.
	ErrNotIdle = errors.New("session: not idle")
	// ErrNotRunning is returned for collect/end without a running session.
	ErrNotRunning = errors.New("session: not running")
)

// epochs is shared by every Machine in the process, so a result made for
// one machine never matches the epoch of another.
var epochs atomic.Uint64

// Kind is the type of backend call.
type Kind int

const (
	KindStart Kind = iota
	KindCollect
	KindEnd
)

// String returns the action name.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindCollect:
		return "collect"
	case KindEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Request is a backend call to perform.
type Request struct {
	Kind    Kind
	Epoch   uint64
	Skin    int         // KindStart only
	Outcome core.Status // KindEnd only: over or finished
}

// Result is the outcome of a Request.
type Result struct {
	Request
	Start api.StartResponse
	Check api.CheckResponse
	Err   error
}

// Machine is the client-side session state.
type Machine struct {
	logger *log.Logger
	epoch  uint64

	status    core.Status
	starting  bool  // Start requested, result pending
	startErr  error // Last start failure
	sessionID api.SessionID
	winNext   bool

	initial  Balances // Balances reported by start
	balances Balances // Latest authoritative balances
	endSent  bool
	ended    bool  // End result applied; later collects are ignored
	endErr   error // End failure; balances are the last local ones

	collectsSent    int
	collectsApplied int
	collectsFailed  int
}

// NewMachine creates an idle machine. A nil logger discards output.
func NewMachine(logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Machine{logger: logger, epoch: epochs.Add(1), winNext: true}
}

// Start requests a new session for the given skin.
func (m *Machine) Start(skin int) (Request, error) {
	if m.status != core.StatusIdle || m.starting {
		return Request{}, ErrNotIdle
	}
	m.starting = true
	m.startErr = nil
	return Request{Kind: KindStart, Epoch: m.epoch, Skin: skin}, nil
}

// Collect requests one egg collection. Call it exactly once per egg.
func (m *Machine) Collect() (Request, error) {
	if m.status != core.StatusRunning || m.endSent {
		return Request{}, ErrNotRunning
	}
	m.collectsSent++
	return Request{Kind: KindCollect, Epoch: m.epoch}, nil
}

// End requests the session close with the given terminal outcome.
// Only the first call succeeds.
func (m *Machine) End(outcome core.Status) (Request, error) {
	if m.status != core.StatusRunning || m.endSent {
		return Request{}, ErrNotRunning
	}
	m.endSent = true
	m.status = outcome
	return Request{Kind: KindEnd, Epoch: m.epoch, Outcome: outcome}, nil
}

// Reset forgets the session. Results of calls made before Reset are ignored.
func (m *Machine) Reset() {
	m.epoch = epochs.Add(1)
	m.status = core.StatusIdle
	m.starting = false
	m.startErr = nil
	m.sessionID = ""
	m.winNext = true
	m.initial = Balances{}
	m.balances = Balances{}
	m.endSent = false
	m.ended = false
	m.endErr = nil
	m.collectsSent = 0
	m.collectsApplied = 0
	m.collectsFailed = 0
}

// Apply folds a result into the state. Returns false if it was dropped.
func (m *Machine) Apply(res Result) bool {
	if res.Epoch != m.epoch {
		m.logger.Debug("dropping stale result", "kind", res.Kind, "epoch", res.Epoch, "current", m.epoch)
		return false
	}

	switch res.Kind {
	case KindStart:
		return m.applyStart(res)
	case KindCollect:
		return m.applyCollect(res)
	case KindEnd:
		return m.applyEnd(res)
	}
	return false
}

func (m *Machine) applyStart(res Result) bool {
	if !m.starting {
		return false
	}
	m.starting = false
	if res.Err != nil {
		m.startErr = res.Err
		m.logger.Error("session start failed", "err", res.Err)
		return true
	}

	m.endSent = false
	m.ended = false
	m.endErr = nil
	m.sessionID = res.Start.SessionID
	m.winNext = res.Start.WinNext
	m.status = core.StatusRunning
	m.merge(res.Start.Eggs, res.Start.USDT)
	m.initial = m.balances
	m.logger.Info("session started", "session", m.sessionID, "win_next", m.winNext)
	return true
}

func (m *Machine) applyCollect(res Result) bool {
	if m.ended {
		m.logger.Debug("ignoring collect after end", "session", m.sessionID)
		return false
	}
	if res.Err != nil {
		m.collectsFailed++
		m.logger.Warn("collect failed, balance unchanged", "session", m.sessionID, "err", res.Err)
		return true
	}
	m.collectsApplied++
	m.merge(res.Check.Eggs, res.Check.USDT)
	return true
}

func (m *Machine) applyEnd(res Result) bool {
	if m.ended {
		return false
	}
	m.ended = true
	if res.Err != nil {
		m.endErr = res.Err
		m.logger.Warn("end failed, keeping last balances", "session", m.sessionID, "err", res.Err)
		return true
	}
	m.merge(res.Check.Eggs, res.Check.USDT)
	m.logger.Info("session ended", "session", m.sessionID, "outcome", m.status,
		"eggs", m.balances.Eggs, "usdt", m.balances.USDT)
	return true
}

// merge stores whichever balances the server sent.
func (m *Machine) merge(eggs, usdt *api.Amount) {
	if eggs != nil {
		m.balances.Eggs = eggs.String()
	}
	if usdt != nil {
		m.balances.USDT = usdt.String()
	}
}

// Status returns the session status.
func (m *Machine) Status() core.Status { return m.status }

// Starting reports whether a start call is in flight.
func (m *Machine) Starting() bool { return m.starting }

// StartErr returns the last start failure, cleared by the next Start.
func (m *Machine) StartErr() error { return m.startErr }

// SessionID returns the server session id, empty before start.
func (m *Machine) SessionID() api.SessionID { return m.sessionID }

// WinNext returns the server's prediction. False means the losing override applies.
func (m *Machine) WinNext() bool { return m.winNext }

// Balances returns the latest authoritative balances.
func (m *Machine) Balances() Balances { return m.balances }

// InitialBalances returns the balances reported at start.
func (m *Machine) InitialBalances() Balances { return m.initial }

// Ended reports whether the end result (or failure) has been applied.
func (m *Machine) Ended() bool { return m.ended }

// EndErr returns the end failure, if any.
func (m *Machine) EndErr() error { return m.endErr }

// Epoch returns the current epoch.
func (m *Machine) Epoch() uint64 { return m.epoch }

// CollectStats returns collects sent, applied and failed this session.
func (m *Machine) CollectStats() (sent, applied, failed int) {
	return m.collectsSent, m.collectsApplied, m.collectsFailed
}
