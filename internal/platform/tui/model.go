package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/golden-duck/internal/api"
	"github.com/vovakirdan/golden-duck/internal/config"
	"github.com/vovakirdan/golden-duck/internal/core"
	"github.com/vovakirdan/golden-duck/internal/duck"
	"github.com/vovakirdan/golden-duck/internal/games/flappyduck"
	"github.com/vovakirdan/golden-duck/internal/present"
	"github.com/vovakirdan/golden-duck/internal/session"
	"github.com/vovakirdan/golden-duck/internal/storage"
)

// DefaultCallTimeout bounds a single backend call.
const DefaultCallTimeout = 5 * time.Second

var errNoBackend = errors.New("tui: no backend configured")

// Deps are the collaborators shared by every screen.
type Deps struct {
	Duck    config.DuckConfig
	API     session.API    // nil: every call fails with a connection error
	Store   *storage.Store // nil: no history, no stored duck selection
	Logger  *log.Logger    // nil: discard
	Timeout time.Duration  // per backend call, DefaultCallTimeout if zero
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.Timeout <= 0 {
		d.Timeout = DefaultCallTimeout
	}
	return d
}

// sessionResultMsg carries a finished backend call back to the update loop.
type sessionResultMsg struct {
	session.Result
}

// Model is the Bubble Tea model for one Flappy Duck screen: the game, its
// backend session and the HUD presentation.
type Model struct {
	deps       Deps
	game       *flappyduck.Game
	machine    *session.Machine
	adapter    *present.Adapter
	runs       *runRecorder
	screen     *core.Screen
	config     core.RuntimeConfig
	fixedSeed  bool
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	now        time.Time
	notice     string // Start error shown in the idle overlay
	quitting   bool
	backToMenu bool
}

// NewModel creates a game screen flying the given duck.
func NewModel(deps Deps, d duck.Duck, cfg core.RuntimeConfig) Model {
	deps = deps.withDefaults()
	fixedSeed := cfg.Seed != 0
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	now := time.Now()
	machine := session.NewMachine(deps.Logger.WithPrefix("session"))
	adapter := present.NewAdapter(deps.Duck.Display, now)
	runs := &runRecorder{
		store:   deps.Store,
		logger:  deps.Logger,
		machine: machine,
		duck:    d,
	}
	adapter.OnGameOver(func(out present.Outcome) { runs.save(core.StatusOver, out) })
	adapter.OnGameFinish(func(out present.Outcome) { runs.save(core.StatusFinished, out) })

	return Model{
		deps:       deps,
		game:       flappyduck.New(deps.Duck),
		machine:    machine,
		adapter:    adapter,
		runs:       runs,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		fixedSeed:  fixedSeed,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		now:        now,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.keyMapper.MapMouse(msg) == core.ActionFlap {
			m.inputFrame.Set(core.ActionFlap)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The simulation runs in world pixels, so a resize only changes the viewport.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case sessionResultMsg:
		return m.handleResult(msg.Result)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.machine.Reset()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		if m.gameState.Status != core.StatusRunning {
			m.machine.Reset()
			m.backToMenu = true
		}
	case core.ActionRestart:
		switch {
		case m.gameState.Status.Terminal() && m.machine.Ended():
			m.restart()
		case m.machine.StartErr() != nil && !m.machine.Starting():
			// Retry the failed start on the next tick
			m.game.CancelStart()
			m.inputFrame.Set(core.ActionFlap)
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// restart abandons the finished session and resets the game.
func (m *Model) restart() {
	m.machine.Reset()
	m.adapter.Reset()
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.notice = ""
	m.inputFrame.Clear()
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.now = now

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := m.handleEvents(result.Events)
	tick := tickCmd(m.config.TickRate)
	if len(cmds) == 0 {
		return m, tick
	}
	// Calls made in one tick reach the backend in event order.
	return m, tea.Batch(tick, tea.Sequence(cmds...))
}

// handleEvents turns game events into session requests.
func (m *Model) handleEvents(events []core.Event) []tea.Cmd {
	var cmds []tea.Cmd
	logger := m.deps.Logger

	for _, e := range events {
		switch e.Kind {
		case core.EventStart:
			d := m.resolveDuck()
			req, err := m.machine.Start(d.ID)
			if err != nil {
				logger.Warn("start ignored", "err", err)
				continue
			}
			m.notice = ""
			cmds = append(cmds, m.request(req))

		case core.EventCollected:
			m.adapter.Reveal()
			req, err := m.machine.Collect()
			if err != nil {
				logger.Warn("collect not sent", "egg", e.ID, "err", err)
				continue
			}
			cmds = append(cmds, m.request(req))

		case core.EventTierUp:
			logger.Info("tier up", "tier", e.Tier, "collected", e.Count)

		case core.EventOver, core.EventFinished:
			outcome := core.StatusOver
			if e.Kind == core.EventFinished {
				outcome = core.StatusFinished
			}
			req, err := m.machine.End(outcome)
			if err != nil {
				logger.Warn("end not sent", "err", err)
				continue
			}
			logger.Info("run ended", "outcome", outcome, "reason", e.Reason, "score", m.gameState.Score,
				"collected", m.gameState.Collected)
			cmds = append(cmds, m.request(req))
		}
	}
	return cmds
}

// resolveDuck consumes the stored picker selection, if any, and returns
// the duck to start the session with.
func (m *Model) resolveDuck() duck.Duck {
	if m.deps.Store == nil {
		return m.runs.duck
	}

	stored, id, ok, err := m.deps.Store.TakeDuckSelection()
	if err != nil {
		m.deps.Logger.Warn("cannot read duck selection", "err", err)
		return m.runs.duck
	}
	if !ok {
		return m.runs.duck
	}

	key, known := duck.Normalize(stored)
	if !known {
		m.deps.Logger.Warn("unknown duck, using default", "duck", stored, "fallback", key)
	}
	d, _ := duck.ByKey(key)
	if id != 0 && id != d.ID {
		m.deps.Logger.Warn("stored duck id does not match catalog", "duck", key, "stored", id, "catalog", d.ID)
	}
	m.runs.duck = d
	return d
}

// request runs a session call off the update loop.
func (m *Model) request(req session.Request) tea.Cmd {
	client := m.deps.API
	timeout := m.deps.Timeout
	return func() tea.Msg {
		if client == nil {
			return sessionResultMsg{session.Result{Request: req, Err: errNoBackend}}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return sessionResultMsg{session.Do(ctx, client, req)}
	}
}

// handleResult applies a backend result on the update loop.
func (m Model) handleResult(res session.Result) (tea.Model, tea.Cmd) {
	if !m.machine.Apply(res) {
		return m, nil
	}

	switch res.Kind {
	case session.KindStart:
		if err := m.machine.StartErr(); err != nil {
			m.notice = startErrorText(err)
			return m, nil
		}
		m.game.SetLosing(!m.machine.WinNext())
		m.game.Begin()
		m.gameState = m.game.State()
		m.adapter.SetBalances(m.machine.Balances(), m.now)

	case session.KindCollect:
		m.adapter.SetBalances(m.machine.Balances(), m.now)

	case session.KindEnd:
		m.adapter.SetBalances(m.machine.Balances(), m.now)
		m.adapter.Finish(m.game.State(), m.machine.Balances())
	}

	return m, nil
}

// startErrorText is the overlay message for a failed session start.
func startErrorText(err error) string {
	var apiErr *api.Error
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Not authorized: check GOLDENDUCK_TOKEN"
	case errors.Is(err, context.DeadlineExceeded):
		return "Connection timed out"
	case errors.Is(err, errNoBackend):
		return "No backend configured"
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return fmt.Sprintf("Server error %d: %s", apiErr.Status, apiErr.Message)
		}
		return fmt.Sprintf("Server error %d", apiErr.Status)
	default:
		return "Connection error"
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)
	m.drawOverlay()

	dir := config.UserPath("screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := fmt.Sprintf("%s/%s_%s.txt", dir, m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.drawOverlay()

	return RenderScreen(m.screen, PaletteFor(m.adapter.Theme(m.now)))
}

// drawOverlay draws the balance line and the session messages over the play field.
func (m *Model) drawOverlay() {
	s := m.screen
	w, h := s.Width(), s.Height()
	mid := h / 2

	if line := m.adapter.Line(m.now); line != "" {
		text := " " + line + " "
		s.DrawTextColor(w-len([]rune(text))-2, 0, text, core.ColorBalance)
	}
	s.DrawTextColor(2, h-1, " "+m.runs.duck.Name+" ", core.ColorDim)

	switch m.gameState.Status {
	case core.StatusIdle:
		switch {
		case m.notice != "":
			s.DrawTextCenteredColor(mid-1, m.notice, core.ColorAlert)
			s.DrawTextCenteredColor(mid+1, "R: retry   B: menu", core.ColorHUD)
		case m.machine.Starting():
			s.DrawTextCenteredColor(mid, "Connecting...", core.ColorHUD)
		case m.game.InputLocked():
		default:
			s.DrawTextCenteredColor(mid-1, "Press SPACE to fly", core.ColorHUD)
			s.DrawTextCenteredColor(mid+1, "B: menu   Q: quit", core.ColorDim)
		}

	case core.StatusRunning:
		if rem := m.game.IdleRemaining(); rem <= 5 {
			s.DrawTextCenteredColor(2, fmt.Sprintf("Keep moving! %.0f", math.Ceil(rem)), core.ColorAlert)
		}

	case core.StatusOver, core.StatusFinished:
		boxW := min(50, w)
		s.DrawBox(core.NewRect((w-boxW)/2, mid-3, boxW, 9), core.ColorHUD)
		title := "GAME OVER"
		if m.gameState.Status == core.StatusFinished {
			title = "ALL EGGS COLLECTED!"
		}
		s.DrawTextCenteredColor(mid-2, title, core.ColorAlert)
		s.DrawTextCenteredColor(mid, fmt.Sprintf("Score: %d   Eggs: %d", m.gameState.Score, m.gameState.Collected), core.ColorHUD)
		if m.gameState.Status == core.StatusOver {
			s.DrawTextCenteredColor(mid+1, reasonText(m.gameState.Reason), core.ColorDim)
		}
		switch {
		case !m.machine.Ended():
			s.DrawTextCenteredColor(mid+3, "Saving...", core.ColorDim)
		case m.machine.EndErr() != nil:
			s.DrawTextCenteredColor(mid+3, "Server unreachable, balance may be out of date", core.ColorAlert)
			s.DrawTextCenteredColor(mid+4, "R: play again   B: menu", core.ColorHUD)
		default:
			s.DrawTextCenteredColor(mid+3, "R: play again   B: menu", core.ColorHUD)
		}
	}
}

func reasonText(r core.EndReason) string {
	switch r {
	case core.ReasonPipe:
		return "Hit a pipe"
	case core.ReasonGround:
		return "Hit the ground"
	case core.ReasonBounds:
		return "Flew out of bounds"
	case core.ReasonIdle:
		return "Too slow"
	default:
		return ""
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last stepped game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// runRecorder stores finished runs in the local history.
type runRecorder struct {
	store   *storage.Store
	logger  *log.Logger
	machine *session.Machine
	duck    duck.Duck
}

func (r *runRecorder) save(outcome core.Status, out present.Outcome) {
	if r.store == nil {
		return
	}
	run := storage.Run{
		SessionID: string(r.machine.SessionID()),
		DuckKey:   r.duck.Key,
		Score:     out.Score,
		Collected: out.Collected,
		Outcome:   outcome.String(),
		Reason:    out.Reason.String(),
		Eggs:      out.Eggs,
		USDT:      out.USDT,
		StartUSDT: r.machine.InitialBalances().USDT,
	}
	if _, err := r.store.SaveRun(run); err != nil {
		r.logger.Warn("cannot save run", "err", err)
	}
	if err := r.store.ClearDuckSelection(); err != nil {
		r.logger.Warn("cannot clear duck selection", "err", err)
	}
}
