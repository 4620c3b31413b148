package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/golden-duck/internal/core"
	"github.com/vovakirdan/golden-duck/internal/duck"
)

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenHistory
)

// AppModel manages the full client flow: picker -> game -> picker, with the
// run history reachable from the picker. It is the top-level model for both
// local play and SSH sessions.
type AppModel struct {
	deps     Deps
	config   core.RuntimeConfig
	screen   appScreen
	menu     MenuModel
	game     *Model
	history  HistoryModel
	quitting bool
}

// NewApp creates the app. A non-nil start duck skips the picker.
func NewApp(deps Deps, cfg core.RuntimeConfig, start *duck.Duck) AppModel {
	deps = deps.withDefaults()
	m := AppModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(deps.Store, deps.Logger, cfg.ScreenW, cfg.ScreenH),
	}
	if start != nil {
		game := NewModel(deps, *start, cfg)
		m.game = &game
		m.screen = screenGame
	}
	return m
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the app.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		m.history = NewHistoryModel(m.deps.Store, m.deps.Duck.Display.Decimals, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game := NewModel(m.deps, *selected, m.config)
		m.game = &game
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The tick chain stops once ticks reach the menu
	if m.game.BackToMenu() {
		m.game = nil
		m.toMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateHistory handles updates when the history is shown.
func (m AppModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if historyModel, ok := newModel.(HistoryModel); ok {
		m.history = historyModel
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.toMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m *AppModel) toMenu() {
	m.menu = NewMenuModel(m.deps.Store, m.deps.Logger, m.config.ScreenW, m.config.ScreenH)
	m.screen = screenMenu
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}

// Run starts the Bubble Tea program for local play.
func Run(deps Deps, cfg core.RuntimeConfig, start *duck.Duck) error {
	p := tea.NewProgram(
		NewApp(deps, cfg, start),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks flap
	)

	_, err := p.Run()
	return err
}
