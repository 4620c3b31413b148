package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/golden-duck/internal/duck"
	"github.com/vovakirdan/golden-duck/internal/storage"
)

// MenuModel is the Bubble Tea model for the duck picker.
type MenuModel struct {
	items       []duck.Duck
	cursor      int
	width       int
	height      int
	store       *storage.Store
	logger      *log.Logger
	keyMapper   *KeyMapper
	highScore   int
	quitting    bool
	selected    *duck.Duck // Set when user picks a duck
	openHistory bool       // True if user pressed Tab for history
}

// NewMenuModel creates a picker with the cursor on the stored selection.
func NewMenuModel(store *storage.Store, logger *log.Logger, width, height int) MenuModel {
	m := MenuModel{
		items:     duck.Catalog,
		width:     width,
		height:    height,
		store:     store,
		logger:    logger,
		keyMapper: NewKeyMapper(),
	}

	if store == nil {
		return m
	}
	if key, _, ok, err := store.PeekDuckSelection(); err == nil && ok {
		m.moveTo(key)
	}
	if high, err := store.HighScore(); err == nil {
		m.highScore = high
	}
	return m
}

func (m *MenuModel) moveTo(key string) {
	for i, d := range m.items {
		if d.Key == key {
			m.cursor = i
			return
		}
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		selected := m.items[m.cursor]
		m.selected = &selected
		if m.store != nil {
			if err := m.store.SetDuckSelection(selected.Key, selected.ID); err != nil && m.logger != nil {
				m.logger.Warn("cannot store duck selection", "duck", selected.Key, "err", err)
			}
		}

	case MenuActionHistory:
		m.openHistory = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  G O L D E N   D U C K  ", m.width)))
	b.WriteString("\n\n")

	subtitle := "Pick your duck"
	if m.highScore > 0 {
		subtitle = fmt.Sprintf("Pick your duck   (best: %d)", m.highScore)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, d := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(d.Color))
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true)
		}
		line := fmt.Sprintf("%s%-12s", cursor, d.Name)
		b.WriteString(strings.Repeat(" ", max(0, (m.width-len(line))/2)))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Fly  |  Tab: History  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the picked duck, or nil if none selected.
func (m MenuModel) Selected() *duck.Duck {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the run history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
