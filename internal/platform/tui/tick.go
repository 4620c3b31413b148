// Package tui provides the Bubble Tea integration for the Golden Duck client.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultTickRate matches the simulation's own fallback for a zero rate.
const defaultTickRate = 60

// TickMsg is one fixed simulation step. Its time drives the HUD count-up
// and the day/night clock, never the physics.
type TickMsg time.Time

// tickInterval converts a tick rate to the time between steps.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next simulation step.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
