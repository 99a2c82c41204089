// Package tui provides the Bubble Tea integration for Snek.
// It owns the fixed-rate tick loop, maps keys to game actions, turns the
// game's screen buffer into styled terminal output, and runs the level picker.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Ticks are scheduled
// one at a time, so a slow frame delays the next tick instead of queueing.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
