// Package tui provides the Bubble Tea integration for Neon Dash.
// It handles the terminal UI loop, input mapping, menus, the scoreboard
// and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Loop identifies the tick chain so a model ignores ticks left over
// from a previous game in the same program.
type TickMsg struct {
	Time time.Time
	Loop int64
}

var loops atomic.Int64

// nextLoop returns a fresh tick chain id.
func nextLoop() int64 {
	return loops.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
