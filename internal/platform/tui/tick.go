// Package tui hosts games in a terminal through Bubble Tea.
// It owns the frame clock, turns key and mouse messages into engine
// input and paints the cell screen with lipgloss.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// ID ties the message to the game model that scheduled it, so a stale
// tick from a finished game cannot drive a new one.
type TickMsg struct {
	ID   int
	Time time.Time
}

var lastTickID atomic.Int64

func nextTickID() int {
	return int(lastTickID.Add(1))
}

// tickCmd returns a Bubble Tea command that sends one tick after a frame interval.
func tickCmd(tickRate, id int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
