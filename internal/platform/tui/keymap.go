package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/php-runner/internal/core"
	"github.com/vovakirdan/php-runner/internal/engine"
)

// JumpKeys are the terminal keys bound to the engine's jump source.
var JumpKeys = []string{" ", "up", "w"}

// KeyMapper translates Bubble Tea key and mouse messages to engine input.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a host-level action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", " ":
		return core.ActionJump, false
	case "s", "down":
		return core.ActionDown, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// KeyEvent converts a key message into a raw engine event.
// Whether it means anything is up to the engine's mapper.
func (km *KeyMapper) KeyEvent(msg tea.KeyMsg) engine.Event {
	return engine.KeyEvent(msg.String())
}

// MouseEvent converts a mouse press into a raw engine event.
// Releases, motion and wheel scrolling report false.
func (km *KeyMapper) MouseEvent(msg tea.MouseMsg) (engine.Event, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button == tea.MouseButtonNone {
		return engine.Event{}, false
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown,
		tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return engine.Event{}, false
	}
	return engine.Event{Source: engine.SourceMouse}, true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
