package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-dash/internal/core"
)

// HoldWindow is how long a movement key counts as held after its last
// press. Terminals only report key repeats, never releases, so a held
// arrow shows up as a stream of presses roughly every 30-50ms after an
// initial delay of a few hundred milliseconds.
const HoldWindow = 450 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	// Debug enables the debug bindings (1-7, b, g).
	Debug bool
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper(debug bool) *KeyMapper {
	return &KeyMapper{Debug: debug}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ":
		return core.ActionDash, false
	case "x", "shift+up", "shift+down", "shift+left", "shift+right":
		return core.ActionBrake, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "enter":
		return core.ActionConfirm, false
	}

	if km.Debug {
		switch key {
		case "g":
			return core.ActionDebugGodMode, false
		case "b":
			return core.ActionDebugBonus, false
		case "1", "2", "3", "4", "5", "6", "7":
			return core.DebugSlots[key[0]-'1'], false
		}
	} else if key == "b" {
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// holdable reports whether an action stays active between key repeats.
// Dash is an edge trigger, so every tap must reach the game as a press.
func holdable(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
		core.ActionBrake:
		return true
	}
	return false
}

// HeldKeys emulates key-up events for continuous actions. Presses of
// holdable actions refresh a deadline; the action stays set in every
// frame until the deadline passes. Everything else fires once.
type HeldKeys struct {
	window time.Duration
	until  map[core.Action]time.Time
	once   core.InputFrame
}

// NewHeldKeys creates a tracker with the given hold window.
func NewHeldKeys(window time.Duration) *HeldKeys {
	return &HeldKeys{
		window: window,
		until:  make(map[core.Action]time.Time),
		once:   core.NewInputFrame(),
	}
}

// Press records an action observed at now.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if holdable(a) {
		h.until[a] = now.Add(h.window)
		return
	}
	h.once.Set(a)
}

// Frame builds the input frame for a tick at now and consumes one-shot actions.
func (h *HeldKeys) Frame(now time.Time) core.InputFrame {
	frame := h.once.Clone()
	h.once.Clear()
	for a, deadline := range h.until {
		if now.After(deadline) {
			delete(h.until, a)
			continue
		}
		frame.Set(a)
	}
	return frame
}

// Release drops every held and pending action.
func (h *HeldKeys) Release() {
	clear(h.until)
	h.once.Clear()
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
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
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
