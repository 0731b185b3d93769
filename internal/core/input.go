package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move up
	ActionDown           // S, Down arrow - move down
	ActionLeft           // A, Left arrow - move left
	ActionRight          // D, Right arrow - move right
	ActionDash           // Space - dash in the facing direction
	ActionBrake          // X, Shift+arrow - brake
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause game

	// Debug actions, only honored when the game runs with debug enabled.
	ActionDebugGodMode // G - toggle invulnerability
	ActionDebugBonus   // B while debugging - grant bonus score
	ActionDebugSlot1   // 1..7 - force-spawn the Nth power-up kind
	ActionDebugSlot2
	ActionDebugSlot3
	ActionDebugSlot4
	ActionDebugSlot5
	ActionDebugSlot6
	ActionDebugSlot7
)

// DebugSlots lists the force-spawn actions in slot order.
var DebugSlots = []Action{
	ActionDebugSlot1, ActionDebugSlot2, ActionDebugSlot3, ActionDebugSlot4,
	ActionDebugSlot5, ActionDebugSlot6, ActionDebugSlot7,
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDash:
		return "Dash"
	case ActionBrake:
		return "Brake"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionDebugGodMode:
		return "GodMode"
	case ActionDebugBonus:
		return "Bonus"
	}
	for i, slot := range DebugSlots {
		if a == slot {
			return "Slot" + string(rune('1'+i))
		}
	}
	return "Unknown"
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were active during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were active this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
