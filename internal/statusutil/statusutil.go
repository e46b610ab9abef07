// Package statusutil maps the user-facing state vocabulary shared by the
// CLI and TUI onto task states.
package statusutil

import (
	"fmt"
	"strings"

	"trail-cli/internal/model"
)

// Parse maps a user-supplied word to a task state. It accepts the full
// state name, its first letter, or the checkbox character used in track
// files ('>' active, '-' blocked, 'x' done, '~' parked).
func Parse(s string) (model.State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "t":
		return model.StateTodo, nil
	case "active", "a", ">":
		return model.StateActive, nil
	case "blocked", "b", "-":
		return model.StateBlocked, nil
	case "done", "d", "x":
		return model.StateDone, nil
	case "parked", "p", "~":
		return model.StateParked, nil
	case "":
		return "", fmt.Errorf("invalid state: empty")
	default:
		return "", fmt.Errorf("invalid state: %s", strings.TrimSpace(s))
	}
}

// Name returns the display name for a state.
func Name(state model.State) string {
	switch state {
	case model.StateActive:
		return "Active"
	case model.StateBlocked:
		return "Blocked"
	case model.StateDone:
		return "Done"
	case model.StateParked:
		return "Parked"
	default:
		return "Todo"
	}
}

// All returns the states in display order.
func All() []model.State {
	return []model.State{
		model.StateTodo,
		model.StateActive,
		model.StateBlocked,
		model.StateDone,
		model.StateParked,
	}
}

// IsOpen reports whether a state counts as unresolved work.
func IsOpen(state model.State) bool {
	return state != model.StateDone
}
