// internal/input/action.go
package input

import (
	"strings"

	"github.com/bethropolis/tidepad/internal/command"
)

// Action is what a key press asks the app to do.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionCloseFile
	ActionPalette // pick any command from a list
	ActionCommand // run ActionEvent.Command

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd

	// --- Text Manipulation ---
	ActionInsertRune
	ActionInsertNewLine
	ActionDeleteCharForward
	ActionDeleteCharBackward

	// --- History ---
	ActionUndo
	ActionRedo
)

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action  Action
	Rune    rune            // ActionInsertRune
	Command command.Command // ActionCommand
	Args    []string        // ActionCommand
}

var actionNames = map[Action]string{
	ActionUnknown:            "unknown",
	ActionQuit:               "quit",
	ActionCloseFile:          "close file",
	ActionPalette:            "command palette",
	ActionCommand:            "command",
	ActionMoveUp:             "cursor up",
	ActionMoveDown:           "cursor down",
	ActionMoveLeft:           "cursor left",
	ActionMoveRight:          "cursor right",
	ActionMovePageUp:         "page up",
	ActionMovePageDown:       "page down",
	ActionMoveHome:           "line start",
	ActionMoveEnd:            "line end",
	ActionInsertRune:         "insert",
	ActionInsertNewLine:      "new line",
	ActionDeleteCharForward:  "delete",
	ActionDeleteCharBackward: "backspace",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// String describes the event for the help page.
func (e ActionEvent) String() string {
	switch e.Action {
	case ActionCommand:
		return strings.TrimSpace(e.Command.String() + " " + strings.Join(e.Args, " "))
	case ActionInsertRune:
		if e.Rune == '\t' {
			return "insert tab"
		}
		return "insert " + string(e.Rune)
	default:
		return e.Action.String()
	}
}
