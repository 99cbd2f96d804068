package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/bethropolis/tidepad/internal/command"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"ctrl+s saves", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionEvent{Action: ActionCommand, Command: command.Save}},
		{"alt+right next file", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModAlt), ActionEvent{Action: ActionCommand, Command: command.NextFile}},
		{"ctrl+left previous file", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl), ActionEvent{Action: ActionCommand, Command: command.PrevFile}},
		{"f1 opens help", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), ActionEvent{Action: ActionCommand, Command: command.Open, Args: []string{"help"}}},
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'x'}},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), ActionEvent{Action: ActionInsertRune, Rune: 'X'}},
		{"alt rune ignored", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
		{"arrow moves", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionEvent{Action: ActionMoveUp}},
		{"ctrl+q quits", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), ActionEvent{Action: ActionQuit}},
		{"ctrl+alt+s save as", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl|tcell.ModAlt), ActionEvent{Action: ActionCommand, Command: command.SaveAs}},
		{"backspace deletes", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteCharBackward}},
		{"ctrl+p palette", tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModCtrl), ActionEvent{Action: ActionPalette}},
		{"ctrl+z undo", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionEvent{Action: ActionUndo}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev))
		})
	}
}

func TestBindingsOnlyUseKnownCommands(t *testing.T) {
	p := NewInputProcessor()
	check := func(km Keymap) {
		for key, ev := range km {
			if ev.Action == ActionCommand {
				_, ok := command.Parse(ev.Command.String())
				assert.True(t, ok, "key %v bound to %v", key, ev.Command)
			}
		}
	}
	check(p.keymap)
	for _, km := range p.modKeymap {
		check(km)
	}
}

func TestBindingsForHelp(t *testing.T) {
	byKey := map[string]string{}
	for _, b := range NewInputProcessor().Bindings() {
		byKey[b.Key] = b.Action.String()
	}
	assert.Equal(t, "save", byKey["Ctrl+S"])
	assert.Equal(t, "save-as", byKey["Ctrl+Alt+S"])
	assert.Equal(t, "open help", byKey["F1"])
	assert.Equal(t, "next-file", byKey["Alt+Right"])
	assert.Equal(t, "backspace", byKey["Backspace"])
	assert.Equal(t, "insert tab", byKey["Tab"])
	assert.Equal(t, "quit", byKey["Ctrl+Q"])
}
