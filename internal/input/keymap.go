// internal/input/keymap.go
package input

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidepad/internal/command"
)

// Keymap maps special keys to events.
type Keymap map[tcell.Key]ActionEvent

// ModKeymap maps modifier-qualified keys to events.
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	keymap    Keymap
	modKeymap ModKeymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:    make(Keymap),
		modKeymap: make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func cmd(c command.Command, args ...string) ActionEvent {
	return ActionEvent{Action: ActionCommand, Command: c, Args: args}
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionEvent{Action: ActionMoveUp}
	p.keymap[tcell.KeyDown] = ActionEvent{Action: ActionMoveDown}
	p.keymap[tcell.KeyLeft] = ActionEvent{Action: ActionMoveLeft}
	p.keymap[tcell.KeyRight] = ActionEvent{Action: ActionMoveRight}
	p.keymap[tcell.KeyPgUp] = ActionEvent{Action: ActionMovePageUp}
	p.keymap[tcell.KeyPgDn] = ActionEvent{Action: ActionMovePageDown}
	p.keymap[tcell.KeyHome] = ActionEvent{Action: ActionMoveHome}
	p.keymap[tcell.KeyEnd] = ActionEvent{Action: ActionMoveEnd}
	p.keymap[tcell.KeyEnter] = ActionEvent{Action: ActionInsertNewLine}
	p.keymap[tcell.KeyBackspace] = ActionEvent{Action: ActionDeleteCharBackward}
	p.keymap[tcell.KeyBackspace2] = ActionEvent{Action: ActionDeleteCharBackward}
	p.keymap[tcell.KeyDelete] = ActionEvent{Action: ActionDeleteCharForward}
	p.keymap[tcell.KeyTab] = ActionEvent{Action: ActionInsertRune, Rune: '\t'}
	p.keymap[tcell.KeyF1] = cmd(command.Open, "help")
	p.keymap[tcell.KeyF2] = cmd(command.Rename)
	p.keymap[tcell.KeyF3] = cmd(command.Replace)
	p.keymap[tcell.KeyF5] = cmd(command.Console)

	// Ctrl+letter arrives as its own key code. Ctrl+H, Ctrl+I and Ctrl+M
	// share codes with Backspace, Tab and Enter and stay unbound.
	p.keymap[tcell.KeyCtrlQ] = ActionEvent{Action: ActionQuit}
	p.keymap[tcell.KeyCtrlW] = ActionEvent{Action: ActionCloseFile}
	p.keymap[tcell.KeyCtrlP] = ActionEvent{Action: ActionPalette}
	p.keymap[tcell.KeyCtrlS] = cmd(command.Save)
	p.keymap[tcell.KeyCtrlO] = cmd(command.OpenFile)
	p.keymap[tcell.KeyCtrlN] = cmd(command.NewFile)
	p.keymap[tcell.KeyCtrlR] = cmd(command.Recent)
	p.keymap[tcell.KeyCtrlF] = cmd(command.Find)
	p.keymap[tcell.KeyCtrlG] = cmd(command.Goto)
	p.keymap[tcell.KeyCtrlC] = cmd(command.Copy)
	p.keymap[tcell.KeyCtrlX] = cmd(command.Cut)
	p.keymap[tcell.KeyCtrlV] = cmd(command.Paste)
	p.keymap[tcell.KeyCtrlA] = cmd(command.SelectAll)
	p.keymap[tcell.KeyCtrlE] = cmd(command.Encoding)
	p.keymap[tcell.KeyCtrlL] = cmd(command.Syntax)
	p.keymap[tcell.KeyCtrlK] = cmd(command.OpenFolder)
	p.keymap[tcell.KeyCtrlT] = cmd(command.ReadOnly)
	p.keymap[tcell.KeyCtrlZ] = ActionEvent{Action: ActionUndo}
	p.keymap[tcell.KeyCtrlY] = ActionEvent{Action: ActionRedo}

	alt := make(Keymap)
	alt[tcell.KeyRight] = cmd(command.NextFile)
	alt[tcell.KeyLeft] = cmd(command.PrevFile)
	p.modKeymap[tcell.ModAlt] = alt

	ctrlAlt := make(Keymap)
	ctrlAlt[tcell.KeyCtrlS] = cmd(command.SaveAs)
	p.modKeymap[tcell.ModCtrl|tcell.ModAlt] = ctrlAlt

	ctrl := make(Keymap)
	ctrl[tcell.KeyRight] = cmd(command.NextFile)
	ctrl[tcell.KeyLeft] = cmd(command.PrevFile)
	p.modKeymap[tcell.ModCtrl] = ctrl
}

// ProcessEvent decodes ev.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return action
		}
	}
	// Ctrl+letter key codes already imply the modifier.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return action
		}
	}

	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}
	return ActionEvent{Action: ActionUnknown}
}

// Binding is one entry of the key map, for display.
type Binding struct {
	Key    string
	Action ActionEvent
}

// Bindings lists every binding sorted by what it does.
func (p *InputProcessor) Bindings() []Binding {
	var out []Binding
	for key, ev := range p.keymap {
		out = append(out, Binding{Key: keyName(tcell.ModNone, key), Action: ev})
	}
	for mod, km := range p.modKeymap {
		for key, ev := range km {
			out = append(out, Binding{Key: keyName(mod, key), Action: ev})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Action.String(), out[j].Action.String()
		if a != b {
			return a < b
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// keyName renders a key like "Ctrl+S" or "Alt+Right".
func keyName(mod tcell.ModMask, key tcell.Key) string {
	var name string
	switch key {
	case tcell.KeyBackspace:
		name = "Backspace"
	case tcell.KeyTab:
		name = "Tab"
	case tcell.KeyEnter:
		name = "Enter"
	case tcell.KeyBackspace2:
		name = "Backspace2"
	default:
		if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
			mod |= tcell.ModCtrl
			name = string(rune('A' + key - tcell.KeyCtrlA))
		} else if n, ok := tcell.KeyNames[key]; ok {
			name = n
		} else {
			name = "Key" + strconv.Itoa(int(key))
		}
	}

	var parts []string
	if mod&tcell.ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if mod&tcell.ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if mod&tcell.ModShift != 0 {
		parts = append(parts, "Shift")
	}
	return strings.Join(append(parts, name), "+")
}
