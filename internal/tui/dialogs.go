package tui

import (
	"context"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidepad/internal/command"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/platform"
)

const (
	maxSelectRows = 12
	invalidInput  = "invalid value"
	selectHint    = "enter: choose  esc: cancel  type to filter"
	promptHint    = "enter: confirm  esc: cancel"
)

// Dialogs draws select lists and prompts over the bottom of the screen. They
// read input from the TUI's event stream, so they must run on the goroutine
// that owns the screen.
type Dialogs struct {
	ui *TUI
}

// NewDialogs creates the dialog frontend on ui.
func NewDialogs(ui *TUI) *Dialogs {
	return &Dialogs{ui: ui}
}

var _ command.Dialogs = (*Dialogs)(nil)

// selectState is the list model behind Select.
type selectState struct {
	options  []command.Option
	filter   string
	visible  []int
	selected int
	offset   int
}

func newSelectState(options []command.Option, def string) *selectState {
	st := &selectState{options: options}
	st.refilter()
	for i, idx := range st.visible {
		if options[idx].Label == def {
			st.selected = i
			break
		}
	}
	return st
}

func (st *selectState) refilter() {
	st.visible = st.visible[:0]
	needle := strings.ToLower(st.filter)
	for i, o := range st.options {
		if needle == "" || strings.Contains(strings.ToLower(o.Label), needle) {
			st.visible = append(st.visible, i)
		}
	}
	st.selected, st.offset = 0, 0
}

func (st *selectState) move(delta int) {
	if len(st.visible) == 0 {
		return
	}
	st.selected = max(0, min(len(st.visible)-1, st.selected+delta))
}

func (st *selectState) scroll(rows int) {
	if st.selected < st.offset {
		st.offset = st.selected
	}
	if st.selected >= st.offset+rows {
		st.offset = st.selected - rows + 1
	}
}

func (st *selectState) current() (command.Option, bool) {
	if len(st.visible) == 0 {
		return command.Option{}, false
	}
	return st.options[st.visible[st.selected]], true
}

// Select shows options and returns the chosen one.
func (d *Dialogs) Select(ctx context.Context, title string, options []command.Option, cfg command.SelectConfig) (command.Option, error) {
	st := newSelectState(options, cfg.Default)
	for {
		d.drawSelect(title, st, cfg)

		ev, err := d.ui.NextEvent(ctx)
		if err != nil {
			return command.Option{}, err
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch key.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return command.Option{}, platform.ErrCancelled
		case tcell.KeyEnter:
			if o, ok := st.current(); ok {
				return o, nil
			}
		case tcell.KeyUp:
			st.move(-1)
		case tcell.KeyDown:
			st.move(1)
		case tcell.KeyPgUp:
			st.move(-maxSelectRows)
		case tcell.KeyPgDn:
			st.move(maxSelectRows)
		case tcell.KeyHome:
			st.selected = 0
		case tcell.KeyEnd:
			st.move(len(st.visible))
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if st.filter != "" {
				r := []rune(st.filter)
				st.filter = string(r[:len(r)-1])
				st.refilter()
			}
		case tcell.KeyRune:
			st.filter += string(key.Rune())
			st.refilter()
		}
	}
}

func (d *Dialogs) drawSelect(title string, st *selectState, cfg command.SelectConfig) {
	d.ui.Redraw()
	s := d.ui.screen
	width, height := d.ui.Size()

	rows := min(maxSelectRows, len(st.visible), max(1, height-3))
	if rows == 0 {
		rows = 1
	}
	st.scroll(rows)
	top := max(0, height-rows-2)

	header := title
	if st.filter != "" {
		header += " / " + st.filter
	}
	fillRow(s, 0, width, top, d.ui.Style("Dialog.Title"))
	drawText(s, 1, top, width, header, d.ui.Style("Dialog.Title"))

	for i := 0; i < rows; i++ {
		y := top + 1 + i
		style := d.ui.Style("Dialog")
		fillRow(s, 0, width, y, style)
		idx := st.offset + i
		if idx >= len(st.visible) {
			if len(st.visible) == 0 && i == 0 {
				drawText(s, 2, y, width, "(no matches)", d.ui.Style("Dialog.Hint"))
			}
			continue
		}
		o := st.options[st.visible[idx]]
		if idx == st.selected {
			style = d.ui.Style("Dialog.Selected")
			fillRow(s, 0, width, y, style)
		}
		label := o.Label
		if cfg.TextTransform {
			label = capitalize(label)
		}
		x := 1
		if glyph := iconGlyph(o.Icon); glyph != "" {
			x = drawText(s, x, y, width, glyph+" ", style)
		}
		drawText(s, x, y, width, label, style)
	}

	hintY := top + rows + 1
	if hintY < height {
		fillRow(s, 0, width, hintY, d.ui.Style("Dialog.Hint"))
		drawText(s, 1, hintY, width, selectHint, d.ui.Style("Dialog.Hint"))
	}
	s.HideCursor()
	d.ui.Show()
}

// Prompt asks for a line of text. Input failing v is rejected with an inline
// message and the prompt stays open.
func (d *Dialogs) Prompt(ctx context.Context, title, def string, kind command.InputKind, v command.Validation) (string, error) {
	input := []rune(def)
	errMsg := ""
	for {
		d.drawPrompt(title, string(input), errMsg)

		ev, err := d.ui.NextEvent(ctx)
		if err != nil {
			return "", err
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch key.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return "", platform.ErrCancelled
		case tcell.KeyEnter:
			value := string(input)
			if err := v.Check(value); err != nil {
				logger.DebugTagf("tui", "prompt %q rejected %q", title, value)
				errMsg = invalidInput
				continue
			}
			return value, nil
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
			errMsg = ""
		case tcell.KeyCtrlU:
			input = input[:0]
			errMsg = ""
		case tcell.KeyRune:
			r := key.Rune()
			if kind == command.InputNumber && !unicode.IsDigit(r) {
				continue
			}
			input = append(input, r)
			errMsg = ""
		}
	}
}

func (d *Dialogs) drawPrompt(title, value, errMsg string) {
	d.ui.Redraw()
	s := d.ui.screen
	width, height := d.ui.Size()
	top := max(0, height-3)

	fillRow(s, 0, width, top, d.ui.Style("Dialog.Title"))
	drawText(s, 1, top, width, title, d.ui.Style("Dialog.Title"))

	inputY := top + 1
	fillRow(s, 0, width, inputY, d.ui.Style("Dialog"))
	end := drawText(s, 1, inputY, width, "> "+value, d.ui.Style("Dialog"))

	if hintY := top + 2; hintY < height {
		style, text := d.ui.Style("Dialog.Hint"), promptHint
		if errMsg != "" {
			style, text = d.ui.Style("Dialog.Error"), errMsg
		}
		fillRow(s, 0, width, hintY, style)
		drawText(s, 1, hintY, width, text, style)
	}
	s.ShowCursor(min(end, width-1), inputY)
	d.ui.Show()
}

// Alert shows a modal box until a key is pressed.
func (d *Dialogs) Alert(ctx context.Context, title, body string) {
	for {
		d.drawAlert(title, body)
		ev, err := d.ui.NextEvent(ctx)
		if err != nil {
			return
		}
		if _, ok := ev.(*tcell.EventKey); ok {
			return
		}
	}
}

func (d *Dialogs) drawAlert(title, body string) {
	d.ui.Redraw()
	s := d.ui.screen
	width, height := d.ui.Size()

	boxWidth := min(width, max(40, textWidth(title)+4))
	lines := wrap(body, boxWidth-4)
	boxHeight := len(lines) + 4
	left := max(0, (width-boxWidth)/2)
	top := max(0, (height-boxHeight)/2)
	right := left + boxWidth

	for y := top; y < top+boxHeight && y < height; y++ {
		fillRow(s, left, right, y, d.ui.Style("Alert"))
	}
	drawText(s, left+2, top, right, title, d.ui.Style("Alert.Title"))
	for i, line := range lines {
		drawText(s, left+2, top+2+i, right, line, d.ui.Style("Alert"))
	}
	drawText(s, left+2, top+boxHeight-1, right, "press any key", d.ui.Style("Dialog.Hint"))
	s.HideCursor()
	d.ui.Show()
}

// wrap breaks text into lines of at most width cells on word boundaries.
func wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case textWidth(current)+1+textWidth(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// iconGlyph maps icon hints to a terminal glyph.
func iconGlyph(icon string) string {
	switch {
	case icon == "":
		return ""
	case strings.Contains(icon, "folder"):
		return "▸"
	case strings.Contains(icon, "clear"):
		return "×"
	default:
		return "·"
	}
}
