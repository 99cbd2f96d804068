// internal/app/editing.go
package app

import (
	"unicode/utf8"

	"github.com/bethropolis/tidepad/internal/command"
	"github.com/bethropolis/tidepad/internal/history"
	"github.com/bethropolis/tidepad/internal/input"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/session"
	"github.com/bethropolis/tidepad/internal/types"
)

const msgReadOnly = "file is read-only"

func lineLen(f *session.File, line int) int {
	b, err := f.Buffer.Line(line)
	if err != nil {
		return 0
	}
	return utf8.RuneCount(b)
}

// edit applies a movement, text or history action to the active file.
func (a *App) edit(ev input.ActionEvent) {
	f := a.session.ActiveFile()
	if f == nil {
		return
	}

	switch ev.Action {
	case input.ActionMoveUp:
		moveVertical(f, -1)
	case input.ActionMoveDown:
		moveVertical(f, 1)
	case input.ActionMovePageUp:
		moveVertical(f, -a.editorHeight())
	case input.ActionMovePageDown:
		moveVertical(f, a.editorHeight())
	case input.ActionMoveLeft:
		f.Cursor = prevPosition(f, f.Cursor)
		f.ClearSelection()
	case input.ActionMoveRight:
		f.Cursor = nextPosition(f, f.Cursor)
		f.ClearSelection()
	case input.ActionMoveHome:
		f.Cursor.Col = 0
		f.ClearSelection()
	case input.ActionMoveEnd:
		f.Cursor.Col = lineLen(f, f.Cursor.Line)
		f.ClearSelection()
	case input.ActionInsertRune, input.ActionInsertNewLine, input.ActionDeleteCharBackward, input.ActionDeleteCharForward:
		if !f.Editable {
			a.statusBar.SetTemporaryMessage(msgReadOnly)
			return
		}
		modify(f, a.history(f), ev)
	case input.ActionUndo, input.ActionRedo:
		if !f.Editable {
			a.statusBar.SetTemporaryMessage(msgReadOnly)
			return
		}
		if !a.replay(f, ev.Action == input.ActionRedo) {
			return
		}
	default:
		return
	}
	a.session.Update(f)
}

// history returns the undo stack of f, creating it on first use.
func (a *App) history(f *session.File) *history.History {
	h, ok := a.histories[f.ID]
	if !ok {
		h = history.New(history.DefaultMaxHistory)
		a.histories[f.ID] = h
	}
	return h
}

// replay undoes or redoes one change and reports whether the text changed.
func (a *App) replay(f *session.File, redo bool) bool {
	h := a.history(f)
	replayFn, verb := h.Undo, "undo"
	if redo {
		replayFn, verb = h.Redo, "redo"
	}
	cursor, ok, err := replayFn(f.Buffer)
	if err != nil {
		logger.Warnf("App: %s in %s: %v", verb, f.Name, err)
		h.Clear()
		return false
	}
	if !ok {
		a.statusBar.SetTemporaryMessage("nothing to " + verb)
		return false
	}
	f.Cursor = f.Buffer.Clamp(cursor)
	f.ClearSelection()
	return true
}

// forgetHistory drops the undo stack of the active file after a command
// rewrote its text.
func (a *App) forgetHistory(c command.Command) {
	switch c {
	case command.Cut, command.Paste, command.Replace, command.Encoding:
	default:
		return
	}
	if f := a.session.ActiveFile(); f != nil {
		a.histories[f.ID].Clear()
	}
}

func moveVertical(f *session.File, delta int) {
	f.Cursor = f.Buffer.Clamp(types.Position{Line: f.Cursor.Line + delta, Col: f.Cursor.Col})
	f.ClearSelection()
}

// prevPosition is one rune before pos, crossing to the end of the previous line.
func prevPosition(f *session.File, pos types.Position) types.Position {
	if pos.Col > 0 {
		return types.Position{Line: pos.Line, Col: pos.Col - 1}
	}
	if pos.Line > 0 {
		return types.Position{Line: pos.Line - 1, Col: lineLen(f, pos.Line-1)}
	}
	return pos
}

// nextPosition is one rune after pos, crossing to the start of the next line.
func nextPosition(f *session.File, pos types.Position) types.Position {
	if pos.Col < lineLen(f, pos.Line) {
		return types.Position{Line: pos.Line, Col: pos.Col + 1}
	}
	if pos.Line < f.Buffer.LineCount()-1 {
		return types.Position{Line: pos.Line + 1}
	}
	return pos
}

// deleteSelection removes the selected text and reports whether there was any.
func deleteSelection(f *session.File, h *history.History) bool {
	if !f.HasSelection() {
		return false
	}
	sel := f.Selection.Normalized()
	deleteRange(f, h, sel)
	f.ClearSelection()
	return true
}

func deleteRange(f *session.File, h *history.History, r types.Range) {
	if r.Empty() {
		return
	}
	before := f.Cursor
	text := f.Buffer.TextRange(r)
	if err := f.Buffer.Delete(r); err != nil {
		logger.Warnf("App: delete: %v", err)
		return
	}
	h.Record(history.Change{Kind: history.Delete, Text: text, Range: r, CursorBefore: before})
	f.Cursor = r.Start
}

func insert(f *session.File, h *history.History, text string) {
	deleteSelection(f, h)
	start := f.Cursor
	end, err := f.Buffer.Insert(start, []byte(text))
	if err != nil {
		logger.Warnf("App: insert: %v", err)
		return
	}
	h.Record(history.Change{Kind: history.Insert, Text: text, Range: types.Range{Start: start, End: end}, CursorBefore: start})
	f.Cursor = end
	f.ClearSelection()
}

func modify(f *session.File, h *history.History, ev input.ActionEvent) {
	f.Cursor = f.Buffer.Clamp(f.Cursor)
	switch ev.Action {
	case input.ActionInsertRune:
		insert(f, h, string(ev.Rune))
	case input.ActionInsertNewLine:
		insert(f, h, "\n")
	case input.ActionDeleteCharBackward:
		if !deleteSelection(f, h) {
			deleteRange(f, h, types.Range{Start: prevPosition(f, f.Cursor), End: f.Cursor})
		}
	case input.ActionDeleteCharForward:
		if !deleteSelection(f, h) {
			deleteRange(f, h, types.Range{Start: f.Cursor, End: nextPosition(f, f.Cursor)})
		}
	}
	f.ClearSelection()
}
