// Package history provides undo/redo via a bounded stack of reversible edits.
package history

import (
	"fmt"

	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/types"
)

const DefaultMaxHistory = 100

// Kind tells whether a change inserted or deleted text.
type Kind int

const (
	Insert Kind = iota
	Delete
)

func (k Kind) String() string {
	if k == Delete {
		return "delete"
	}
	return "insert"
}

// Change is a single reversible text operation.
type Change struct {
	Kind Kind
	Text string
	// Range is the span the text occupies after an insert, or occupied
	// before a delete.
	Range        types.Range
	CursorBefore types.Position
}

// Buffer is what undo and redo need to replay a change.
type Buffer interface {
	Insert(pos types.Position, text []byte) (types.Position, error)
	Delete(r types.Range) error
}

// History is the undo/redo stack of one file. The zero value is not usable;
// a nil *History ignores every call.
type History struct {
	changes []Change
	index   int // next change to redo
	max     int
}

// New creates a history keeping at most max changes.
func New(max int) *History {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	return &History{max: max}
}

// Record adds c and drops anything that could have been redone.
func (h *History) Record(c Change) {
	if h == nil {
		return
	}
	h.changes = append(h.changes[:h.index], c)
	if len(h.changes) > h.max {
		h.changes = h.changes[len(h.changes)-h.max:]
	}
	h.index = len(h.changes)
	logger.DebugTagf("history", "recorded %s at %v, %d change(s)", c.Kind, c.Range.Start, h.index)
}

// Undo reverts the last change and returns where the cursor goes.
// ok is false when there was nothing to undo.
func (h *History) Undo(buf Buffer) (cursor types.Position, ok bool, err error) {
	if !h.CanUndo() {
		return types.Position{}, false, nil
	}
	c := h.changes[h.index-1]
	switch c.Kind {
	case Insert:
		err = buf.Delete(c.Range)
	case Delete:
		_, err = buf.Insert(c.Range.Start, []byte(c.Text))
	}
	if err != nil {
		return types.Position{}, false, fmt.Errorf("undo failed: %w", err)
	}
	h.index--
	return c.CursorBefore, true, nil
}

// Redo reapplies the last undone change and returns where the cursor goes.
func (h *History) Redo(buf Buffer) (cursor types.Position, ok bool, err error) {
	if !h.CanRedo() {
		return types.Position{}, false, nil
	}
	c := h.changes[h.index]
	switch c.Kind {
	case Insert:
		_, err = buf.Insert(c.Range.Start, []byte(c.Text))
		cursor = c.Range.End
	case Delete:
		err = buf.Delete(c.Range)
		cursor = c.Range.Start
	}
	if err != nil {
		return types.Position{}, false, fmt.Errorf("redo failed: %w", err)
	}
	h.index++
	return cursor, true, nil
}

// Clear drops every change. Call it when the text is replaced wholesale.
func (h *History) Clear() {
	if h == nil {
		return
	}
	h.changes = h.changes[:0]
	h.index = 0
}

func (h *History) CanUndo() bool { return h != nil && h.index > 0 }

func (h *History) CanRedo() bool { return h != nil && h.index < len(h.changes) }
