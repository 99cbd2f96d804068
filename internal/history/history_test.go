package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidepad/internal/buffer"
	"github.com/bethropolis/tidepad/internal/types"
)

func pos(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func insert(t *testing.T, h *History, buf *buffer.SliceBuffer, at types.Position, text string) {
	t.Helper()
	end, err := buf.Insert(at, []byte(text))
	require.NoError(t, err)
	h.Record(Change{Kind: Insert, Text: text, Range: types.Range{Start: at, End: end}, CursorBefore: at})
}

func TestUndoRedoInsert(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("ab")
	h := New(0)
	insert(t, h, buf, pos(0, 1), "X\nY")
	require.Equal(t, "aX\nYb", buf.String())

	cursor, ok, err := h.Undo(buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, pos(0, 1), cursor)
	assert.Equal(t, "ab", buf.String())
	assert.True(t, h.CanRedo())

	cursor, ok, err = h.Redo(buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, pos(1, 1), cursor)
	assert.Equal(t, "aX\nYb", buf.String())
}

func TestUndoRedoDelete(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("hello world")
	h := New(0)
	r := types.Range{Start: pos(0, 5), End: pos(0, 11)}
	text := buf.TextRange(r)
	require.NoError(t, buf.Delete(r))
	h.Record(Change{Kind: Delete, Text: text, Range: r, CursorBefore: pos(0, 11)})

	cursor, ok, err := h.Undo(buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, pos(0, 11), cursor)
	assert.Equal(t, "hello world", buf.String())

	cursor, _, err = h.Redo(buf)
	require.NoError(t, err)
	assert.Equal(t, pos(0, 5), cursor)
	assert.Equal(t, "hello", buf.String())
}

func TestRecordDropsRedo(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("")
	h := New(0)
	insert(t, h, buf, pos(0, 0), "a")
	insert(t, h, buf, pos(0, 1), "b")
	_, _, err := h.Undo(buf)
	require.NoError(t, err)
	insert(t, h, buf, pos(0, 1), "c")

	assert.False(t, h.CanRedo())
	assert.Equal(t, "ac", buf.String())
}

func TestMaxHistory(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("")
	h := New(2)
	for i, s := range []string{"a", "b", "c"} {
		insert(t, h, buf, pos(0, i), s)
	}
	for h.CanUndo() {
		_, _, err := h.Undo(buf)
		require.NoError(t, err)
	}
	assert.Equal(t, "a", buf.String())
}

func TestEmptyAndNil(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("x")
	h := New(0)
	_, ok, err := h.Undo(buf)
	assert.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = h.Redo(buf)
	assert.NoError(t, err)
	assert.False(t, ok)

	var none *History
	none.Record(Change{})
	none.Clear()
	assert.False(t, none.CanUndo())
	_, ok, _ = none.Undo(buf)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("")
	h := New(0)
	insert(t, h, buf, pos(0, 0), "a")
	h.Clear()
	assert.False(t, h.CanUndo())
}
