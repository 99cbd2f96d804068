package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidepad/internal/types"
)

func pos(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func TestNewBufferNotModified(t *testing.T) {
	b := NewSliceBufferFromString("a\nb")
	assert.False(t, b.IsModified())
	assert.Equal(t, 2, b.LineCount())
	assert.Equal(t, "a\nb", b.String())

	empty := NewSliceBuffer()
	assert.Equal(t, 1, empty.LineCount())
	assert.Equal(t, "", empty.String())
}

func TestInsert(t *testing.T) {
	b := NewSliceBufferFromString("héllo")
	end, err := b.Insert(pos(0, 2), []byte("XY"))
	require.NoError(t, err)
	assert.Equal(t, pos(0, 4), end)
	assert.Equal(t, "héXYllo", b.String())
	assert.True(t, b.IsModified())

	end, err = b.Insert(pos(0, 1), []byte("1\n22\n3"))
	require.NoError(t, err)
	assert.Equal(t, pos(2, 1), end)
	assert.Equal(t, "h1\n22\n3éXYllo", b.String())
}

func TestInsertClampsAndRejectsInvalid(t *testing.T) {
	b := NewSliceBufferFromString("ab")
	end, err := b.Insert(pos(5, 9), []byte("!"))
	require.NoError(t, err)
	assert.Equal(t, pos(0, 3), end)
	assert.Equal(t, "ab!", b.String())

	_, err = b.Insert(pos(0, 0), []byte{0xff})
	assert.Error(t, err)
	assert.Equal(t, "ab!", b.String())
}

func TestDeleteAcrossLines(t *testing.T) {
	b := NewSliceBufferFromString("one\ntwo\nthree")
	r := types.Range{Start: pos(2, 2), End: pos(0, 1)}
	assert.Equal(t, "ne\ntwo\nth", b.TextRange(r))

	require.NoError(t, b.Delete(r))
	assert.Equal(t, "oree", b.String())
	assert.Equal(t, 1, b.LineCount())
}

func TestDeleteEmptyRange(t *testing.T) {
	b := NewSliceBufferFromString("abc")
	require.NoError(t, b.Delete(types.Range{Start: pos(0, 1), End: pos(0, 1)}))
	assert.False(t, b.IsModified())
}

func TestClampAndEnd(t *testing.T) {
	b := NewSliceBufferFromString("ab\nc😀")
	assert.Equal(t, pos(1, 2), b.End())
	assert.Equal(t, pos(0, 2), b.Clamp(pos(0, 10)))
	assert.Equal(t, pos(0, 0), b.Clamp(pos(-1, -3)))
	assert.Equal(t, pos(1, 2), b.Clamp(pos(7, 7)))
}

func TestLine(t *testing.T) {
	b := NewSliceBufferFromString("x\ny")
	line, err := b.Line(1)
	require.NoError(t, err)
	assert.Equal(t, "y", string(line))
	_, err = b.Line(2)
	assert.Error(t, err)
}
