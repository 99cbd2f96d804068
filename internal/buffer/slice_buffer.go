// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/bethropolis/tidepad/internal/textutil"
	"github.com/bethropolis/tidepad/internal/types"
)

// SliceBuffer stores text as a slice of lines without their terminators.
type SliceBuffer struct {
	lines    [][]byte
	modified bool
}

// NewSliceBuffer creates an empty SliceBuffer holding a single empty line.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{lines: [][]byte{{}}}
}

// NewSliceBufferFromString creates a buffer holding text, not marked modified.
func NewSliceBufferFromString(text string) *SliceBuffer {
	sb := NewSliceBuffer()
	sb.SetText(text)
	sb.modified = false
	return sb
}

// SetText replaces the whole content and marks the buffer modified.
func (sb *SliceBuffer) SetText(text string) {
	parts := bytes.Split([]byte(text), []byte("\n"))
	lines := make([][]byte, len(parts))
	for i, p := range parts {
		line := make([]byte, len(p))
		copy(line, p)
		lines[i] = line
	}
	sb.lines = lines
	sb.modified = true
}

// String returns the content joined with '\n'.
func (sb *SliceBuffer) String() string {
	return string(bytes.Join(sb.lines, []byte("\n")))
}

// Lines returns the underlying lines. Callers must not modify them.
func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

// LineCount returns the number of lines, always at least one.
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns a single line.
func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// IsModified returns true if the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

// SetModified overrides the modified flag, e.g. after a save.
func (sb *SliceBuffer) SetModified(modified bool) {
	sb.modified = modified
}

// End returns the position just past the last rune.
func (sb *SliceBuffer) End() types.Position {
	last := len(sb.lines) - 1
	return types.Position{Line: last, Col: utf8.RuneCount(sb.lines[last])}
}

// Clamp moves pos inside the buffer.
func (sb *SliceBuffer) Clamp(pos types.Position) types.Position {
	valid, _ := sb.validate(pos)
	return valid
}

// validate clamps pos and returns the byte offset of its column.
func (sb *SliceBuffer) validate(pos types.Position) (types.Position, int) {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	offset, col := textutil.ClampColumn(sb.lines[pos.Line], pos.Col)
	pos.Col = col
	return pos, offset
}

// TextRange returns the text between two positions.
func (sb *SliceBuffer) TextRange(r types.Range) string {
	r = r.Normalized()
	start, startOff := sb.validate(r.Start)
	end, endOff := sb.validate(r.End)

	if start.Line == end.Line {
		return string(sb.lines[start.Line][startOff:endOff])
	}
	var out bytes.Buffer
	out.Write(sb.lines[start.Line][startOff:])
	for i := start.Line + 1; i < end.Line; i++ {
		out.WriteByte('\n')
		out.Write(sb.lines[i])
	}
	out.WriteByte('\n')
	out.Write(sb.lines[end.Line][:endOff])
	return out.String()
}

// Insert inserts text at pos and returns the position after the inserted text.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.Position, error) {
	valid, offset := sb.validate(pos)
	if len(text) == 0 {
		return valid, nil
	}
	if !utf8.Valid(text) {
		return valid, fmt.Errorf("insert at %d:%d: text is not valid UTF-8", valid.Line, valid.Col)
	}

	current := sb.lines[valid.Line]
	tail := append([]byte(nil), current[offset:]...)
	head := append([]byte(nil), current[:offset]...)
	parts := bytes.Split(text, []byte("\n"))

	newLines := make([][]byte, len(parts))
	for i, p := range parts {
		newLines[i] = append([]byte(nil), p...)
	}
	newLines[0] = append(head, newLines[0]...)
	last := len(newLines) - 1
	endCol := utf8.RuneCount(newLines[last])
	newLines[last] = append(newLines[last], tail...)

	rebuilt := make([][]byte, 0, len(sb.lines)+last)
	rebuilt = append(rebuilt, sb.lines[:valid.Line]...)
	rebuilt = append(rebuilt, newLines...)
	rebuilt = append(rebuilt, sb.lines[valid.Line+1:]...)
	sb.lines = rebuilt
	sb.modified = true

	return types.Position{Line: valid.Line + last, Col: endCol}, nil
}

// Delete removes the text within r (start inclusive, end exclusive).
func (sb *SliceBuffer) Delete(r types.Range) error {
	r = r.Normalized()
	start, startOff := sb.validate(r.Start)
	end, endOff := sb.validate(r.End)
	if start == end {
		return nil
	}

	merged := append(append([]byte(nil), sb.lines[start.Line][:startOff]...), sb.lines[end.Line][endOff:]...)
	rebuilt := make([][]byte, 0, len(sb.lines)-(end.Line-start.Line))
	rebuilt = append(rebuilt, sb.lines[:start.Line]...)
	rebuilt = append(rebuilt, merged)
	rebuilt = append(rebuilt, sb.lines[end.Line+1:]...)
	sb.lines = rebuilt
	sb.modified = true
	return nil
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
