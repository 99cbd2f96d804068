// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/tidepad/internal/types"

// Buffer defines the text operations a session file needs.
type Buffer interface {
	SetText(text string)
	String() string
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	TextRange(r types.Range) string
	Insert(pos types.Position, text []byte) (types.Position, error)
	Delete(r types.Range) error
	End() types.Position
	Clamp(pos types.Position) types.Position
	IsModified() bool
	SetModified(modified bool)
}
