// internal/types/position.go
package types

// Position represents a cursor or text position within a buffer.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Col < other.Col)
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position
	End   Position
}

// Normalized returns the range with Start <= End.
func (r Range) Normalized() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Empty reports whether the range covers nothing.
func (r Range) Empty() bool {
	return r.Start == r.End
}
