// Package find locates and replaces literal text in a buffer.
package find

import (
	"regexp"
	"strings"

	"github.com/bethropolis/tidepad/internal/buffer"
	"github.com/bethropolis/tidepad/internal/textutil"
	"github.com/bethropolis/tidepad/internal/types"
)

// Searcher holds the last search so repeated finds continue from the last match.
type Searcher struct {
	term    string
	re      *regexp.Regexp
	lastPos *types.Position
}

// SetTerm starts a new search. Matching is literal and case-sensitive.
func (s *Searcher) SetTerm(term string) {
	if term == s.term {
		return
	}
	s.term = term
	s.lastPos = nil
	s.re = nil
	if term != "" {
		s.re = regexp.MustCompile(regexp.QuoteMeta(term))
	}
}

// Term returns the current search term.
func (s *Searcher) Term() string { return s.term }

// Next finds the next match after from (or after the previous match), wrapping
// around the end of the buffer.
func (s *Searcher) Next(buf buffer.Buffer, from types.Position) (types.Range, bool) {
	if s.re == nil {
		return types.Range{}, false
	}
	start := from
	if s.lastPos != nil {
		start = *s.lastPos
		start.Col++
	}
	r, ok := s.scan(buf, start)
	if !ok {
		r, ok = s.scan(buf, types.Position{})
	}
	if ok {
		s.lastPos = &r.Start
	}
	return r, ok
}

func (s *Searcher) scan(buf buffer.Buffer, start types.Position) (types.Range, bool) {
	for lineIdx := start.Line; lineIdx < buf.LineCount(); lineIdx++ {
		line, err := buf.Line(lineIdx)
		if err != nil {
			continue
		}
		offset := 0
		if lineIdx == start.Line {
			offset = textutil.RuneIndexToByteOffset(line, start.Col)
			if offset < 0 {
				continue
			}
		}
		loc := s.re.FindIndex(line[offset:])
		if loc == nil {
			continue
		}
		startCol := textutil.ByteOffsetToRuneIndex(line, offset+loc[0])
		endCol := textutil.ByteOffsetToRuneIndex(line, offset+loc[1])
		return types.Range{
			Start: types.Position{Line: lineIdx, Col: startCol},
			End:   types.Position{Line: lineIdx, Col: endCol},
		}, true
	}
	return types.Range{}, false
}

// ReplaceAll replaces every occurrence of term and returns the count.
func ReplaceAll(buf buffer.Buffer, term, replacement string) int {
	if term == "" {
		return 0
	}
	text := buf.String()
	count := strings.Count(text, term)
	if count == 0 {
		return 0
	}
	buf.SetText(strings.ReplaceAll(text, term, replacement))
	return count
}
