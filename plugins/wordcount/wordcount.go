// plugins/wordcount/wordcount.go
package wordcount

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Stats are the counts shown on the console page.
type Stats struct {
	Lines int
	Words int
	Runes int
	Bytes int
}

func (s Stats) String() string {
	return fmt.Sprintf("Lines: %d, Words: %d, Chars: %d, Bytes: %d", s.Lines, s.Words, s.Runes, s.Bytes)
}

// Count computes Stats for text. Words are runs of non-whitespace; an empty
// text still has one line.
func Count(text []byte) Stats {
	return Stats{
		Lines: bytes.Count(text, []byte("\n")) + 1,
		Words: len(bytes.Fields(text)),
		Runes: utf8.RuneCount(text),
		Bytes: len(text),
	}
}
