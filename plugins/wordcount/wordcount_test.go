package wordcount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Stats
	}{
		{"empty", "", Stats{Lines: 1}},
		{"one line", "hello world", Stats{Lines: 1, Words: 2, Runes: 11, Bytes: 11}},
		{"multi line", "a b\n\tc\n", Stats{Lines: 3, Words: 3, Runes: 7, Bytes: 7}},
		{"multibyte", "héllo", Stats{Lines: 1, Words: 1, Runes: 5, Bytes: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count([]byte(tt.text)))
		})
	}
}

func TestStatsString(t *testing.T) {
	assert.Equal(t, "Lines: 2, Words: 3, Chars: 9, Bytes: 9", Stats{Lines: 2, Words: 3, Runes: 9, Bytes: 9}.String())
}
