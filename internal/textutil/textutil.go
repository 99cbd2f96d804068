// Package textutil converts between rune columns and byte offsets in a line.
package textutil

import "unicode/utf8"

// RuneIndexToByteOffset converts a rune index to a byte offset in line.
// Returns -1 if runeIndex is past the end of line.
func RuneIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	offset, col := ClampColumn(line, runeIndex)
	if col < runeIndex {
		return -1
	}
	return offset
}

// ClampColumn walks line up to col runes and returns the byte offset reached
// together with the column, which is smaller than col when the line is shorter.
func ClampColumn(line []byte, col int) (offset, clamped int) {
	for offset < len(line) && clamped < col {
		_, size := utf8.DecodeRune(line[offset:])
		offset += size
		clamped++
	}
	return offset, clamped
}

// ByteOffsetToRuneIndex converts a byte offset to a rune index in line.
// An offset inside a multi-byte rune counts up to the start of that rune.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	byteOffset = min(byteOffset, len(line))
	runeIndex, offset := 0, 0
	for offset < byteOffset {
		_, size := utf8.DecodeRune(line[offset:])
		if offset+size > byteOffset {
			break
		}
		offset += size
		runeIndex++
	}
	return runeIndex
}
