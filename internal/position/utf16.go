// Package position converts byte offsets within source text to the UTF-16
// columns used by diagnostics.
package position

import (
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Column returns the number of UTF-16 code units in line before byteOffset.
// An offset inside a multi-byte rune counts only the runes before it;
// offsets past the end of the line are clamped.
func Column(line string, byteOffset int) uint32 {
	if byteOffset > len(line) {
		byteOffset = len(line)
	}

	units := 0
	for i := 0; i < byteOffset; {
		r, size := utf8.DecodeRuneInString(line[i:])
		if i+size > byteOffset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		i += size
	}
	return clamp(units)
}

// Length returns the length of s in UTF-16 code units
func Length(s string) uint32 {
	return Column(s, len(s))
}

func clamp(n int) uint32 {
	if n > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}

// Index maps (row, byte column) points of a source text, as reported by
// tree-sitter, to UTF-16 columns.
type Index struct {
	lines []string
}

// NewIndex splits source into lines
func NewIndex(source string) *Index {
	return &Index{lines: strings.Split(source, "\n")}
}

// Column returns the UTF-16 column of a byte column on a row. Rows past the
// end of the source have column 0.
func (ix *Index) Column(row, byteColumn uint) uint32 {
	if row >= uint(len(ix.lines)) {
		return 0
	}
	line := strings.TrimSuffix(ix.lines[row], "\r")
	return Column(line, int(byteColumn))
}
