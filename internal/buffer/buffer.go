package buffer

import (
	"strings"
	"unicode/utf8"
)

// TextBuffer accumulates rendered text and tracks byte and rune offsets.
type TextBuffer struct {
	sb         strings.Builder
	runeOffset int
}

// New creates a new TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{}
}

// Write appends text to the buffer.
func (tb *TextBuffer) Write(text string) {
	tb.sb.WriteString(text)
	tb.runeOffset += utf8.RuneCountInString(text)
}

// ByteOffset returns the current byte offset.
func (tb *TextBuffer) ByteOffset() int {
	return tb.sb.Len()
}

// RuneOffset returns the current offset in runes.
func (tb *TextBuffer) RuneOffset() int {
	return tb.runeOffset
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	return tb.sb.String()
}

// Reset clears the buffer.
func (tb *TextBuffer) Reset() {
	tb.sb.Reset()
	tb.runeOffset = 0
}
