package segmenter

import (
	"strings"

	"github.com/riverfjs/mixfence-go/internal/classifier"
	"github.com/riverfjs/mixfence-go/internal/types"
)

// fenceState tracks whether a line walk is inside a ``` or ~~~ fence.
type fenceState struct {
	inFence   bool
	fenceChar byte
	fenceLen  int
}

// step consumes one line and reports whether it belongs to a fence,
// including the opening and closing marker lines.
func (f *fenceState) step(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !f.inFence {
		if len(trimmed) < 3 || (trimmed[0] != '`' && trimmed[0] != '~') {
			return false
		}
		n := countLeading(trimmed, trimmed[0])
		if n < 3 {
			return false
		}
		f.inFence, f.fenceChar, f.fenceLen = true, trimmed[0], n
		return true
	}
	if len(trimmed) > 0 && trimmed[0] == f.fenceChar {
		n := countLeading(trimmed, f.fenceChar)
		if n >= f.fenceLen && n == len(trimmed) {
			f.inFence = false
		}
	}
	return true
}

func countLeading(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// FencedLines marks the lines that already sit inside a markdown fence.
// An unclosed fence runs to the end of the input.
func FencedLines(lines []string) []bool {
	out := make([]bool, len(lines))
	var f fenceState
	for i, l := range lines {
		out[i] = f.step(l)
	}
	return out
}

// Options controls SegmentWith.
type Options struct {
	// PreserveFences keeps existing fenced regions as verbatim Text.
	PreserveFences bool
}

// SegmentWith is Segment with options. Pinned fence lines count as non-blank
// Text neighbours during blank resolution.
func SegmentWith(content string, opts Options) []types.Block {
	lines := SplitLines(content)
	verdicts := classifier.ClassifyAll(lines)
	if opts.PreserveFences {
		for i, fenced := range FencedLines(lines) {
			if fenced {
				verdicts[i] = types.Text
			}
		}
	}
	return Group(lines, Resolve(verdicts))
}
