// Package segmenter groups per-line verdicts into ordered blocks of code and
// prose.
package segmenter

import (
	"strings"

	"github.com/riverfjs/mixfence-go/internal/types"
)

// SplitLines splits content on '\n'. The empty string has no lines; any other
// input round-trips exactly through strings.Join(lines, "\n").
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// Group walks lines and their resolved verdicts and closes a block whenever the
// verdict changes. lines and verdicts must have the same length and verdicts
// must not contain Blank.
func Group(lines []string, verdicts []types.Verdict) []types.Block {
	var blocks []types.Block
	var run []string
	current := types.Blank

	flush := func() {
		if len(run) == 0 {
			return
		}
		blocks = append(blocks, types.Block{Verdict: current, Lines: run})
		run = nil
	}

	for i, line := range lines {
		v := verdicts[i]
		if len(run) > 0 && v != current {
			flush()
		}
		current = v
		run = append(run, line)
	}
	flush()

	return blocks
}

// Segment classifies, resolves and groups content in one call.
func Segment(content string) []types.Block {
	return SegmentWith(content, Options{})
}
