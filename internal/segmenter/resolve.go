package segmenter

import "github.com/riverfjs/mixfence-go/internal/types"

// Resolve replaces every Blank verdict with Code or Text.
//
// A blank line becomes Code only when the nearest non-blank verdicts on both
// sides are Code; a missing neighbour (start or end of input) or a Text
// neighbour makes it Text. Neighbours are looked up among the original
// non-blank verdicts, never among already-resolved blanks.
//
// The input slice is not modified.
func Resolve(verdicts []types.Verdict) []types.Verdict {
	n := len(verdicts)
	out := make([]types.Verdict, n)
	copy(out, verdicts)

	// next[i] is the nearest non-blank verdict at or after i; Blank means none.
	next := make([]types.Verdict, n+1)
	next[n] = types.Blank
	for i := n - 1; i >= 0; i-- {
		if verdicts[i] != types.Blank {
			next[i] = verdicts[i]
		} else {
			next[i] = next[i+1]
		}
	}

	prev := types.Blank
	for i, v := range verdicts {
		if v != types.Blank {
			prev = v
			continue
		}
		if prev == types.Code && next[i+1] == types.Code {
			out[i] = types.Code
		} else {
			out[i] = types.Text
		}
	}
	return out
}
