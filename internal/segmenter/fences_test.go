package segmenter

import (
	"reflect"
	"testing"

	"github.com/riverfjs/mixfence-go/internal/types"
)

func TestFencedLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []bool
	}{
		{
			name:  "closed fence",
			lines: []string{"a", "```py", "b", "", "```", "c"},
			want:  []bool{false, true, true, true, true, false},
		},
		{
			name:  "unclosed fence runs to end",
			lines: []string{"```", "x"},
			want:  []bool{true, true},
		},
		{
			name:  "tilde fence needs matching closer",
			lines: []string{"~~~~", "```", "~~~", "~~~~", "z"},
			want:  []bool{true, true, true, true, false},
		},
		{
			name:  "two backticks is not a fence",
			lines: []string{"``", "x"},
			want:  []bool{false, false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FencedLines(tt.lines); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FencedLines(%q) = %v, want %v", tt.lines, got, tt.want)
			}
		})
	}
}

func TestSegmentWithPreserveFences(t *testing.T) {
	content := "intro\n```\nx = 1\n```\n\ny = 2"

	plain := SegmentWith(content, Options{})
	wantPlain := []types.Block{
		{Verdict: T, Lines: []string{"intro", "```"}},
		{Verdict: C, Lines: []string{"x = 1"}},
		{Verdict: T, Lines: []string{"```", ""}},
		{Verdict: C, Lines: []string{"y = 2"}},
	}
	if !reflect.DeepEqual(plain, wantPlain) {
		t.Errorf("SegmentWith(no preserve) = %+v, want %+v", plain, wantPlain)
	}

	kept := SegmentWith(content, Options{PreserveFences: true})
	wantKept := []types.Block{
		{Verdict: T, Lines: []string{"intro", "```", "x = 1", "```", ""}},
		{Verdict: C, Lines: []string{"y = 2"}},
	}
	if !reflect.DeepEqual(kept, wantKept) {
		t.Errorf("SegmentWith(preserve) = %+v, want %+v", kept, wantKept)
	}
}
