package parser

import (
	"strings"
	"testing"
)

func TestParseFences(t *testing.T) {
	md := "설명입니다.\n```python\ndef f():\n    return 1\n```\n끝."

	fences := ParseFences(md)
	if len(fences) != 1 {
		t.Fatalf("expected 1 fence, got %d", len(fences))
	}
	f := fences[0]
	if f.Language != "python" {
		t.Errorf("Language = %q", f.Language)
	}
	if f.Code != "def f():\n    return 1" {
		t.Errorf("Code = %q", f.Code)
	}
	if f.LineCount != 2 {
		t.Errorf("LineCount = %d", f.LineCount)
	}
	if got := md[f.Start:f.End]; got != "```python\ndef f():\n    return 1\n```" {
		t.Errorf("fence range covers %q", got)
	}
}

func TestParseFencesMultiple(t *testing.T) {
	md := strings.Join([]string{
		"```go",
		"package main",
		"```",
		"text",
		"```",
		"```",
		"~~~sh extra",
		"ls",
		"~~~",
	}, "\n")

	fences := ParseFences(md)
	if len(fences) != 3 {
		t.Fatalf("expected 3 fences, got %d", len(fences))
	}
	if fences[0].Language != "go" || fences[0].Code != "package main" {
		t.Errorf("fence 0 = %+v", fences[0])
	}
	if fences[1].LineCount != 0 || fences[1].Start != -1 {
		t.Errorf("empty fence = %+v", fences[1])
	}
	if fences[2].Language != "sh" || md[fences[2].Start:fences[2].End] != "~~~sh extra\nls\n~~~" {
		t.Errorf("fence 2 = %+v", fences[2])
	}
}

func TestParseFencesUnclosed(t *testing.T) {
	md := "intro\n```python\nx = 1\ny = 2"
	fences := ParseFences(md)
	if len(fences) != 1 {
		t.Fatalf("expected 1 fence, got %d", len(fences))
	}
	if got := md[fences[0].Start:fences[0].End]; got != "```python\nx = 1\ny = 2" {
		t.Errorf("fence range covers %q", got)
	}
}

func TestParseFencesNone(t *testing.T) {
	if got := ParseFences("just text\n\nmore text"); len(got) != 0 {
		t.Errorf("expected no fences, got %+v", got)
	}
}
