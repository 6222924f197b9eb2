package util

import "testing"

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		language string
		want     string
	}{
		{"comment names file", "# main.py\nprint(1)", "python", "main.py"},
		{"no name falls back", "x = 1\ny = 2", "python", "readable.py"},
		{"foreign extension gets suffix", "# config.yaml loader\nload()", "python", "config.yaml.py"},
		{"unknown language", "hello", "brainfuck", "readable.txt"},
		{"numbers are not names", "x = 1.5", "python", "readable.py"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.code, tt.language); got != tt.want {
				t.Errorf("Filename(%q, %q) = %q, want %q", tt.code, tt.language, got, tt.want)
			}
		})
	}
}

func TestExt(t *testing.T) {
	if got := Ext("Python"); got != "py" {
		t.Errorf("Ext(Python) = %q", got)
	}
	if got := Ext(""); got != "txt" {
		t.Errorf("Ext(\"\") = %q", got)
	}
}

func TestUniqueFilename(t *testing.T) {
	seen := map[string]int{}
	got := []string{
		UniqueFilename("readable.py", seen),
		UniqueFilename("readable.py", seen),
		UniqueFilename("main.go", seen),
		UniqueFilename("readable.py", seen),
	}
	want := []string{"readable.py", "readable_1.py", "main.go", "readable_2.py"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UniqueFilename #%d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUniqueFilename_NoCollisionWithLiteralNames(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "literal name after generated one",
			input: []string{"a.py", "a.py", "a_1.py"},
			want:  []string{"a.py", "a_1.py", "a_1_1.py"},
		},
		{
			name:  "generated name skips a literal one",
			input: []string{"a_1.py", "a.py", "a.py"},
			want:  []string{"a_1.py", "a.py", "a_2.py"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := map[string]int{}
			used := map[string]bool{}
			for i, in := range tt.input {
				got := UniqueFilename(in, seen)
				if got != tt.want[i] {
					t.Errorf("UniqueFilename(%q) #%d = %q, want %q", in, i, got, tt.want[i])
				}
				if used[got] {
					t.Errorf("UniqueFilename returned %q twice", got)
				}
				used[got] = true
			}
		})
	}
}
