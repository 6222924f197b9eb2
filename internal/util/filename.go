package util

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// LanguageExt maps fence language tags to file extensions.
var LanguageExt = map[string]string{
	"python":     "py",
	"py":         "py",
	"javascript": "js",
	"typescript": "ts",
	"go":         "go",
	"java":       "java",
	"c":          "c",
	"c++":        "cpp",
	"cpp":        "cpp",
	"rust":       "rs",
	"ruby":       "rb",
	"bash":       "sh",
	"shell":      "sh",
	"sh":         "sh",
	"sql":        "sql",
	"json":       "json",
	"yaml":       "yaml",
	"toml":       "toml",
	"html":       "html",
	"css":        "css",
	"markdown":   "md",
	"plaintext":  "txt",
	"text":       "txt",
}

var filenamePattern = regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_\-.]*\.[a-zA-Z][a-zA-Z0-9]*`)

// ExtractValidFilename returns the first token in line that looks like a file
// name with an extension.
func ExtractValidFilename(line string) string {
	return filenamePattern.FindString(line)
}

// Ext returns the extension for a language tag, "txt" when unknown.
func Ext(language string) string {
	if ext, ok := LanguageExt[strings.ToLower(strings.TrimSpace(language))]; ok {
		return ext
	}
	return "txt"
}

// Filename names an extracted code block.
//
// A file name mentioned in the first two lines (typically a "# main.py"
// comment) wins when it already carries the right extension and is short;
// a mentioned name with another extension gets the language extension
// appended. Otherwise the name is readable.<ext>.
func Filename(code, language string) string {
	lines := strings.SplitN(strings.TrimSpace(code), "\n", 3)
	sample := lines[0]
	if len(lines) > 1 {
		sample += " " + lines[1]
	}
	// escaped literals leave `\n` pairs that would glue tokens together
	sample = strings.ReplaceAll(sample, `\`, " ")

	ext := Ext(language)
	name := ExtractValidFilename(sample)
	if name == "" {
		return "readable." + ext
	}
	if strings.HasSuffix(name, "."+ext) && len(name) <= 24 {
		return name
	}
	return name + "." + ext
}

// UniqueFilename appends a counter before the extension when name was
// already handed out. Generated names are recorded too, so a later literal
// name never repeats one.
func UniqueFilename(name string, seen map[string]int) string {
	n := seen[name]
	if n == 0 {
		seen[name] = 1
		return name
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for {
		candidate := fmt.Sprintf("%s_%d%s", base, n, ext)
		n++
		if seen[candidate] == 0 {
			seen[name] = n
			seen[candidate] = 1
			return candidate
		}
	}
}
