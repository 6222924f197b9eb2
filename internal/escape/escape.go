// Package escape rewrites raw line breaks that sit inside quoted string
// literals of a code block into the two-character sequence `\n`.
package escape

import (
	"regexp"
	"strings"
)

// Passes run in this order over the whole text; each sees the output of the
// previous one, so a region already rewritten by a triple-quote pass contains
// no raw newline for the later passes to touch.
var (
	tripleDoubleRe = regexp.MustCompile(`(?s)""".*?"""`)
	tripleSingleRe = regexp.MustCompile(`(?s)'''.*?'''`)
	doubleRe       = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
	singleRe       = regexp.MustCompile(`'(?:[^'\\]|\\.)*'`)

	doubleLineRe = regexp.MustCompile(`"(?:[^"\\\n]|\\.)*"`)
	singleLineRe = regexp.MustCompile(`'(?:[^'\\\n]|\\.)*'`)
)

// Options tunes the escaper.
type Options struct {
	// LineBounded keeps the single- and double-quote passes on one physical
	// line. Only triple-quoted literals may then span line breaks.
	LineBounded bool
}

// Escaper applies the quote passes in a fixed order.
type Escaper struct {
	passes []*regexp.Regexp
}

// New returns an Escaper configured by opts.
func New(opts Options) *Escaper {
	if opts.LineBounded {
		return &Escaper{passes: []*regexp.Regexp{tripleDoubleRe, tripleSingleRe, doubleLineRe, singleLineRe}}
	}
	return &Escaper{passes: []*regexp.Regexp{tripleDoubleRe, tripleSingleRe, doubleRe, singleRe}}
}

var defaultEscaper = New(Options{})

// LiteralNewlines escapes newlines inside string literals with the default passes.
func LiteralNewlines(code string) string {
	return defaultEscaper.Escape(code)
}

// Escape runs every pass over code. Text outside matched literals, including
// line breaks between statements, is returned untouched. An unterminated
// literal simply never matches.
func (e *Escaper) Escape(code string) string {
	if !strings.ContainsAny(code, `"'`) {
		return code
	}
	for _, re := range e.passes {
		code = re.ReplaceAllStringFunc(code, escapeNewlines)
	}
	return code
}

func escapeNewlines(literal string) string {
	return strings.ReplaceAll(literal, "\n", `\n`)
}
