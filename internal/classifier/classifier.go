// Package classifier decides, line by line, whether free-form chat text looks
// like source code or like natural language.
//
// The decision is a flat table of rules evaluated in priority order; the first
// rule whose predicate holds supplies the verdict. Every line gets exactly one
// verdict, so there is no error path.
package classifier

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/riverfjs/mixfence-go/internal/types"
)

// Whitespace classes include \p{Z}, so no-break and other Unicode spaces
// separate tokens.
var (
	bracketOnlyRe = regexp.MustCompile(`^[()\[\]{}\s\p{Z},]*$`)
	callRe        = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*[\s\p{Z}]*\([^)]*\)[\s\p{Z}]*$`)
	callPrefixRe  = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*[\s\p{Z}]*\(`)
	assignRe      = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_,\s\p{Z}]*[\s\p{Z}]*=[\s\p{Z}]*.+`)
	asyncDefRe    = regexp.MustCompile(`^async[\s\p{Z}]+def`)
)

// Keywords that open a statement in the scripting language the heuristic targets.
var Keywords = []string{
	"for", "if", "elif", "else", "while", "def", "class",
	"try", "except", "finally", "with", "await", "match", "case",
	"return", "yield", "raise", "break", "continue", "pass",
	"import", "from", "global", "nonlocal", "assert",
}

// blockOpeners suppress the incidental-bracket rule.
var blockOpeners = []string{"if ", "for ", "while ", "def ", "class "}

const brackets = "(){}[]"

// Rule pairs a predicate with the verdict it yields.
type Rule struct {
	Name    string
	Verdict types.Verdict
	Match   func(line, stripped string) bool
}

// rules is evaluated top to bottom; order is significant.
var rules = []Rule{
	{Name: "blank", Verdict: types.Blank, Match: func(_, s string) bool {
		return s == ""
	}},
	{Name: "bracket-only", Verdict: types.Code, Match: func(_, s string) bool {
		return bracketOnlyRe.MatchString(s) && hasBracket(s)
	}},
	{Name: "keyword", Verdict: types.Code, Match: func(_, s string) bool {
		return startsWithKeyword(s)
	}},
	{Name: "comment-or-decorator", Verdict: types.Code, Match: func(_, s string) bool {
		return strings.HasPrefix(s, "#") || strings.HasPrefix(s, "@")
	}},
	{Name: "indented", Verdict: types.Code, Match: func(line, _ string) bool {
		return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
	}},
	{Name: "call", Verdict: types.Code, Match: func(_, s string) bool {
		return callRe.MatchString(s)
	}},
	{Name: "assignment", Verdict: types.Code, Match: func(_, s string) bool {
		return assignRe.MatchString(s)
	}},
	{Name: "incidental-brackets", Verdict: types.Text, Match: func(_, s string) bool {
		return hasBracket(s) &&
			strings.Count(s, "(") == strings.Count(s, ")") &&
			!hasAnyPrefix(s, blockOpeners) &&
			!callPrefixRe.MatchString(s)
	}},
	{Name: "brackets", Verdict: types.Code, Match: func(_, s string) bool {
		return hasBracket(s)
	}},
}

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classify returns the verdict for one raw line.
func Classify(line string) types.Verdict {
	v, _ := Explain(line)
	return v
}

// Explain returns the verdict together with the name of the rule that produced it.
// Lines no rule claims are prose.
func Explain(line string) (types.Verdict, string) {
	stripped := strings.TrimSpace(line)
	for _, r := range rules {
		if r.Match(line, stripped) {
			return r.Verdict, r.Name
		}
	}
	return types.Text, "prose"
}

// ClassifyAll classifies every line independently.
func ClassifyAll(lines []string) []types.Verdict {
	out := make([]types.Verdict, len(lines))
	for i, l := range lines {
		out[i] = Classify(l)
	}
	return out
}

func hasBracket(s string) bool {
	return strings.ContainsAny(s, brackets)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// startsWithKeyword reports whether s begins with a keyword followed by a word
// boundary. The boundary is Unicode-aware: "if문" is not a keyword use.
func startsWithKeyword(s string) bool {
	if loc := asyncDefRe.FindStringIndex(s); loc != nil && atBoundary(s, loc[1]) {
		return true
	}
	for _, kw := range Keywords {
		if strings.HasPrefix(s, kw) && atBoundary(s, len(kw)) {
			return true
		}
	}
	return false
}

func atBoundary(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
