// Package glob compiles shell-style exclude patterns into path predicates.
//
// Supported tokens are `**` (any sequence of characters, separators included),
// `*` (any run of non-separator characters) and `?` (exactly one character).
// Everything else is matched literally. A compiled pattern matches when it is
// found anywhere in the slash-separated relative path; it is not anchored to
// the start or end of the path or to segment boundaries.
package glob

import (
	"regexp"
	"strings"
)

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenAnyPath
	tokenAnySegment
	tokenAnyChar
)

type token struct {
	kind tokenKind
	text string
}

// tokenize splits a pattern into wildcard tokens and literal runs.
func tokenize(pattern string) []token {
	var (
		tokens  []token
		literal strings.Builder
	)

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{kind: tokenLiteral, text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*':
			flush()
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				tokens = append(tokens, token{kind: tokenAnyPath})
				i++
				// collapse runs like *** into a single **
				for i+1 < len(pattern) && pattern[i+1] == '*' {
					i++
				}
				continue
			}
			tokens = append(tokens, token{kind: tokenAnySegment})
		case '?':
			flush()
			tokens = append(tokens, token{kind: tokenAnyChar})
		default:
			literal.WriteByte(pattern[i])
		}
	}
	flush()

	return tokens
}

// toRegexp renders the tokens as an unanchored regular expression.
func toRegexp(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		switch t.kind {
		case tokenAnyPath:
			b.WriteString(".*")
		case tokenAnySegment:
			b.WriteString("[^/]*")
		case tokenAnyChar:
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(t.text))
		}
	}
	return b.String()
}

// Pattern is a single compiled exclude pattern.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// CompilePattern compiles a single glob. Literal runs are quoted, so every
// input string produces a valid expression.
func CompilePattern(pattern string) *Pattern {
	return &Pattern{
		source: pattern,
		re:     regexp.MustCompile(toRegexp(tokenize(pattern))),
	}
}

// String returns the original glob.
func (p *Pattern) String() string {
	return p.source
}

// Match reports whether the pattern occurs anywhere in rel.
func (p *Pattern) Match(rel string) bool {
	return p.re.MatchString(rel)
}

// Matcher holds an ordered list of compiled patterns.
type Matcher struct {
	patterns []*Pattern
}

// Compile compiles patterns once so they can be reused for a whole traversal.
func Compile(patterns []string) *Matcher {
	m := &Matcher{patterns: make([]*Pattern, 0, len(patterns))}
	for _, p := range patterns {
		m.patterns = append(m.patterns, CompilePattern(p))
	}
	return m
}

// Match returns the first pattern, in list order, that matches rel.
func (m *Matcher) Match(rel string) (*Pattern, bool) {
	if m == nil {
		return nil, false
	}
	for _, p := range m.patterns {
		if p.Match(rel) {
			return p, true
		}
	}
	return nil, false
}

// Excluded reports whether any pattern matches rel.
func (m *Matcher) Excluded(rel string) bool {
	_, ok := m.Match(rel)
	return ok
}

// IsExcluded compiles patterns and checks rel against them in one call.
func IsExcluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if CompilePattern(p).Match(rel) {
			return true
		}
	}
	return false
}
