package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsExcluded(t *testing.T) {
	t.Parallel()

	defaults := []string{
		"**/node_modules/**", "**/dist/**", "**/build/**", "**/out/**",
		"**/.git/**", "**/vendor/**", "**/*.min.js", "**/*.min.css",
	}

	tests := []struct {
		name     string
		rel      string
		patterns []string
		want     bool
	}{
		{
			name:     "nested node_modules",
			rel:      "a/node_modules/b/c.ts",
			patterns: []string{"**/node_modules/**"},
			want:     true,
		},
		{
			name:     "minified file in subdirectory",
			rel:      "src/lib/b.min.js",
			patterns: defaults,
			want:     true,
		},
		{
			name:     "plain source file",
			rel:      "src/index.ts",
			patterns: defaults,
			want:     false,
		},
		{
			name:     "top-level dir without leading segment is not matched by **/x/**",
			rel:      "node_modules",
			patterns: []string{"**/node_modules/**"},
			want:     false,
		},
		{
			name:     "single star stops at separator",
			rel:      "a/b.ts",
			patterns: []string{"a*.ts"},
			want:     false,
		},
		{
			name:     "single star within a segment",
			rel:      "src/abc.ts",
			patterns: []string{"a*.ts"},
			want:     true,
		},
		{
			name:     "pattern without wildcards matches anywhere",
			rel:      "docs/generated/api.md",
			patterns: []string{"generated"},
			want:     true,
		},
		{
			name:     "question mark matches one character",
			rel:      "src/v1.ts",
			patterns: []string{"v?.ts"},
			want:     true,
		},
		{
			name:     "question mark needs a character",
			rel:      "src/v.ts",
			patterns: []string{"v?.ts"},
			want:     false,
		},
		{
			name:     "regex metacharacters are literal",
			rel:      "src/a+b.ts",
			patterns: []string{"a+b.ts"},
			want:     true,
		},
		{
			name:     "dot is literal",
			rel:      "src/axmin.js",
			patterns: []string{"**/*.min.js"},
			want:     false,
		},
		{
			name:     "empty pattern list",
			rel:      "anything",
			patterns: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsExcluded(tt.rel, tt.patterns))
			assert.Equal(t, tt.want, Compile(tt.patterns).Excluded(tt.rel))
		})
	}
}

func TestMatcher_FirstMatchWins(t *testing.T) {
	t.Parallel()

	m := Compile([]string{"**/*.ts", "**/src/**"})

	p, ok := m.Match("pkg/src/a.ts")
	require.True(t, ok)
	assert.Equal(t, "**/*.ts", p.String())

	p, ok = m.Match("pkg/src/a.go")
	require.True(t, ok)
	assert.Equal(t, "**/src/**", p.String())

	_, ok = m.Match("pkg/a.go")
	assert.False(t, ok)
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := toRegexp(tokenize("**/a*?.js"))
	assert.Equal(t, `.*/a[^/]*.\.js`, got)

	got = toRegexp(tokenize("***/x"))
	assert.Equal(t, `.*/x`, got)
}

func TestNilMatcher(t *testing.T) {
	t.Parallel()

	var m *Matcher
	assert.False(t, m.Excluded("a/b"))
}
