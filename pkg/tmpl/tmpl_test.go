package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		data    any
		want    string
		wantErr bool
	}{
		{
			name: "simple substitution",
			tmpl: "hello {{ .Name }}",
			data: map[string]string{"Name": "world"},
			want: "hello world",
		},
		{
			name: "multiple variables",
			tmpl: `prettier --stdin-filepath "{{ .Path }}" --tab-width {{ .TabSize }}`,
			data: map[string]string{
				"Path":    "/src/app.ts",
				"TabSize": "2",
			},
			want: `prettier --stdin-filepath "/src/app.ts" --tab-width 2`,
		},
		{
			name: "struct data with conditionals",
			tmpl: "fmt {{ if not .InsertSpaces }}--use-tabs {{ end }}{{ .Path }}",
			data: struct {
				Path         string
				InsertSpaces bool
			}{Path: "/tmp/a.ts", InsertSpaces: false},
			want: "fmt --use-tabs /tmp/a.ts",
		},
		{
			name: "path helpers",
			tmpl: "{{ .Path | base }} {{ .Path | ext }} {{ .Path | dir }}",
			data: map[string]string{"Path": "/src/lib/app.ts"},
			want: "app.ts .ts /src/lib",
		},
		{
			name: "no variables",
			tmpl: "static string",
			data: nil,
			want: "static string",
		},
		{
			name:    "missing key errors",
			tmpl:    "{{ .Missing }}",
			data:    map[string]string{"Name": "test"},
			wantErr: true,
		},
		{
			name:    "invalid template syntax",
			tmpl:    "{{ .Name }",
			data:    map[string]string{"Name": "test"},
			wantErr: true,
		},
		{
			name: "empty value is valid",
			tmpl: "prefix{{ .Name }}suffix",
			data: map[string]string{"Name": ""},
			want: "prefixsuffix",
		},
		{
			name: "shq function with spaces",
			tmpl: "echo {{ .Path | shq }}",
			data: map[string]string{"Path": "hello world"},
			want: "echo 'hello world'",
		},
		{
			name: "shq function with single quotes",
			tmpl: "echo {{ .Path | shq }}",
			data: map[string]string{"Path": "it's a test"},
			want: `echo 'it'\''s a test'`,
		},
		{
			name: "shq function with double quotes",
			tmpl: "echo {{ .Path | shq }}",
			data: map[string]string{"Path": `say "hello"`},
			want: `echo 'say "hello"'`,
		},
		{
			name: "shq function with empty string",
			tmpl: "echo {{ .Path | shq }}",
			data: map[string]string{"Path": ""},
			want: "echo ''",
		},
		{
			name: "shq function with special chars",
			tmpl: "echo {{ .Path | shq }}",
			data: map[string]string{"Path": "$(whoami) && rm -rf /"},
			want: "echo '$(whoami) && rm -rf /'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	data := struct {
		Path    string
		TabSize int
	}{}

	require.NoError(t, Validate("gofmt {{ .Path | shq }}", data))
	require.Error(t, Validate("gofmt {{ .Path }", data))
	require.Error(t, Validate("gofmt {{ .Unknown }}", data))
}
