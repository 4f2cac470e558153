package render

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/*.tmpl
var testFS embed.FS

func TestNewRenderer(t *testing.T) {
	r := NewRenderer()
	assert.NotNil(t, r)
	assert.NotNil(t, r.funcMap)
	assert.Empty(t, r.cache)
}

func TestRenderString(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name        string
		templateStr string
		data        any
		expected    string
		wantErr     bool
		errContains string
	}{
		{
			name:        "simple template with no data",
			templateStr: "Hello World",
			expected:    "Hello World",
		},
		{
			name:        "template with struct data",
			templateStr: "Project: {{ .Name }}",
			data:        struct{ Name string }{Name: "my-app"},
			expected:    "Project: my-app",
		},
		{
			name:        "title helper splits hyphens",
			templateStr: "# {{ title .Name }}",
			data:        map[string]any{"Name": "my-shop-api"},
			expected:    "# My Shop Api",
		},
		{
			name:        "quote helper",
			templateStr: "{{ quote .Name }}",
			data:        map[string]any{"Name": "dev"},
			expected:    `"dev"`,
		},
		{
			name:        "default helper",
			templateStr: "{{ default \"npm\" .Manager }}",
			data:        map[string]any{"Manager": ""},
			expected:    "npm",
		},
		{
			name:        "template with syntax error",
			templateStr: "{{ .Name }",
			wantErr:     true,
			errContains: "failed to parse template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderString(tt.name, tt.templateStr, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestRenderStringUsesCache(t *testing.T) {
	r := NewRenderer()

	first, err := r.RenderString("cached", "{{ .N }}", map[string]any{"N": 1})
	require.NoError(t, err)
	assert.Equal(t, "1", string(first))

	// Same name, different data: the cached parse is reused
	second, err := r.RenderString("cached", "ignored because cached", map[string]any{"N": 2})
	require.NoError(t, err)
	assert.Equal(t, "2", string(second))

	r.ClearCache()
	third, err := r.RenderString("cached", "fresh", nil)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(third))
}

func TestRenderFS(t *testing.T) {
	r := NewRenderer()

	got, err := r.RenderFS(testFS, "testdata/greeting.tmpl", map[string]any{"Name": "loom"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, loom!\n", string(got))
}

func TestRenderFSMissingTemplate(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderFS(testFS, "testdata/missing.tmpl", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read template")
}
