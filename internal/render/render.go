// Package render renders the embedded text templates generators and
// the composite orchestrator emit files from.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Renderer handles template parsing and rendering with caching.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer with built-in helper functions.
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template from a string.
// The name is used for caching and error messages.
func (r *Renderer) RenderString(name, templateStr string, data any) ([]byte, error) {
	cacheKey := r.getCacheKey("string", name)

	r.mu.RLock()
	if tmpl, ok := r.cache[cacheKey]; ok {
		r.mu.RUnlock()
		return r.executeTemplate(tmpl, data)
	}
	r.mu.RUnlock()

	tmpl, err := template.New(name).Funcs(r.funcMap).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	r.mu.Lock()
	r.cache[cacheKey] = tmpl
	r.mu.Unlock()

	return r.executeTemplate(tmpl, data)
}

// RenderFS renders a template from an embedded filesystem.
func (r *Renderer) RenderFS(fs embed.FS, path string, data any) ([]byte, error) {
	cacheKey := r.getCacheKey("fs", path)

	r.mu.RLock()
	if tmpl, ok := r.cache[cacheKey]; ok {
		r.mu.RUnlock()
		return r.executeTemplate(tmpl, data)
	}
	r.mu.RUnlock()

	templateBytes, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template from fs '%s': %w", path, err)
	}

	tmpl, err := template.New(path).Funcs(r.funcMap).Parse(string(templateBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", path, err)
	}

	r.mu.Lock()
	r.cache[cacheKey] = tmpl
	r.mu.Unlock()

	return r.executeTemplate(tmpl, data)
}

// ClearCache clears the template cache (useful for testing).
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

// executeTemplate executes a parsed template with the given data.
func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// getCacheKey generates a cache key for a template.
func (r *Renderer) getCacheKey(typ, identifier string) string {
	return fmt.Sprintf("%s:%s", typ, identifier)
}

// defaultFuncMap returns the helpers Loom's templates use.
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"title":   Title,
		"trim":    strings.TrimSpace,
		"join":    strings.Join,
		"quote":   Quote,
		"default": Default,
	}
}

// Quote wraps a string in double quotes.
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// Title converts a string to title case (first letter of each word
// capitalized). Hyphens count as word breaks, so "my-app" becomes
// "My App".
func Title(s string) string {
	if s == "" {
		return ""
	}

	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(string(word[0])) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}

// Default returns the default value if the given value is nil or empty.
func Default(defaultVal, val any) any {
	if val == nil {
		return defaultVal
	}

	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}

	return val
}
