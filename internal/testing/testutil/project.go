package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestProject is a temporary base directory for scaffolding tests.
type TestProject struct {
	Base string // base path projects are created under
	Name string
	t    *testing.T
}

// NewTestProject creates a temporary base directory for a project.
func NewTestProject(t *testing.T, name string) *TestProject {
	t.Helper()

	return &TestProject{
		Base: t.TempDir(),
		Name: name,
		t:    t,
	}
}

// Root returns the path the project root occupies under Base.
func (p *TestProject) Root() string {
	return filepath.Join(p.Base, p.Name)
}

// Path joins path elements under the project root.
func (p *TestProject) Path(elem ...string) string {
	return filepath.Join(append([]string{p.Root()}, elem...)...)
}

// FileExists checks if a file exists in the project.
func (p *TestProject) FileExists(path string) bool {
	p.t.Helper()

	_, err := os.Stat(p.Path(path))
	return err == nil
}

// ReadFile reads a file from the project.
func (p *TestProject) ReadFile(path string) string {
	p.t.Helper()

	content, err := os.ReadFile(p.Path(path))
	if err != nil {
		p.t.Fatalf("reading %s failed: %v", path, err)
	}
	return string(content)
}
