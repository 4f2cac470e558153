// Package config defines the resolved configuration a scaffolding run
// operates on, plus the optional user defaults file.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/loom-cli/loom/internal/pm"
)

// Type identifies what kind of project a run scaffolds.
type Type int

const (
	Frontend Type = iota
	Backend
	Both
)

// String returns the canonical name used on the CLI and in output.
func (t Type) String() string {
	switch t {
	case Frontend:
		return "frontend"
	case Backend:
		return "backend"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Project is the fully resolved configuration for one scaffolding run.
// It is built once at the CLI boundary and never modified afterwards.
type Project struct {
	Type           Type
	Name           string
	BasePath       string // absolute, verified to exist
	PackageManager pm.Manager
	TypeScript     bool
	StyleSheets    bool
}

// Root returns the absolute path the project root will occupy.
func (p Project) Root() string {
	return filepath.Join(p.BasePath, p.Name)
}
