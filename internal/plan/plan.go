// Package plan models a generation plan: the ordered steps a
// generator wants performed inside a project directory.
//
// Generators build steps as pure data. Execution happens later, with
// an Env naming the directory, package manager, and command runner to
// use. The directory is always explicit; no step ever consults or
// mutates the process working directory.
package plan

import (
	"context"

	"github.com/loom-cli/loom/internal/execx"
	"github.com/loom-cli/loom/internal/pm"
)

// Step is one unit of a generation plan.
//
// Describe returns a human-readable summary for progress output and
// dry runs (e.g. "Create src/index.ts (214 bytes)").
//
// Run performs the step inside env.Dir. Steps do no cleanup of their
// own; a failed step fails the surrounding transaction and rollback
// happens at the directory level.
type Step interface {
	Describe() string
	Run(ctx context.Context, env *Env) error
}

// Env is the execution environment threaded through every step.
type Env struct {
	Dir    string       // project directory steps operate in
	PM     pm.Manager   // resolved package manager
	Runner execx.Runner // external command runner
}

// spinRunner is the optional capability of showing a progress spinner
// while a long command runs. The production runner implements it;
// test fakes usually do not.
type spinRunner interface {
	RunWithSpinner(ctx context.Context, message, dir, name string, args ...string) error
}
