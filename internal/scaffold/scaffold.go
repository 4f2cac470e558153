// Package scaffold turns a resolved project configuration into a
// committed directory tree, or rolls everything back without trace.
//
// The orchestrators own the transaction boundary: they begin the
// project directory, run generator plans inside it, and either commit
// the handle or hand it to the rollback path. Generators stay pure
// plan builders and never clean up after themselves.
package scaffold

import (
	"context"
	"fmt"
	"io"

	"github.com/loom-cli/loom/internal/config"
	"github.com/loom-cli/loom/internal/execx"
	"github.com/loom-cli/loom/internal/output"
	"github.com/loom-cli/loom/internal/plan"
	"github.com/loom-cli/loom/internal/project"
	"github.com/loom-cli/loom/internal/render"
)

// Generator builds the generation plan for one project variant.
// Generate is pure: it decides what to create from the configuration
// and returns the steps as data, touching nothing itself.
type Generator interface {
	Name() string
	Generate(cfg config.Project) ([]plan.Step, error)
}

// Options configures a scaffolding run.
type Options struct {
	Overwrite bool      // delete an existing target instead of failing
	DryRun    bool      // print the plan, touch nothing
	Writer    io.Writer // progress output (defaults to os.Stdout)
}

// Orchestrator coordinates project lifecycle, plan execution, and
// rollback for one scaffolding run.
type Orchestrator struct {
	projects  *project.Manager
	exec      *Executor
	runner    execx.Runner
	renderer  *render.Renderer
	overwrite bool
}

// New creates an orchestrator that runs external commands through
// runner.
func New(runner execx.Runner, opts Options) *Orchestrator {
	return &Orchestrator{
		projects:  project.NewManager(),
		exec:      &Executor{DryRun: opts.DryRun, Writer: opts.Writer},
		runner:    runner,
		renderer:  render.NewRenderer(),
		overwrite: opts.Overwrite,
	}
}

// Run scaffolds a single-variant project at cfg.Root(). On any failure
// after the directory was created, the directory is rolled back and
// the original error is returned.
func (o *Orchestrator) Run(ctx context.Context, cfg config.Project, gen Generator) error {
	steps, err := gen.Generate(cfg)
	if err != nil {
		return fmt.Errorf("planning %s project: %w", gen.Name(), err)
	}
	output.Verbose(fmt.Sprintf("%s plan: %d steps", gen.Name(), len(steps)))

	if o.exec.DryRun {
		env := &plan.Env{Dir: cfg.Root(), PM: cfg.PackageManager, Runner: o.runner}
		return o.exec.Apply(ctx, env, steps)
	}

	handle, err := o.projects.Begin(cfg.BasePath, cfg.Name, o.overwrite)
	if err != nil {
		return err
	}

	env := &plan.Env{Dir: handle.Path, PM: cfg.PackageManager, Runner: o.runner}
	if err := o.exec.Apply(ctx, env, steps); err != nil {
		o.onFailure(handle)
		return err
	}

	o.projects.Commit(handle)
	return nil
}

// onFailure rolls back everything the failed transaction created. It
// runs exactly once per failed transaction and never after a commit.
// A rollback failure is logged as a warning so it cannot mask the
// original error.
func (o *Orchestrator) onFailure(h *project.Handle) {
	output.Warning(fmt.Sprintf("Rolling back %s", h.Path))
	if err := o.projects.Rollback(h); err != nil {
		output.Warning(fmt.Sprintf("Rollback incomplete: %v", err))
	}
}
