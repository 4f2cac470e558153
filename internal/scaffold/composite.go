package scaffold

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/loom-cli/loom/internal/config"
	"github.com/loom-cli/loom/internal/output"
	"github.com/loom-cli/loom/internal/plan"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// compositeState tracks where a "both" run is in its lifecycle.
type compositeState int

const (
	stateInit compositeState = iota
	stateBackendRunning
	stateBackendDone
	stateFrontendRunning
	stateFrontendDone
	stateFinalized
	stateFailed
)

func (s compositeState) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateBackendRunning:
		return "backend-running"
	case stateBackendDone:
		return "backend-done"
	case stateFrontendRunning:
		return "frontend-running"
	case stateFrontendDone:
		return "frontend-done"
	case stateFinalized:
		return "finalized"
	case stateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// readmeData feeds the root README template.
type readmeData struct {
	Name    string
	Manager string
	Install string
	Dev     string
}

// RunBoth scaffolds a composite project: backend/ and frontend/ under
// one root, driven as a single transaction. A failure in either
// sub-scaffold rolls the whole root back, discarding any completed
// sub-project output. The backend/ and frontend/ subpaths are plain
// directories sharing the root handle's fate, never independent
// transactions.
func (o *Orchestrator) RunBoth(ctx context.Context, cfg config.Project, backend, frontend Generator) error {
	backendSteps, err := backend.Generate(cfg)
	if err != nil {
		return fmt.Errorf("planning %s project: %w", backend.Name(), err)
	}
	frontendSteps, err := frontend.Generate(cfg)
	if err != nil {
		return fmt.Errorf("planning %s project: %w", frontend.Name(), err)
	}

	if o.exec.DryRun {
		return o.dryRunBoth(ctx, cfg, backendSteps, frontendSteps)
	}

	state := stateInit
	output.Verbose(fmt.Sprintf("composite: %s", state))

	handle, err := o.projects.Begin(cfg.BasePath, cfg.Name, o.overwrite)
	if err != nil {
		return err
	}

	backendDir := filepath.Join(handle.Path, "backend")
	frontendDir := filepath.Join(handle.Path, "frontend")
	for _, dir := range []string{backendDir, frontendDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			o.onFailure(handle)
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	state = stateBackendRunning
	output.Verbose(fmt.Sprintf("composite: %s", state))
	output.Info("Scaffolding backend")
	env := &plan.Env{Dir: backendDir, PM: cfg.PackageManager, Runner: o.runner}
	if err := o.exec.Apply(ctx, env, backendSteps); err != nil {
		state = stateFailed
		output.Verbose(fmt.Sprintf("composite: %s", state))
		o.onFailure(handle)
		return err
	}

	state = stateBackendDone
	output.Verbose(fmt.Sprintf("composite: %s", state))

	state = stateFrontendRunning
	output.Verbose(fmt.Sprintf("composite: %s", state))
	output.Info("Scaffolding frontend")
	env = &plan.Env{Dir: frontendDir, PM: cfg.PackageManager, Runner: o.runner}
	if err := o.exec.Apply(ctx, env, frontendSteps); err != nil {
		state = stateFailed
		output.Verbose(fmt.Sprintf("composite: %s", state))
		o.onFailure(handle)
		return err
	}

	state = stateFrontendDone
	output.Verbose(fmt.Sprintf("composite: %s", state))

	// Both sub-projects exist; the README is a courtesy on top. If it
	// cannot be written the finished work is kept, not rolled back.
	if err := o.writeRootReadme(cfg, handle.Path); err != nil {
		output.Warning(fmt.Sprintf("Could not write README.md: %v", err))
	}

	state = stateFinalized
	output.Verbose(fmt.Sprintf("composite: %s", state))
	o.projects.Commit(handle)
	return nil
}

// dryRunBoth prints both sub-plans and the finalize step without
// touching the filesystem.
func (o *Orchestrator) dryRunBoth(ctx context.Context, cfg config.Project, backendSteps, frontendSteps []plan.Step) error {
	root := cfg.Root()

	output.Info("Scaffolding backend")
	env := &plan.Env{Dir: filepath.Join(root, "backend"), PM: cfg.PackageManager, Runner: o.runner}
	if err := o.exec.Apply(ctx, env, backendSteps); err != nil {
		return err
	}

	output.Info("Scaffolding frontend")
	env = &plan.Env{Dir: filepath.Join(root, "frontend"), PM: cfg.PackageManager, Runner: o.runner}
	if err := o.exec.Apply(ctx, env, frontendSteps); err != nil {
		return err
	}

	fmt.Fprintln(o.exec.writer(), "✓ [DRY RUN] Create README.md")
	return nil
}

// writeRootReadme renders the composite summary README into the root.
func (o *Orchestrator) writeRootReadme(cfg config.Project, root string) error {
	content, err := o.renderer.RenderFS(templatesFS, "templates/readme.md.tmpl", readmeData{
		Name:    cfg.Name,
		Manager: cfg.PackageManager.String(),
		Install: cfg.PackageManager.InstallCommand(),
		Dev:     cfg.PackageManager.DevCommand(),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(root, "README.md"), content, 0o644)
}
