package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/loom-cli/loom/internal/output"
	"github.com/loom-cli/loom/internal/pm"
)

// MakeDirs creates directories, relative to the project directory, in
// the listed order.
type MakeDirs struct {
	Dirs []string
}

func (s *MakeDirs) Describe() string {
	return fmt.Sprintf("Create project directories (%d)", len(s.Dirs))
}

func (s *MakeDirs) Run(ctx context.Context, env *Env) error {
	for _, dir := range s.Dirs {
		if err := os.MkdirAll(filepath.Join(env.Dir, dir), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		output.Verbose("mkdir " + dir)
	}
	return nil
}

// WriteFile creates one file, relative to the project directory,
// creating parent directories as needed.
type WriteFile struct {
	Path    string      // relative file path
	Content []byte      // file content (can be empty, must not be nil)
	Mode    fs.FileMode // file permissions (e.g. 0644)
}

func (s *WriteFile) Describe() string {
	return fmt.Sprintf("Create %s (%d bytes)", s.Path, len(s.Content))
}

func (s *WriteFile) Run(ctx context.Context, env *Env) error {
	if s.Content == nil {
		return fmt.Errorf("content is nil for file: %s", s.Path)
	}

	target := filepath.Join(env.Dir, s.Path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", s.Path, err)
	}
	if err := os.WriteFile(target, s.Content, s.Mode); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}
	return nil
}

// RunCommand invokes an external command in the project directory.
type RunCommand struct {
	Cmd   pm.Command
	Label string // progress message, e.g. "Bootstrap Next.js app"
}

func (s *RunCommand) Describe() string {
	return fmt.Sprintf("%s (%s)", s.Label, commandLine(s.Cmd))
}

func (s *RunCommand) Run(ctx context.Context, env *Env) error {
	return runExternal(ctx, env, s.Label, s.Cmd)
}

// InstallDeps installs packages through the resolved package manager.
// The concrete command line is decided at run time from env.PM.
type InstallDeps struct {
	Packages []string
	Dev      bool
}

func (s *InstallDeps) Describe() string {
	kind := "dependencies"
	if s.Dev {
		kind = "dev dependencies"
	}
	return fmt.Sprintf("Install %s (%s)", kind, strings.Join(s.Packages, ", "))
}

func (s *InstallDeps) Run(ctx context.Context, env *Env) error {
	label := "Installing dependencies"
	if s.Dev {
		label = "Installing dev dependencies"
	}
	return runExternal(ctx, env, label, env.PM.Add(s.Dev, s.Packages...))
}

// RewriteScripts replaces the scripts table of the package.json the
// init command produced. It cannot be a plain WriteFile because the
// rest of the manifest is whatever the package manager generated at
// run time.
type RewriteScripts struct {
	Scripts map[string]string
}

func (s *RewriteScripts) Describe() string {
	return "Update package.json scripts"
}

func (s *RewriteScripts) Run(ctx context.Context, env *Env) error {
	manifestPath := filepath.Join(env.Dir, "package.json")

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("reading package.json: %w", err)
	}

	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("parsing package.json: %w", err)
	}

	scripts := make(map[string]any, len(s.Scripts))
	for name, cmd := range s.Scripts {
		scripts[name] = cmd
	}
	manifest["scripts"] = scripts

	// Keys come out sorted, so the result is deterministic.
	updated, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding package.json: %w", err)
	}
	updated = append(updated, '\n')

	if err := os.WriteFile(manifestPath, updated, 0o644); err != nil {
		return fmt.Errorf("writing package.json: %w", err)
	}
	return nil
}

// runExternal runs a command through the environment's runner, with a
// spinner when the runner supports one and raw output is not wanted.
func runExternal(ctx context.Context, env *Env, label string, cmd pm.Command) error {
	output.Verbose(commandLine(cmd) + "  (in " + env.Dir + ")")

	if sp, ok := env.Runner.(spinRunner); ok && !output.VerboseEnabled() {
		return sp.RunWithSpinner(ctx, label, env.Dir, cmd.Name, cmd.Args...)
	}
	return env.Runner.Run(ctx, env.Dir, cmd.Name, cmd.Args...)
}

func commandLine(cmd pm.Command) string {
	return strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
}
