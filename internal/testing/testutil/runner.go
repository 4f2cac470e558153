// Package testutil holds shared helpers for Loom's tests: a recording
// fake for the external command runner and filesystem tree snapshots.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Call is one recorded command invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Line renders the call the way a shell would show it.
func (c Call) Line() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// RecordingRunner is a fake command runner. It records every
// invocation and can simulate side effects and failures, so plans can
// be executed without yarn, pnpm, npm, or node installed.
type RecordingRunner struct {
	Calls []Call

	// FailOn fails any command whose line contains the substring.
	FailOn  string
	FailErr error

	// OnRun, when set, runs after recording. Use it to simulate tool
	// side effects, like an init command writing package.json.
	OnRun func(c Call) error

	// Outputs maps command lines to canned stdout for Output calls.
	Outputs map[string]string
}

// Run records the invocation and applies the configured behavior.
func (r *RecordingRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	c := Call{Dir: dir, Name: name, Args: args}
	r.Calls = append(r.Calls, c)

	if r.FailOn != "" && strings.Contains(c.Line(), r.FailOn) {
		if r.FailErr != nil {
			return r.FailErr
		}
		return fmt.Errorf("%s failed", c.Line())
	}
	if r.OnRun != nil {
		return r.OnRun(c)
	}
	return nil
}

// Output records the invocation and returns the canned stdout.
func (r *RecordingRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	c := Call{Dir: dir, Name: name, Args: args}
	r.Calls = append(r.Calls, c)

	if r.FailOn != "" && strings.Contains(c.Line(), r.FailOn) {
		if r.FailErr != nil {
			return "", r.FailErr
		}
		return "", fmt.Errorf("%s failed", c.Line())
	}
	return r.Outputs[c.Line()], nil
}

// Lines returns every recorded command line in order.
func (r *RecordingRunner) Lines() []string {
	lines := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		lines[i] = c.Line()
	}
	return lines
}

// InitSimulator returns an OnRun hook that mimics what package manager
// init and bootstrap commands leave behind: init writes a minimal
// package.json, create-next-app writes a marker tree.
func InitSimulator() func(Call) error {
	return func(c Call) error {
		line := c.Line()
		switch {
		case strings.Contains(line, "init"):
			return writeMinimalManifest(c.Dir)
		case strings.Contains(line, "next-app"):
			if err := writeMinimalManifest(c.Dir); err != nil {
				return err
			}
			return os.MkdirAll(filepath.Join(c.Dir, "app"), 0o755)
		default:
			return nil
		}
	}
}

func writeMinimalManifest(dir string) error {
	manifest := map[string]any{
		"name":    filepath.Base(dir),
		"version": "1.0.0",
		"main":    "index.js",
		"scripts": map[string]any{
			"test": `echo "Error: no test specified" && exit 1`,
		},
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "package.json"), append(data, '\n'), 0o644)
}
