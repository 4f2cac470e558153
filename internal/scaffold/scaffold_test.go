package scaffold_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-cli/loom/internal/config"
	"github.com/loom-cli/loom/internal/plan"
	"github.com/loom-cli/loom/internal/pm"
	"github.com/loom-cli/loom/internal/project"
	"github.com/loom-cli/loom/internal/scaffold"
	"github.com/loom-cli/loom/internal/testing/testutil"
)

// stubGenerator returns a canned plan, so orchestrator tests control
// exactly which steps run.
type stubGenerator struct {
	name  string
	steps []plan.Step
	err   error
}

func (g *stubGenerator) Name() string { return g.name }

func (g *stubGenerator) Generate(cfg config.Project) ([]plan.Step, error) {
	return g.steps, g.err
}

// hookStep runs an arbitrary function, for failure injection.
type hookStep struct {
	desc string
	fn   func(env *plan.Env) error
}

func (s *hookStep) Describe() string { return s.desc }

func (s *hookStep) Run(_ context.Context, env *plan.Env) error { return s.fn(env) }

func backendConfig(t *testing.T, name string) config.Project {
	t.Helper()
	return config.Project{
		Type:           config.Backend,
		Name:           name,
		BasePath:       t.TempDir(),
		PackageManager: pm.Npm,
		TypeScript:     true,
		StyleSheets:    true,
	}
}

func TestRun_CommitsOnSuccess(t *testing.T) {
	cfg := backendConfig(t, "api")
	runner := &testutil.RecordingRunner{OnRun: testutil.InitSimulator()}

	orch := scaffold.New(runner, scaffold.Options{Writer: &bytes.Buffer{}})
	gen := &stubGenerator{name: "backend", steps: []plan.Step{
		&plan.RunCommand{Cmd: cfg.PackageManager.Init(), Label: "Initialize package"},
		&plan.MakeDirs{Dirs: []string{"src"}},
		&plan.WriteFile{Path: "src/index.ts", Content: []byte("export {}\n"), Mode: 0o644},
	}}

	err := orch.Run(context.Background(), cfg, gen)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(cfg.Root(), "package.json"))
	assert.FileExists(t, filepath.Join(cfg.Root(), "src", "index.ts"))

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, cfg.Root(), runner.Calls[0].Dir)
}

func TestRun_RollsBackOnStepFailure(t *testing.T) {
	cfg := backendConfig(t, "api")
	runner := &testutil.RecordingRunner{FailOn: "npm install"}

	orch := scaffold.New(runner, scaffold.Options{Writer: &bytes.Buffer{}})
	gen := &stubGenerator{name: "backend", steps: []plan.Step{
		&plan.MakeDirs{Dirs: []string{"src"}},
		&plan.InstallDeps{Packages: []string{"express"}},
	}}

	err := orch.Run(context.Background(), cfg, gen)
	require.Error(t, err)

	var stageErr *scaffold.StageError
	assert.ErrorAs(t, err, &stageErr)
	assert.NoDirExists(t, cfg.Root())
}

func TestRun_ConflictLeavesTargetUntouched(t *testing.T) {
	cfg := backendConfig(t, "api")
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Root(), "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Root(), "src", "keep.js"), []byte("keep me\n"), 0o644))

	before := testutil.Snapshot(t, cfg.Root())

	runner := &testutil.RecordingRunner{}
	orch := scaffold.New(runner, scaffold.Options{Writer: &bytes.Buffer{}})
	gen := &stubGenerator{name: "backend", steps: []plan.Step{
		&plan.WriteFile{Path: "src/keep.js", Content: []byte("overwritten\n"), Mode: 0o644},
	}}

	err := orch.Run(context.Background(), cfg, gen)
	require.ErrorIs(t, err, project.ErrConflict)
	assert.Empty(t, runner.Calls)

	after := testutil.Snapshot(t, cfg.Root())
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("target changed on conflict (-before +after):\n%s", diff)
	}
}

func TestRun_OverwriteReplacesTarget(t *testing.T) {
	cfg := backendConfig(t, "api")
	require.NoError(t, os.MkdirAll(cfg.Root(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Root(), "stale.txt"), []byte("old"), 0o644))

	orch := scaffold.New(&testutil.RecordingRunner{}, scaffold.Options{
		Overwrite: true,
		Writer:    &bytes.Buffer{},
	})
	gen := &stubGenerator{name: "backend", steps: []plan.Step{
		&plan.WriteFile{Path: "fresh.txt", Content: []byte("new\n"), Mode: 0o644},
	}}

	err := orch.Run(context.Background(), cfg, gen)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(cfg.Root(), "stale.txt"))
	assert.FileExists(t, filepath.Join(cfg.Root(), "fresh.txt"))
}

func TestRun_DryRunCreatesNothing(t *testing.T) {
	cfg := backendConfig(t, "api")
	runner := &testutil.RecordingRunner{}

	var buf bytes.Buffer
	orch := scaffold.New(runner, scaffold.Options{DryRun: true, Writer: &buf})
	gen := &stubGenerator{name: "backend", steps: []plan.Step{
		&plan.RunCommand{Cmd: cfg.PackageManager.Init(), Label: "Initialize package"},
		&plan.MakeDirs{Dirs: []string{"src"}},
	}}

	err := orch.Run(context.Background(), cfg, gen)
	require.NoError(t, err)

	assert.NoDirExists(t, cfg.Root())
	assert.Empty(t, runner.Calls)
	assert.Contains(t, buf.String(), "[DRY RUN]")
}

func TestRun_PlanningFailureCreatesNothing(t *testing.T) {
	cfg := backendConfig(t, "api")
	gen := &stubGenerator{name: "backend", err: os.ErrInvalid}

	orch := scaffold.New(&testutil.RecordingRunner{}, scaffold.Options{Writer: &bytes.Buffer{}})
	err := orch.Run(context.Background(), cfg, gen)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "planning backend project")
	assert.NoDirExists(t, cfg.Root())
}
