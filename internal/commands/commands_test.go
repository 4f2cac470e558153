package commands

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-cli/loom/internal/config"
	"github.com/loom-cli/loom/internal/pm"
	"github.com/loom-cli/loom/internal/testing/testutil"
	"github.com/loom-cli/loom/internal/validate"
)

type fakeProbe map[string]string

func (p fakeProbe) LookPath(file string) (string, error) {
	if path, ok := p[file]; ok {
		return path, nil
	}
	return "", exec.ErrNotFound
}

func TestResolveProject_FlagsAreValidatedFast(t *testing.T) {
	defaults := config.Defaults{TypeScript: true, StyleSheets: true}

	_, err := resolveProject(&scaffoldOptions{projectType: "react", name: "app", path: "."}, defaults)
	require.Error(t, err)
	var vErr *validate.Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "type", vErr.Field)

	_, err = resolveProject(&scaffoldOptions{projectType: "both", name: "MyApp", path: "."}, defaults)
	require.Error(t, err)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)

	_, err = resolveProject(&scaffoldOptions{projectType: "both", name: "app", path: "/definitely/not/here"}, defaults)
	require.Error(t, err)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "path", vErr.Field)
}

func TestResolveProject_MergesDefaults(t *testing.T) {
	base := t.TempDir()

	cfg, err := resolveProject(&scaffoldOptions{
		projectType:  "nodejs",
		name:         "my-api",
		path:         base,
		noTypeScript: true,
	}, config.Defaults{TypeScript: true, StyleSheets: true})
	require.NoError(t, err)

	assert.Equal(t, config.Backend, cfg.Type)
	assert.Equal(t, "my-api", cfg.Name)
	assert.Equal(t, base, cfg.BasePath)
	assert.False(t, cfg.TypeScript, "--no-typescript must win")
	assert.True(t, cfg.StyleSheets)

	cfg, err = resolveProject(&scaffoldOptions{
		projectType: "frontend",
		name:        "web",
		path:        base,
	}, config.Defaults{TypeScript: false, StyleSheets: false})
	require.NoError(t, err)
	assert.False(t, cfg.TypeScript, "configured default applies without a flag")
	assert.False(t, cfg.StyleSheets)
}

func TestPreferences(t *testing.T) {
	defaults := config.Defaults{PackageManager: "pnpm"}

	prefs := preferences(&scaffoldOptions{yarn: true}, defaults)
	assert.True(t, prefs.Yarn, "explicit flag outranks the config file")
	assert.False(t, prefs.Pnpm)

	prefs = preferences(&scaffoldOptions{}, defaults)
	assert.False(t, prefs.Yarn)
	assert.True(t, prefs.Pnpm, "config default applies without flags")

	prefs = preferences(&scaffoldOptions{}, config.Defaults{})
	assert.False(t, prefs.Yarn)
	assert.False(t, prefs.Pnpm)
}

func TestBuildReport(t *testing.T) {
	probe := fakeProbe{
		"node": "/usr/bin/node",
		"yarn": "/usr/bin/yarn",
		"npm":  "/usr/bin/npm",
	}
	runner := &testutil.RecordingRunner{Outputs: map[string]string{
		"node --version": "v20.11.1",
		"yarn --version": "1.22.22",
		"npm --version":  "10.5.0",
	}}

	report := buildReport(context.Background(), pm.Preferences{Yarn: true}, probe, runner)

	require.Len(t, report.Tools, 4)
	assert.Equal(t, toolStatus{Name: "node", Found: true, Path: "/usr/bin/node", Version: "20.11.1"}, report.Tools[0])
	assert.Equal(t, toolStatus{Name: "yarn", Found: true, Path: "/usr/bin/yarn", Version: "1.22.22"}, report.Tools[1])
	assert.Equal(t, toolStatus{Name: "pnpm"}, report.Tools[2])
	assert.Equal(t, "yarn", report.Resolved)
	assert.False(t, report.Assumed)
}

// The doctor verdict has to match what a scaffold run would actually
// pick, whatever managers happen to be installed.
func TestBuildReport_MatchesScaffoldResolution(t *testing.T) {
	probe := fakeProbe{
		"node": "/usr/bin/node",
		"yarn": "/usr/bin/yarn",
		"pnpm": "/usr/bin/pnpm",
		"npm":  "/usr/bin/npm",
	}
	runner := &testutil.RecordingRunner{}

	// No flags, no config file: the scaffold resolver picks npm even
	// with every manager installed.
	prefs := preferences(&scaffoldOptions{}, config.Defaults{})
	report := buildReport(context.Background(), prefs, probe, runner)

	want, _ := pm.Resolve(prefs, probe)
	assert.Equal(t, want.String(), report.Resolved)
	assert.Equal(t, "npm", report.Resolved)
	assert.False(t, report.Assumed)

	// A configured default changes both the same way.
	prefs = preferences(&scaffoldOptions{}, config.Defaults{PackageManager: "yarn"})
	report = buildReport(context.Background(), prefs, probe, runner)

	want, _ = pm.Resolve(prefs, probe)
	assert.Equal(t, want.String(), report.Resolved)
	assert.Equal(t, "yarn", report.Resolved)
}

func TestBuildReport_NothingInstalled(t *testing.T) {
	report := buildReport(context.Background(), pm.Preferences{}, fakeProbe{}, &testutil.RecordingRunner{})

	for _, tool := range report.Tools {
		assert.False(t, tool.Found, "%s should be missing", tool.Name)
	}
	assert.Equal(t, "npm", report.Resolved)
	assert.True(t, report.Assumed)
}
