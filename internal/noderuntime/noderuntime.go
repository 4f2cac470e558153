// Package noderuntime probes for the Node.js runtime that scaffolded
// projects depend on.
package noderuntime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/loom-cli/loom/internal/execx"
)

// ErrNotFound means no node executable was discoverable on PATH.
var ErrNotFound = errors.New("node.js runtime not found")

// Probe reports whether an executable is discoverable.
type Probe interface {
	LookPath(file string) (string, error)
}

// Info describes the discovered runtime.
type Info struct {
	Path    string
	Version string // normalized, e.g. "20.11.1"; empty if the query failed
}

// Check verifies Node.js is installed and queries its version. The
// version is display-only; presence is the only gate.
func Check(ctx context.Context, probe Probe, runner execx.Runner) (Info, error) {
	path, err := probe.LookPath("node")
	if err != nil {
		return Info{}, fmt.Errorf("%w: install it from https://nodejs.org and retry", ErrNotFound)
	}

	info := Info{Path: path}

	raw, err := runner.Output(ctx, "", "node", "--version")
	if err != nil {
		// Presence is enough; a failed version query is cosmetic.
		return info, nil
	}
	info.Version = normalizeVersion(raw)

	return info, nil
}

// normalizeVersion strips the leading v and validates the rest as
// semver, falling back to the raw string for unexpected formats.
func normalizeVersion(raw string) string {
	raw = strings.TrimSpace(raw)
	if v, err := semver.NewVersion(strings.TrimPrefix(raw, "v")); err == nil {
		return v.String()
	}
	return raw
}
