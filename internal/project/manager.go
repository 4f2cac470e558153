package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/loom-cli/loom/internal/output"
)

// ErrConflict means the target path already exists and overwrite was
// not confirmed. Begin guarantees nothing was mutated when it returns
// this error.
var ErrConflict = errors.New("target already exists")

// Manager begins, commits, and rolls back project directories.
type Manager struct{}

// NewManager creates a directory lifecycle manager.
func NewManager() *Manager {
	return &Manager{}
}

// Begin creates basePath/name and returns its handle. An existing
// target without overwrite is a conflict and nothing is touched. With
// overwrite, the existing target is deleted first. Missing parent
// segments are created one at a time and recorded, so a failure
// partway can unwind exactly the segments this run made.
func (m *Manager) Begin(basePath, name string, overwrite bool) (*Handle, error) {
	target := filepath.Join(basePath, name)
	h := &Handle{ID: uuid.NewString(), Path: target, status: Planned}

	if _, err := os.Stat(target); err == nil {
		if !overwrite {
			return nil, fmt.Errorf("%w: %s is %s", ErrConflict, target, Describe(target))
		}
		output.Verbose(fmt.Sprintf("Removing existing %s", target))
		if err := os.RemoveAll(target); err != nil {
			return nil, fmt.Errorf("removing existing %s: %w", target, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking %s: %w", target, err)
	}

	if err := m.createChain(h, target); err != nil {
		m.unwind(h)
		return nil, err
	}

	h.status = Created
	output.Verbose(fmt.Sprintf("Created %s (transaction %s)", target, h.ID))
	return h, nil
}

// Commit marks the handle's directory as permanent. Committing twice
// is a no-op; a committed handle can never be rolled back.
func (m *Manager) Commit(h *Handle) {
	if h.status != Created {
		return
	}
	h.status = Committed
	output.Verbose(fmt.Sprintf("Committed %s (transaction %s)", h.Path, h.ID))
}

// Rollback recursively deletes the handle's directory. It is
// idempotent: an already-rolled-back handle, a never-created handle,
// or an already-absent path are all silent no-ops. A committed handle
// is never deleted. The returned error reports a deletion that
// genuinely failed; callers log it as a warning without masking the
// original failure.
func (m *Manager) Rollback(h *Handle) error {
	if h == nil || h.status == Committed || h.status == RolledBack {
		return nil
	}

	if h.status == Created {
		if err := os.RemoveAll(h.Path); err != nil {
			return fmt.Errorf("rolling back %s: %w", h.Path, err)
		}
		output.Verbose(fmt.Sprintf("Rolled back %s (transaction %s)", h.Path, h.ID))
	}

	m.unwind(h)
	h.status = RolledBack
	return nil
}

// createChain makes every missing segment between the filesystem root
// and target, shallowest first, recording each one created.
func (m *Manager) createChain(h *Handle, target string) error {
	missing := missingSegments(target)
	for _, segment := range missing {
		if err := os.Mkdir(segment, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", segment, err)
		}
		h.createdParents = append(h.createdParents, segment)
	}
	return nil
}

// unwind removes the recorded created segments deepest first. Only
// empty directories go; anything that gained content stays.
func (m *Manager) unwind(h *Handle) {
	for i := len(h.createdParents) - 1; i >= 0; i-- {
		// Best effort: Remove refuses non-empty directories.
		os.Remove(h.createdParents[i])
	}
	h.createdParents = nil
}

// missingSegments returns the path prefixes of target that do not
// exist yet, shallowest first, ending with target itself.
func missingSegments(target string) []string {
	var missing []string
	for p := target; ; p = filepath.Dir(p) {
		if _, err := os.Stat(p); err == nil {
			break
		}
		missing = append(missing, p)
		if parent := filepath.Dir(p); parent == p {
			break
		}
	}
	// Reverse into creation order
	for i, j := 0, len(missing)-1; i < j; i, j = i+1, j-1 {
		missing[i], missing[j] = missing[j], missing[i]
	}
	return missing
}
