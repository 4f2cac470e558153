package scaffold

import (
	"errors"
	"fmt"

	"github.com/loom-cli/loom/internal/execx"
)

// StageError reports which step of a generation plan failed and why.
// The cause is preserved for errors.Is/As, so callers can tell an
// external tool exiting nonzero apart from a filesystem failure.
type StageError struct {
	Stage string // the failed step's description
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ToolFailure reports whether err was ultimately caused by an external
// command exiting nonzero, and returns the exit details when it was.
func ToolFailure(err error) (*execx.ExitError, bool) {
	var exitErr *execx.ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}
