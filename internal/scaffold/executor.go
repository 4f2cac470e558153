package scaffold

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/loom-cli/loom/internal/plan"
)

// Executor runs a generation plan strictly in order, one step at a
// time. No step begins before the previous one finished; a failure
// stops the plan and is reported with the failed step's description.
type Executor struct {
	DryRun bool
	Writer io.Writer // where progress lines go (defaults to os.Stdout)
}

func (e *Executor) writer() io.Writer {
	if e.Writer != nil {
		return e.Writer
	}
	return os.Stdout
}

// Apply executes steps inside env.Dir. In dry-run mode it prints each
// step's description and performs nothing. Cancellation is checked
// between steps, so an interrupt never starts new work.
func (e *Executor) Apply(ctx context.Context, env *plan.Env, steps []plan.Step) error {
	w := e.writer()

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return &StageError{Stage: step.Describe(), Err: err}
		}

		if e.DryRun {
			fmt.Fprintf(w, "✓ [DRY RUN] %s\n", step.Describe())
			continue
		}

		if err := step.Run(ctx, env); err != nil {
			return &StageError{Stage: step.Describe(), Err: err}
		}
		fmt.Fprintf(w, "✓ %s\n", step.Describe())
	}

	return nil
}
