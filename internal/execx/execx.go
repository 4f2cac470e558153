// Package execx runs the external commands scaffolding depends on:
// package manager invocations and project bootstrappers.
//
// Commands always receive their working directory as an explicit
// argument. Nothing here mutates the process working directory, so a
// failed run can never leave the CLI stranded somewhere unexpected.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Runner executes external commands. The scaffolding executor depends
// on this interface so tests can substitute a recording fake.
type Runner interface {
	// Run executes a command in dir, streaming its output.
	Run(ctx context.Context, dir, name string, args ...string) error
	// Output executes a command in dir and returns its trimmed stdout.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExitError reports an external command that started but exited
// nonzero. Code carries the tool's exit status.
type ExitError struct {
	Name string
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Executor is the production Runner.
type Executor struct {
	stdout io.Writer
	stderr io.Writer
	env    []string

	// For mocking in tests
	commandFunc func(name string, args ...string) *exec.Cmd
}

// Options configures command execution
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // Additional environment variables
}

// NewExecutor creates an executor with sensible defaults
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	return &Executor{
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		env:         opts.Env,
		commandFunc: exec.Command, // Can be mocked for tests
	}
}

// Run executes a command in dir, streaming output to the configured
// writers.
func (e *Executor) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := e.commandFunc(name, args...)
	cmd.Dir = dir

	// Set environment
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}

	// Connect output streams
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	return e.wait(ctx, cmd, name)
}

// Output executes a command in dir and returns its trimmed stdout.
// Use this for short queries like version probes.
func (e *Executor) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := e.commandFunc(name, args...)
	cmd.Dir = dir

	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	if err := e.wait(ctx, cmd, name); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// wait starts the command and blocks until it exits or ctx is done.
func (e *Executor) wait(ctx context.Context, cmd *exec.Cmd, name string) error {
	if err := cmd.Start(); err != nil {
		if isCommandNotFound(err) {
			return enhanceError(err, name)
		}
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		// Try graceful shutdown first
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
		<-errCh
		return fmt.Errorf("%s cancelled: %w", name, ctx.Err())
	case err := <-errCh:
		if err != nil {
			if isCommandNotFound(err) {
				return enhanceError(err, name)
			}
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return &ExitError{Name: name, Code: exitErr.ExitCode(), Err: err}
			}
			return fmt.Errorf("%s failed: %w", name, err)
		}
		return nil
	}
}

// RunWithSpinner runs a command in dir with a progress spinner instead
// of streamed output.
func (e *Executor) RunWithSpinner(ctx context.Context, message, dir, name string, args ...string) error {
	// Create pipes to swallow output while the spinner owns the screen
	stdoutPipe, stdoutWriter := io.Pipe()
	stderrPipe, stderrWriter := io.Pipe()

	piped := &Executor{
		stdout:      stdoutWriter,
		stderr:      stderrWriter,
		env:         e.env,
		commandFunc: e.commandFunc,
	}

	done := make(chan error, 1)
	go func() {
		err := piped.Run(ctx, dir, name, args...)
		stdoutWriter.Close()
		stderrWriter.Close()
		done <- err
	}()

	m := newSpinnerModel(message)
	p := tea.NewProgram(m, tea.WithOutput(e.stderr))

	go func() {
		if _, err := p.Run(); err != nil {
			// Silently ignore spinner errors
			_ = err
		}
	}()

	go io.Copy(io.Discard, stdoutPipe)
	go io.Copy(io.Discard, stderrPipe)

	err := <-done

	if err != nil {
		p.Send(spinnerDoneMsg{err: err})
	} else {
		p.Send(spinnerDoneMsg{})
	}

	// Give spinner time to render final state
	time.Sleep(50 * time.Millisecond)
	p.Quit()

	return err
}

// spinnerModel is the bubbletea model for the spinner
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}

// isCommandNotFound checks if an error indicates a command was not found
func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) ||
		strings.Contains(err.Error(), "executable file not found") ||
		strings.Contains(err.Error(), "command not found")
}

// enhanceError adds a helpful message for missing commands
func enhanceError(err error, cmd string) error {
	return fmt.Errorf("%w\n💡 Command '%s' not found. Please install it and try again", err, cmd)
}
