// Package proc runs external host-tool commands with the user's terminal attached.
package proc

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

// Runner executes a command with an explicit argv.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands through os/exec. Output is streamed to the
// configured writers and Stdin is connected so host tools can prompt.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a Runner that inherits the process's standard streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes name with args. A non-zero exit is returned as an error.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s %s", name, strings.Join(args, " "))
	}
	return nil
}
