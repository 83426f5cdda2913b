// Package runner executes fastcraft's external collaborators (gh,
// mkdocs, quality tools) as subprocesses. Their exit codes are
// surfaced verbatim; fastcraft never reinterprets a tool's result.
package runner

import (
	"context"
	"io"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"fastcraft/internal/fcerrors"
)

// ErrNotInstalled wraps exec.ErrNotFound with an install hint.
var ErrNotInstalled = fcerrors.New("required tool is not installed")

// Command describes one external tool invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory; empty means the current one.
	Dir string

	// Stdin is optional input piped to the tool.
	Stdin io.Reader
}

// Display returns the shell-quoted form of the invocation, used for
// verbose echo lines.
func (c Command) Display() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// LookPath checks that the tool exists before any work begins.
func LookPath(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fcerrors.WithHintf(
			fcerrors.Wrapf(ErrNotInstalled, "%s not found in PATH", name),
			"install %s and re-run", name)
	}
	return nil
}

// Run executes the command, streaming its output to the given writers,
// and returns the tool's exit code. A non-zero exit is not an error
// here; spawn failures are.
func Run(ctx context.Context, c Command, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if fcerrors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fcerrors.Wrapf(err, "running %s", c.Name)
}
