// Package runtime launches the external programs podded drives: the
// container runtime, the service manager, podlet and the user's editor.
package runtime

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

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/pkg/logger"
)

// interruptGrace is how long a cancelled process may take to exit after
// SIGINT before it is killed.
const interruptGrace = 10 * time.Second

// Stdio are the streams handed to a launched process.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Terminal forwards the streams of the podded process.
func Terminal() Stdio {
	return Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Runner launches argument lists. No argument is interpreted by a shell.
type Runner interface {
	// Run blocks until the process exits. A non-zero exit is an
	// ExternalProcessError.
	Run(ctx context.Context, argv []string, stdio Stdio) error
	// Output runs the process and returns its standard output.
	Output(ctx context.Context, argv []string) (string, error)
	LookPath(name string) (string, error)
}

type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) command(ctx context.Context, argv []string) (*exec.Cmd, error) {
	if len(argv) == 0 {
		return nil, core.NewArgumentError("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	// interactive sessions get the same interrupt a terminal would send
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = interruptGrace
	return cmd, nil
}

func (r *ExecRunner) Run(ctx context.Context, argv []string, stdio Stdio) error {
	cmd, err := r.command(ctx, argv)
	if err != nil {
		return err
	}
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err
	log := logger.FromContext(ctx)
	log.Debug("Launching process", "argv", argv)
	start := time.Now()
	err = cmd.Run()
	log.Debug("Process finished", "argv0", argv[0], "duration", time.Since(start), "error", err)
	return processError(argv, err, "")
}

func (r *ExecRunner) Output(ctx context.Context, argv []string) (string, error) {
	cmd, err := r.command(ctx, argv)
	if err != nil {
		return "", err
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	logger.FromContext(ctx).Debug("Capturing process output", "argv", argv)
	if err := cmd.Run(); err != nil {
		return stdout.String(), processError(argv, err, stderr.String())
	}
	return stdout.String(), nil
}

func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func processError(argv []string, err error, stderr string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		var cause error
		if msg := strings.TrimSpace(stderr); msg != "" {
			cause = errors.New(msg)
		}
		return &core.ExternalProcessError{Argv: argv, ExitCode: exitErr.ExitCode(), Cause: cause}
	}
	return &core.ExternalProcessError{Argv: argv, ExitCode: -1, Cause: fmt.Errorf("failed to launch: %w", err)}
}
