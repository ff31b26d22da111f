package runtime

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/podded/podded/engine/core"
)

// FallbackEditor is used when neither the configuration nor the
// environment names an editor.
const FallbackEditor = "vi"

// Editor opens a file for the user and returns once it is closed.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// CommandEditor launches an editor command line with the file appended.
type CommandEditor struct {
	command string
	runner  Runner
	stdio   Stdio
	getenv  func(string) string
}

// NewEditor resolves the editor from command, then $VISUAL, then $EDITOR.
func NewEditor(command string, runner Runner, stdio Stdio) *CommandEditor {
	return &CommandEditor{command: command, runner: runner, stdio: stdio, getenv: os.Getenv}
}

// Argv returns the command line that edits path.
func (e *CommandEditor) Argv(path string) ([]string, error) {
	line := e.command
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if strings.TrimSpace(line) != "" {
			break
		}
		line = e.getenv(name)
	}
	if strings.TrimSpace(line) == "" {
		line = FallbackEditor
	}
	parts, err := shlex.Split(line)
	if err != nil {
		return nil, core.NewArgumentError("cannot parse editor command %q: %v", line, err)
	}
	if len(parts) == 0 {
		return nil, core.NewArgumentError("editor command %q is empty", line)
	}
	return append(parts, path), nil
}

func (e *CommandEditor) Edit(ctx context.Context, path string) error {
	argv, err := e.Argv(path)
	if err != nil {
		return err
	}
	if err := e.runner.Run(ctx, argv, e.stdio); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}
