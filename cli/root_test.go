package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/runtime"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/slot"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const docPath = "/srv/web"

type fixture struct {
	app      *App
	fs       afero.Fs
	runner   *runtime.MockRunner
	prompter *runtime.MockPrompter
	out      *bytes.Buffer
	errOut   *bytes.Buffer
}

func setup(t *testing.T, values map[string]slot.Value) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	doc, err := script.NewDocument(slot.Default(), docPath, script.Template(), 0)
	require.NoError(t, err)
	for _, name := range []string{slot.Build, slot.Command, slot.Lock} {
		if value, ok := values[name]; ok {
			doc, _, err = script.Set(doc, name, value)
			require.NoError(t, err)
		}
	}
	require.NoError(t, afero.WriteFile(fs, docPath, []byte(doc.Text), 0o755))
	f := &fixture{
		fs:       fs,
		runner:   runtime.NewMockRunner(),
		prompter: &runtime.MockPrompter{},
		out:      &bytes.Buffer{},
		errOut:   &bytes.Buffer{},
	}
	f.app = &App{
		Fs:       fs,
		Stdio:    runtime.Stdio{In: strings.NewReader(""), Out: f.out, Err: f.errOut},
		Runner:   f.runner,
		Editor:   &runtime.MockEditor{},
		Prompter: f.prompter,
		Getenv:   func(string) string { return "" },
		Home:     "/home/u",
	}
	return f
}

func (f *fixture) run(args ...string) int {
	return f.app.Run(context.Background(), args)
}

func (f *fixture) text(t *testing.T) string {
	t.Helper()
	data, err := afero.ReadFile(f.fs, docPath)
	require.NoError(t, err)
	return string(data)
}

func TestApp_Route(t *testing.T) {
	t.Run("Should split the document from the command", func(t *testing.T) {
		app := &App{}
		app.init()
		args, err := app.route([]string{"--log-level", "debug", docPath, "--color", "never", "RUN", "-p", "80:80"})
		require.NoError(t, err)
		assert.Equal(t, []string{"run", "-p", "80:80"}, args)
		assert.Equal(t, docPath, app.document)
		assert.Equal(t, map[string]any{"log-level": "debug", "color": "never"}, app.changedFlags())
	})
	t.Run("Should recognize commands without a document", func(t *testing.T) {
		app := &App{}
		app.init()
		args, err := app.route([]string{"init", "/srv/new"})
		require.NoError(t, err)
		assert.Equal(t, []string{"init", "/srv/new"}, args)
		assert.Empty(t, app.document)
	})
	t.Run("Should fall back to help", func(t *testing.T) {
		for _, in := range [][]string{{}, {docPath}, {"--help"}, {docPath, "-h"}} {
			app := &App{}
			app.init()
			args, err := app.route(in)
			require.NoError(t, err)
			assert.Equal(t, []string{"help"}, args, in)
		}
	})
	t.Run("Should reject unknown global flags", func(t *testing.T) {
		app := &App{}
		app.init()
		_, err := app.route([]string{"--bogus", docPath, "run"})
		assert.ErrorIs(t, err, core.ErrArgument)
	})
}

func TestApp_Run(t *testing.T) {
	t.Run("Should save and run a command", func(t *testing.T) {
		f := setup(t, nil)
		f.runner.On("Run", mock.Anything, []string{"podman", "run", "--detach", "--name", "web", "-p", "80:80", "img"}, mock.Anything).
			Return(nil)
		code := f.run(docPath, "run", "-p", "80:80", "img")
		assert.Equal(t, 0, code, f.errOut.String())
		assert.Contains(t, f.text(t), `COMMAND = ["-p", "80:80", "img"]`)
		assert.Contains(t, f.out.String(), "COMMAND block changed:")
		f.runner.AssertExpectations(t)
	})
	t.Run("Should print help without arguments", func(t *testing.T) {
		f := setup(t, nil)
		assert.Equal(t, 0, f.run())
		assert.Contains(t, f.out.String(), "podded DOCUMENT COMMAND")
		assert.Contains(t, f.out.String(), "container runtime binary used by status")
	})
	t.Run("Should print the binary version without a document", func(t *testing.T) {
		f := setup(t, nil)
		assert.Equal(t, 0, f.run("version"))
		assert.Equal(t, "podded 1.0.0\n", f.out.String())
	})
	t.Run("Should write a new document", func(t *testing.T) {
		f := setup(t, nil)
		assert.Equal(t, 0, f.run("init", "/srv/other"), f.errOut.String())
		data, err := afero.ReadFile(f.fs, "/srv/other")
		require.NoError(t, err)
		assert.Equal(t, script.Template(), string(data))
	})
	t.Run("Should apply global flags given after the document", func(t *testing.T) {
		f := setup(t, nil)
		assert.Equal(t, 0, f.run(docPath, "--quadlet-dir", "/units", "print", "QUADLET_DIR"), f.errOut.String())
		assert.Equal(t, "/units\n", f.out.String())
	})
	t.Run("Should read the configuration file", func(t *testing.T) {
		f := setup(t, nil)
		require.NoError(t, afero.WriteFile(f.fs, "/etc/podded.yaml", []byte("quadlet:\n  dir: /from-file\n"), 0o644))
		assert.Equal(t, 0, f.run("--config", "/etc/podded.yaml", docPath, "print", "quadlet_dir"), f.errOut.String())
		assert.Equal(t, "/from-file\n", f.out.String())
	})
}

func TestApp_Errors(t *testing.T) {
	t.Run("Should reject unknown commands", func(t *testing.T) {
		f := setup(t, nil)
		assert.Equal(t, 1, f.run(docPath, "bogus"))
		assert.Equal(t, "INVALID ARGUMENT: Unknown command: bogus\n", f.errOut.String())
	})
	t.Run("Should reject surplus arguments", func(t *testing.T) {
		f := setup(t, nil)
		assert.Equal(t, 1, f.run(docPath, "attach", "now"))
		assert.Contains(t, f.errOut.String(), "INVALID ARGUMENT:")
	})
	t.Run("Should reject an invalid configuration", func(t *testing.T) {
		f := setup(t, nil)
		assert.Equal(t, 1, f.run("--color", "sometimes", docPath, "print"))
		assert.Contains(t, f.errOut.String(), "INVALID ARGUMENT: invalid configuration")
	})
	t.Run("Should exit with 2 on a locked document", func(t *testing.T) {
		f := setup(t, map[string]slot.Value{slot.Lock: slot.Bool(true)})
		before := f.text(t)
		assert.Equal(t, 2, f.run(docPath, "command", "img"))
		assert.True(t, strings.HasPrefix(f.errOut.String(), "LOCKED: "))
		assert.Equal(t, before, f.text(t))
	})
	t.Run("Should exit with 4 without a stored command", func(t *testing.T) {
		f := setup(t, nil)
		assert.Equal(t, 4, f.run(docPath, "run"))
		assert.Contains(t, f.errOut.String(), "MISSING: ")
		f.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	})
	t.Run("Should exit with 0 on an unknown variable", func(t *testing.T) {
		f := setup(t, nil)
		assert.Equal(t, 0, f.run(docPath, "print", "NOPE"))
		assert.Contains(t, f.errOut.String(), "NOT FOUND: ")
	})
	t.Run("Should exit with 3 when the runtime fails", func(t *testing.T) {
		f := setup(t, map[string]slot.Value{slot.Command: slot.List("img")})
		f.runner.On("Run", mock.Anything, mock.Anything, mock.Anything).
			Return(&core.ExternalProcessError{Argv: []string{"podman", "stop", "web"}, ExitCode: 125})
		assert.Equal(t, 3, f.run(docPath, "stop"))
		assert.Equal(t, "SUBPROCESS exited with 125: podman stop web\n", f.errOut.String())
	})
	t.Run("Should reject a malformed stop timeout", func(t *testing.T) {
		f := setup(t, nil)
		assert.Equal(t, 1, f.run(docPath, "stop", "soon"))
		f.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	})
}
