package quadlet

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/podded/podded/engine/compose"
	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/runtime"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/slot"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const unit = "[Container]\nImage=img\n"

type fixture struct {
	fs      afero.Fs
	runner  *runtime.MockRunner
	out     *bytes.Buffer
	service *Service
	c       *compose.Composer
}

func setup(t *testing.T, command ...string) *fixture {
	t.Helper()
	doc, err := script.NewDocument(slot.Default(), "/srv/web", "LOCK = false\nBUILD = \"\"\nCOMMAND = []\n", 0)
	require.NoError(t, err)
	if len(command) > 0 {
		doc, _, err = script.Set(doc, slot.Command, slot.List(command...))
		require.NoError(t, err)
	}
	f := &fixture{fs: afero.NewMemMapFs(), runner: runtime.NewMockRunner(), out: &bytes.Buffer{}, c: compose.New(doc)}
	f.service = NewService(f.fs, f.runner, runtime.Stdio{Out: f.out}, Settings{
		Dir:     "/home/u/.config/containers/systemd",
		Runtime: "podman",
		Manager: compose.DefaultServiceManager,
	})
	return f
}

func TestResolveDir(t *testing.T) {
	t.Run("Should prefer the document, then the configuration", func(t *testing.T) {
		assert.Equal(t, "/a", ResolveDir("/a", "/b", "/home/u"))
		assert.Equal(t, "/b", ResolveDir("", "/b", "/home/u"))
		assert.Equal(t, "/home/u/.config/containers/systemd", ResolveDir("", "", "/home/u"))
	})
	t.Run("Should expand the home directory", func(t *testing.T) {
		assert.Equal(t, "/home/u/units", ResolveDir("~/units", "", "/home/u"))
	})
}

func TestService_Enable(t *testing.T) {
	ctx := context.Background()
	t.Run("Should install the unit and start the service", func(t *testing.T) {
		f := setup(t, "img")
		f.runner.On("LookPath", "podlet").Return("/usr/bin/podlet", nil)
		f.runner.On("Output", ctx, []string{"podlet", "--install", "podman", "run", "--detach", "--name", "web", "img"}).
			Return(unit, nil)
		f.runner.On("Run", ctx, []string{"systemctl", "--user", "daemon-reload"}, mock.Anything).Return(nil).Once()
		f.runner.On("Run", ctx, []string{"systemctl", "--user", "start", "web"}, mock.Anything).Return(nil).Once()
		require.NoError(t, f.service.Enable(ctx, f.c))
		data, err := afero.ReadFile(f.fs, "/home/u/.config/containers/systemd/web.container")
		require.NoError(t, err)
		assert.Equal(t, unit, string(data))
		assert.Contains(t, f.out.String(), "podlet --install podman run --detach --name web img\n")
		assert.Contains(t, f.out.String(), "systemctl --user start web\n")
		f.runner.AssertExpectations(t)
	})
	t.Run("Should fall back to the podlet container", func(t *testing.T) {
		f := setup(t, "img")
		f.runner.On("LookPath", "podlet").Return("", errors.New("not found"))
		f.runner.On("Output", ctx, mock.MatchedBy(func(argv []string) bool {
			return len(argv) > 4 && argv[3] == "ghcr.io/containers/podlet"
		})).Return(unit, nil)
		f.runner.On("Run", ctx, mock.Anything, mock.Anything).Return(nil)
		require.NoError(t, f.service.Enable(ctx, f.c))
		f.runner.AssertExpectations(t)
	})
	t.Run("Should launch nothing without a stored command", func(t *testing.T) {
		f := setup(t)
		err := f.service.Enable(ctx, f.c)
		assert.ErrorIs(t, err, core.ErrMissingConfig)
		f.runner.AssertNotCalled(t, "Output", mock.Anything, mock.Anything)
	})
	t.Run("Should stop when podlet fails", func(t *testing.T) {
		f := setup(t, "img")
		f.runner.On("LookPath", "podlet").Return("/usr/bin/podlet", nil)
		f.runner.On("Output", ctx, mock.Anything).Return("", &core.ExternalProcessError{Argv: []string{"podlet"}, ExitCode: 2})
		err := f.service.Enable(ctx, f.c)
		assert.ErrorIs(t, err, core.ErrExternalProcess)
		exists, _ := afero.Exists(f.fs, f.service.UnitPath("web"))
		assert.False(t, exists)
		f.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Disable(t *testing.T) {
	ctx := context.Background()
	t.Run("Should do nothing without an installed unit", func(t *testing.T) {
		f := setup(t, "img")
		require.NoError(t, f.service.Disable(ctx, f.c))
		assert.Contains(t, f.out.String(), "nothing to disable")
		f.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	})
	t.Run("Should stop, remove and reload", func(t *testing.T) {
		f := setup(t, "img")
		require.NoError(t, afero.WriteFile(f.fs, f.service.UnitPath("web"), []byte(unit), 0o644))
		f.runner.On("Run", ctx, []string{"systemctl", "--user", "stop", "web"}, mock.Anything).Return(nil).Once()
		f.runner.On("Run", ctx, []string{"systemctl", "--user", "daemon-reload"}, mock.Anything).Return(nil).Once()
		require.NoError(t, f.service.Disable(ctx, f.c))
		exists, _ := afero.Exists(f.fs, f.service.UnitPath("web"))
		assert.False(t, exists)
		f.runner.AssertExpectations(t)
	})
}

func TestService_Quadlet(t *testing.T) {
	t.Run("Should print the unit without installing it", func(t *testing.T) {
		ctx := context.Background()
		f := setup(t, "img")
		f.runner.On("LookPath", "podlet").Return("/usr/bin/podlet", nil)
		f.runner.On("Output", ctx, mock.Anything).Return(unit, nil)
		require.NoError(t, f.service.Quadlet(ctx, f.c))
		assert.Contains(t, f.out.String(), unit)
		exists, _ := afero.DirExists(f.fs, "/home/u/.config/containers/systemd")
		assert.False(t, exists)
	})
}

func TestService_Status(t *testing.T) {
	ctx := context.Background()
	inspect := `[{"Id":"0123456789abcdef","ImageName":"localhost/web:latest",
		"State":{"Status":"running","Running":true,"StartedAt":"2026-10-19T10:00:00Z","ExitCode":0}}]`
	t.Run("Should show the container and the service", func(t *testing.T) {
		f := setup(t, "img")
		f.runner.On("Output", ctx, []string{"podman", "container", "inspect", "web"}).Return(inspect, nil)
		f.runner.On("Run", ctx, []string{"systemctl", "--user", "status", "web"}, mock.Anything).Return(nil)
		require.NoError(t, f.service.Status(ctx, f.c))
		assert.Contains(t, f.out.String(), "Container web: 0123456789ab (running) running since 2026-10-19T10:00:00Z")
		f.runner.AssertExpectations(t)
	})
	t.Run("Should report a missing container and still query the service", func(t *testing.T) {
		f := setup(t, "img")
		f.runner.On("Output", ctx, mock.Anything).Return("", &core.ExternalProcessError{ExitCode: 125})
		f.runner.On("Run", ctx, mock.Anything, mock.Anything).Return(&core.ExternalProcessError{ExitCode: 4})
		err := f.service.Status(ctx, f.c)
		assert.ErrorIs(t, err, core.ErrExternalProcess)
		assert.Contains(t, f.out.String(), "Container web: no container")
	})
}

func TestParseInspect(t *testing.T) {
	t.Run("Should read exited containers", func(t *testing.T) {
		st, ok := ParseInspect(`[{"Id":"abc","Config":{"Image":"img"},"State":{"Status":"exited","ExitCode":137}}]`)
		require.True(t, ok)
		assert.Equal(t, "abc exited with 137, image img", st.String())
	})
	t.Run("Should reject empty or invalid output", func(t *testing.T) {
		_, ok := ParseInspect(`[]`)
		assert.False(t, ok)
		_, ok = ParseInspect(`not json`)
		assert.False(t, ok)
	})
}
