// Package quadlet installs a document's run command as a systemd service
// through a podlet generated quadlet unit.
package quadlet

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/podded/podded/engine/compose"
	"github.com/podded/podded/engine/runtime"
	"github.com/podded/podded/pkg/logger"
	"github.com/spf13/afero"
)

// UnitExtension is the suffix quadlet expects for container units.
const UnitExtension = ".container"

// DefaultDir is the per-user quadlet directory relative to $HOME.
var DefaultDir = filepath.Join(".config", "containers", "systemd")

// Settings configures the service flows.
type Settings struct {
	// Dir receives the unit files.
	Dir     string
	Runtime string
	Manager compose.ServiceManager
}

// ResolveDir picks the quadlet directory: the document's QUADLET_DIR, then
// the configured directory, then ~/.config/containers/systemd.
func ResolveDir(fromDocument, configured, home string) string {
	for _, dir := range []string{fromDocument, configured} {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if dir == "~" {
			return home
		}
		if strings.HasPrefix(dir, "~/") {
			return filepath.Join(home, dir[2:])
		}
		return dir
	}
	return filepath.Join(home, DefaultDir)
}

// Service runs the enable, disable, status and quadlet flows.
type Service struct {
	fs       afero.Fs
	runner   runtime.Runner
	out      io.Writer
	stdio    runtime.Stdio
	settings Settings
}

func NewService(fs afero.Fs, runner runtime.Runner, stdio runtime.Stdio, settings Settings) *Service {
	return &Service{fs: fs, runner: runner, out: stdio.Out, stdio: stdio, settings: settings}
}

// UnitPath is where the unit of tag is installed.
func (s *Service) UnitPath(tag string) string {
	return filepath.Join(s.settings.Dir, tag+UnitExtension)
}

// Generate runs podlet, or its container when podlet is not on PATH, and
// returns the generated unit.
func (s *Service) Generate(ctx context.Context, c *compose.Composer) (string, error) {
	argv, err := c.Podlet(false)
	if err != nil {
		return "", err
	}
	if _, lookErr := s.runner.LookPath(argv[0]); lookErr != nil {
		logger.FromContext(ctx).Debug("podlet not found, using container", "binary", argv[0])
		if argv, err = c.Podlet(true); err != nil {
			return "", err
		}
	}
	unit, err := runtime.AnnounceOutput(ctx, s.runner, s.out, argv)
	if err != nil {
		return "", err
	}
	return unit, nil
}

// Quadlet prints the generated unit without installing it.
func (s *Service) Quadlet(ctx context.Context, c *compose.Composer) error {
	unit, err := s.Generate(ctx, c)
	if err != nil {
		return err
	}
	_, err = io.WriteString(s.out, unit)
	return err
}

// Enable installs the unit, reloads the service manager and starts the
// service.
func (s *Service) Enable(ctx context.Context, c *compose.Composer) error {
	unit, err := s.Generate(ctx, c)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.settings.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.settings.Dir, err)
	}
	path := s.UnitPath(c.Tag())
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	suffix := ""
	if exists {
		suffix = " (overwriting existing quadlet)"
	}
	fmt.Fprintf(s.out, "Writing quadlet to '%s'%s\n", path, suffix)
	if err := afero.WriteFile(s.fs, path, []byte(unit), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	m := s.settings.Manager
	if err := runtime.Announce(ctx, s.runner, s.out, m.DaemonReload(), s.stdio); err != nil {
		return err
	}
	if err := runtime.Announce(ctx, s.runner, s.out, m.Start(c.Tag()), s.stdio); err != nil {
		return err
	}
	if m.Scope != "system" {
		fmt.Fprintln(s.out, "INFO: run 'loginctl enable-linger' to start the service on boot instead of on login")
	}
	return nil
}

// Disable stops the service and removes its unit. A missing unit is not an
// error.
func (s *Service) Disable(ctx context.Context, c *compose.Composer) error {
	path := s.UnitPath(c.Tag())
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	if !exists {
		fmt.Fprintf(s.out, "File %s not currently at '%s', nothing to disable\n", filepath.Base(path), s.settings.Dir)
		return nil
	}
	m := s.settings.Manager
	if err := runtime.Announce(ctx, s.runner, s.out, m.Stop(c.Tag()), s.stdio); err != nil {
		return err
	}
	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	fmt.Fprintf(s.out, "Deleted '%s'\n", path)
	return runtime.Announce(ctx, s.runner, s.out, m.DaemonReload(), s.stdio)
}
