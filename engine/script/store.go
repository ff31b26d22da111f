package script

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/slot"
	"github.com/podded/podded/pkg/logger"
	"github.com/spf13/afero"
)

// Store reads and writes podded documents on a filesystem.
type Store struct {
	fs  afero.Fs
	reg *slot.Registry
}

func NewStore(fsys afero.Fs, reg *slot.Registry) *Store {
	if reg == nil {
		reg = slot.Default()
	}
	return &Store{fs: fsys, reg: reg}
}

func (s *Store) Fs() afero.Fs {
	return s.fs
}

func (s *Store) Registry() *slot.Registry {
	return s.reg
}

// Load reads and scans the document at path.
func (s *Store) Load(ctx context.Context, path string) (*Document, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, core.NewArgumentError("document %q does not exist", path)
		}
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}
	if info.IsDir() {
		return nil, core.NewArgumentError("document %q is a directory", path)
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	logger.FromContext(ctx).Debug("Loaded document", "path", path, "bytes", len(data))
	return NewDocument(s.reg, path, string(data), info.Mode().Perm())
}

// Parse scans text as if it had been read from path.
func (s *Store) Parse(path, text string) (*Document, error) {
	return NewDocument(s.reg, path, text, DefaultMode)
}

// Write replaces the document on disk. The text goes to a temporary file in
// the same directory which is synced, given the document's mode and renamed
// over the target, so readers see either the old or the new text.
func (s *Store) Write(ctx context.Context, doc *Document) error {
	dir, base := filepath.Split(doc.Path)
	if dir == "" {
		dir = "."
	}
	tmp, err := afero.TempFile(s.fs, dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = s.fs.Remove(tmpName)
		}
	}()
	if _, err := tmp.WriteString(doc.Text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	mode := doc.Mode
	if mode == 0 {
		mode = DefaultMode
	}
	if err := s.fs.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", tmpName, err)
	}
	if err := s.fs.Rename(tmpName, doc.Path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", doc.Path, err)
	}
	committed = true
	logger.FromContext(ctx).Debug("Wrote document", "path", doc.Path, "bytes", len(doc.Text))
	return nil
}

// Create writes doc to a path that must not exist yet, executable.
func (s *Store) Create(ctx context.Context, doc *Document) error {
	exists, err := afero.Exists(s.fs, doc.Path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", doc.Path, err)
	}
	if exists {
		return core.NewArgumentError("PATH %q does already exist", doc.Path)
	}
	created := *doc
	created.Mode = DefaultMode
	return s.Write(ctx, &created)
}

// ReadFile returns the content of a text file, e.g. a Containerfile to save
// into BUILD.
func (s *Store) ReadFile(path string) (string, error) {
	info, err := s.fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", core.NewArgumentError("PATH %q does not exist or is not a file", path)
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if mtype := mimetype.Detect(data); !isText(mtype) {
		return "", core.NewValidationError("", nil, "%s is not a text file (%s)", path, mtype)
	}
	return string(data), nil
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// Abs resolves path against the working directory on the OS filesystem; on
// other filesystems the path is returned cleaned.
func (s *Store) Abs(path string) string {
	if _, ok := s.fs.(*afero.OsFs); ok {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	}
	return filepath.Clean(path)
}
