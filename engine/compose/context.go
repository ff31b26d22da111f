package compose

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/podded/podded/pkg/logger"
	"github.com/spf13/afero"
)

// ContainerfileName is the only file placed in a build context.
const ContainerfileName = "Containerfile"

// WithBuildContext writes content into a fresh temporary directory as its
// Containerfile, calls fn with the directory and removes it afterwards,
// whatever fn returns.
func WithBuildContext(ctx context.Context, fs afero.Fs, content string, fn func(dir string) error) (err error) {
	dir, err := afero.TempDir(fs, "", "podded_")
	if err != nil {
		return fmt.Errorf("failed to create build context: %w", err)
	}
	log := logger.FromContext(ctx)
	defer func() {
		if rmErr := fs.RemoveAll(dir); rmErr != nil {
			log.Warn("Failed to remove build context", "dir", dir, "error", rmErr)
			if err == nil {
				err = fmt.Errorf("failed to remove build context: %w", rmErr)
			}
		}
	}()
	if err := afero.WriteFile(fs, filepath.Join(dir, ContainerfileName), []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ContainerfileName, err)
	}
	log.Debug("Created build context", "dir", dir)
	return fn(dir)
}
