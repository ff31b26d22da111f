package script

import (
	"context"
	"testing"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/slot"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	setup := func(t *testing.T) (afero.Fs, *Store) {
		t.Helper()
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/work", 0o755))
		require.NoError(t, afero.WriteFile(fs, "/work/webserver.dev", []byte(sample), 0o750))
		return fs, NewStore(fs, slot.Default())
	}
	t.Run("Should load a document with its mode", func(t *testing.T) {
		_, store := setup(t)
		doc, err := store.Load(ctx, "/work/webserver.dev")
		require.NoError(t, err)
		assert.Equal(t, sample, doc.Text)
		assert.Equal(t, "/work/webserver.dev", doc.Path)
		assert.EqualValues(t, 0o750, doc.Mode)
	})
	t.Run("Should report a missing document as an argument error", func(t *testing.T) {
		_, store := setup(t)
		_, err := store.Load(ctx, "/work/missing")
		assert.ErrorIs(t, err, core.ErrArgument)
	})
	t.Run("Should replace the document and keep its mode", func(t *testing.T) {
		fs, store := setup(t)
		doc, err := store.Load(ctx, "/work/webserver.dev")
		require.NoError(t, err)
		next, _, err := Set(doc, slot.Command, slot.List("a"))
		require.NoError(t, err)
		require.NoError(t, store.Write(ctx, next))
		data, err := afero.ReadFile(fs, "/work/webserver.dev")
		require.NoError(t, err)
		assert.Equal(t, next.Text, string(data))
		info, err := fs.Stat("/work/webserver.dev")
		require.NoError(t, err)
		assert.EqualValues(t, 0o750, info.Mode().Perm())
	})
	t.Run("Should leave no temporary files behind", func(t *testing.T) {
		fs, store := setup(t)
		doc, err := store.Load(ctx, "/work/webserver.dev")
		require.NoError(t, err)
		require.NoError(t, store.Write(ctx, doc))
		entries, err := afero.ReadDir(fs, "/work")
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.Equal(t, []string{"webserver.dev"}, names)
	})
	t.Run("Should create an executable copy", func(t *testing.T) {
		fs, store := setup(t)
		doc, err := store.Load(ctx, "/work/webserver.dev")
		require.NoError(t, err)
		require.NoError(t, store.Create(ctx, doc.WithPath("/work/webserver.prod")))
		info, err := fs.Stat("/work/webserver.prod")
		require.NoError(t, err)
		assert.EqualValues(t, 0o755, info.Mode().Perm())
	})
	t.Run("Should refuse to overwrite an existing path", func(t *testing.T) {
		_, store := setup(t)
		doc, err := store.Load(ctx, "/work/webserver.dev")
		require.NoError(t, err)
		err = store.Create(ctx, doc)
		assert.ErrorIs(t, err, core.ErrArgument)
	})
	t.Run("Should refuse to read a directory as a Containerfile", func(t *testing.T) {
		_, store := setup(t)
		_, err := store.ReadFile("/work")
		assert.ErrorIs(t, err, core.ErrArgument)
	})
	t.Run("Should read a Containerfile", func(t *testing.T) {
		fs, store := setup(t)
		require.NoError(t, afero.WriteFile(fs, "/work/Containerfile", []byte("FROM img\nRUN true\n"), 0o644))
		content, err := store.ReadFile("/work/Containerfile")
		require.NoError(t, err)
		assert.Equal(t, "FROM img\nRUN true\n", content)
	})
	t.Run("Should refuse binary content", func(t *testing.T) {
		fs, store := setup(t)
		require.NoError(t, afero.WriteFile(fs, "/work/image.gz", []byte{0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00}, 0o644))
		_, err := store.ReadFile("/work/image.gz")
		assert.ErrorIs(t, err, core.ErrValidation)
	})
}
