package uc

import (
	"context"
	"strings"
	"testing"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/slot"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint_Execute(t *testing.T) {
	ctx := context.Background()
	text := documentText(t, map[string]slot.Value{
		slot.Build:   slot.Text("FROM alpine\nRUN true\n"),
		slot.Command: slot.List("-p", "80:80", "img"),
	})
	cases := map[string]string{
		"tag":             "web\n",
		"LOCK":            "false\n",
		"build":           "FROM alpine\nRUN true\n",
		"Command":         "-p 80:80 img\n",
		"quadlet_dir":     "/home/u/.config/containers/systemd\n",
		"build_command":   "podman build --tag web '<temp-Containerfile-dir>'\n",
		"run_command":     "podman run --detach --name web -p 80:80 img\n",
		"stop_command":    "podman stop web\n",
		"exec_command":    "podman exec -it web sh\n",
		"podlet_fallback": "podman run --rm ghcr.io/containers/podlet --install podman run --detach --name web -p 80:80 img\n",
	}
	for name, want := range cases {
		t.Run("Should print the "+name+" view", func(t *testing.T) {
			f := setup(t, text)
			require.NoError(t, NewPrint(f.deps).Execute(ctx, &PrintInput{Path: docPath, Slot: name}))
			assert.Equal(t, want, f.out.String())
		})
	}
	t.Run("Should list every slot", func(t *testing.T) {
		f := setup(t, text)
		require.NoError(t, NewPrint(f.deps).Execute(ctx, &PrintInput{Path: docPath}))
		out := f.out.String()
		assert.True(t, strings.HasPrefix(out, "LOCK = false\nBUILD = \"\"\"\nFROM alpine\nRUN true\n\"\"\"\n"))
		assert.Contains(t, out, "TAG = \"web\"\n")
		assert.Contains(t, out, "PODLET_FALLBACK = [")
	})
	t.Run("Should report an unknown slot without failing hard", func(t *testing.T) {
		f := setup(t, text)
		err := NewPrint(f.deps).Execute(ctx, &PrintInput{Path: docPath, Slot: "CONTAINERFILE"})
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.Empty(t, f.out.String())
		assert.Equal(t, text, f.text(t))
	})
}

func TestCopy_Execute(t *testing.T) {
	ctx := context.Background()
	t.Run("Should write an unlocked copy with a tag of its own", func(t *testing.T) {
		text := lockedText(t)
		f := setup(t, text)
		require.NoError(t, NewCopy(f.deps).Execute(ctx, &CopyInput{Path: docPath, Dest: "/srv/web.prod"}))
		assert.Equal(t, text, f.text(t))
		copied, err := f.deps.Store.Load(ctx, "/srv/web.prod")
		require.NoError(t, err)
		assert.False(t, copied.Locked())
		assert.Equal(t, []string{"img"}, copied.MustValue(slot.Command).Items())
		assert.Equal(t, "FROM alpine\n", copied.MustValue(slot.Build).Str())
		assert.EqualValues(t, script.DefaultMode, copied.Mode)
		assert.Contains(t, f.out.String(), "Wrote unlocked copy to '/srv/web.prod'")
		f.out.Reset()
		require.NoError(t, NewPrint(f.deps).Execute(ctx, &PrintInput{Path: "/srv/web.prod", Slot: "TAG"}))
		assert.Equal(t, "web.prod\n", f.out.String())
	})
	t.Run("Should write a reset copy", func(t *testing.T) {
		f := setup(t, lockedText(t))
		require.NoError(t, NewCopy(f.deps).Execute(ctx, &CopyInput{Path: docPath, Dest: "/srv/fresh", Reset: true}))
		data, err := afero.ReadFile(f.fs, "/srv/fresh")
		require.NoError(t, err)
		assert.Equal(t, documentText(t, nil), string(data))
	})
	t.Run("Should refuse an existing destination", func(t *testing.T) {
		f := setup(t, documentText(t, nil))
		require.NoError(t, afero.WriteFile(f.fs, "/srv/taken", []byte("keep"), 0o644))
		err := NewCopy(f.deps).Execute(ctx, &CopyInput{Path: docPath, Dest: "/srv/taken"})
		assert.ErrorIs(t, err, core.ErrArgument)
		data, _ := afero.ReadFile(f.fs, "/srv/taken")
		assert.Equal(t, "keep", string(data))
	})
}

func TestInit_Execute(t *testing.T) {
	t.Run("Should write the template", func(t *testing.T) {
		ctx := context.Background()
		f := setup(t, documentText(t, nil))
		require.NoError(t, NewInit(f.deps).Execute(ctx, &InitInput{Dest: "/srv/new"}))
		data, err := afero.ReadFile(f.fs, "/srv/new")
		require.NoError(t, err)
		assert.Equal(t, script.Template(), string(data))
		assert.ErrorIs(t, NewInit(f.deps).Execute(ctx, &InitInput{Dest: "/srv/new"}), core.ErrArgument)
	})
}
