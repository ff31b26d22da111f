package uc

import (
	"bytes"
	"context"
	"testing"

	"github.com/podded/podded/engine/compose"
	"github.com/podded/podded/engine/runtime"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/slot"
	"github.com/podded/podded/engine/update"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const docPath = "/srv/web"

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

type fixture struct {
	fs       afero.Fs
	runner   *runtime.MockRunner
	editor   *runtime.MockEditor
	prompter *runtime.MockPrompter
	fetcher  *mockFetcher
	out      *bytes.Buffer
	deps     *Deps
}

// documentText returns the template with the given slot values applied.
func documentText(t *testing.T, values map[string]slot.Value) string {
	t.Helper()
	doc, err := script.NewDocument(slot.Default(), docPath, script.Template(), 0)
	require.NoError(t, err)
	for _, name := range []string{slot.Build, slot.Command, slot.QuadletDir, slot.Lock} {
		value, ok := values[name]
		if !ok {
			continue
		}
		doc, _, err = script.Set(doc, name, value)
		require.NoError(t, err)
	}
	return doc.Text
}

func setup(t *testing.T, text string) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, docPath, []byte(text), 0o755))
	f := &fixture{
		fs:       fs,
		runner:   runtime.NewMockRunner(),
		editor:   &runtime.MockEditor{},
		prompter: &runtime.MockPrompter{},
		fetcher:  &mockFetcher{},
		out:      &bytes.Buffer{},
	}
	f.deps = &Deps{
		Store:         script.NewStore(fs, nil),
		Runner:        f.runner,
		Editor:        f.editor,
		Prompter:      f.prompter,
		Updater:       update.NewUpdater(f.fetcher, "https://example.test/template", nil),
		Stdio:         runtime.Stdio{Out: f.out},
		RuntimeBinary: "podman",
		Manager:       compose.DefaultServiceManager,
		Home:          "/home/u",
		Version:       "1.0.0",
	}
	return f
}

func (f *fixture) text(t *testing.T) string {
	t.Helper()
	data, err := afero.ReadFile(f.fs, docPath)
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) value(t *testing.T, name string) slot.Value {
	t.Helper()
	doc, err := f.deps.Store.Load(context.Background(), docPath)
	require.NoError(t, err)
	return doc.MustValue(name)
}
