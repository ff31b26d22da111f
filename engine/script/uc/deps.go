// Package uc holds one use case per podded command. Every use case loads the
// document once, passes the lock gate before planning any patch, prints the
// diff of every slot it changes, writes at most once and then launches at
// most one external flow.
package uc

import (
	"context"
	"fmt"
	"io"

	"github.com/podded/podded/engine/compose"
	"github.com/podded/podded/engine/lock"
	"github.com/podded/podded/engine/quadlet"
	"github.com/podded/podded/engine/runtime"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/slot"
	"github.com/podded/podded/engine/update"
	"github.com/podded/podded/pkg/logger"
)

// Deps are the collaborators shared by all use cases.
type Deps struct {
	Store    *script.Store
	Runner   runtime.Runner
	Editor   runtime.Editor
	Prompter runtime.Prompter
	Updater  *update.Updater
	Stdio    runtime.Stdio

	// RuntimeBinary inspects containers for status.
	RuntimeBinary string
	Manager       compose.ServiceManager
	// QuadletDir is the configured unit directory, used when the document
	// has no QUADLET_DIR.
	QuadletDir string
	Home       string
	// Version is the binary version reported by `version`.
	Version string
	// RenderDiff formats a slot diff; Diff.String when nil.
	RenderDiff func(*script.Diff) string
}

// DocumentInput addresses the document an operation works on.
type DocumentInput struct {
	Path string
}

type change struct {
	name  string
	value slot.Value
}

func (d *Deps) out() io.Writer {
	if d.Stdio.Out == nil {
		return io.Discard
	}
	return d.Stdio.Out
}

func (d *Deps) load(ctx context.Context, path string) (*script.Document, error) {
	if path == "" {
		return nil, ErrNoDocument
	}
	return d.Store.Load(ctx, d.Store.Abs(path))
}

// mutate gates doc for operation and then commits changes.
func (d *Deps) mutate(ctx context.Context, doc *script.Document, operation string, changes ...change) (*script.Document, error) {
	if err := lock.Guard(doc, operation); err != nil {
		return nil, err
	}
	return d.commit(ctx, doc, changes...)
}

// commit applies changes in order, prints their diffs and writes the result
// once when anything changed. Callers must have passed the gate.
func (d *Deps) commit(ctx context.Context, doc *script.Document, changes ...change) (*script.Document, error) {
	next, diffs, err := plan(doc, changes...)
	if err != nil {
		return nil, err
	}
	d.printDiffs(diffs)
	if !diffs.Changed() {
		return doc, nil
	}
	if err := d.Store.Write(ctx, next); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug("Document updated", "path", next.Path, "slots", len(changes))
	return next, nil
}

func plan(doc *script.Document, changes ...change) (*script.Document, script.Diffs, error) {
	next := doc
	diffs := make(script.Diffs, 0, len(changes))
	for _, c := range changes {
		var (
			diff *script.Diff
			err  error
		)
		if next, diff, err = script.Set(next, c.name, c.value); err != nil {
			return nil, nil, err
		}
		diffs = append(diffs, diff)
	}
	return next, diffs, nil
}

func (d *Deps) printDiffs(diffs script.Diffs) {
	render := d.RenderDiff
	if render == nil {
		render = (*script.Diff).String
	}
	for _, diff := range diffs {
		fmt.Fprintln(d.out(), render(diff))
	}
}

func (d *Deps) announce(ctx context.Context, argv []string) error {
	return runtime.Announce(ctx, d.Runner, d.out(), argv, d.Stdio)
}

func (d *Deps) quadletService(doc *script.Document) *quadlet.Service {
	dir := quadlet.ResolveDir(doc.MustValue(slot.QuadletDir).Str(), d.QuadletDir, d.Home)
	return quadlet.NewService(d.Store.Fs(), d.Runner, d.Stdio, quadlet.Settings{
		Dir:     dir,
		Runtime: d.RuntimeBinary,
		Manager: d.Manager,
	})
}
