package uc

import (
	"context"

	"github.com/podded/podded/engine/compose"
	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/slot"
)

type BuildInput struct {
	Path string
	// Source is a Containerfile to save into BUILD first.
	Source string
	// SaveOnly stores Source without building.
	SaveOnly bool
}

// Build saves and/or builds the stored Containerfile.
type Build struct {
	deps *Deps
}

func NewBuild(deps *Deps) *Build {
	return &Build{deps: deps}
}

func (uc *Build) Execute(ctx context.Context, in *BuildInput) error {
	if in.SaveOnly && in.Source == "" {
		return core.NewArgumentError("Expected 1 argument PATH, got 0")
	}
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	if in.Source != "" {
		if err := lockedFor(doc, "build"); err != nil {
			return err
		}
		content, err := uc.deps.Store.ReadFile(uc.deps.Store.Abs(in.Source))
		if err != nil {
			return err
		}
		if doc, err = uc.deps.commit(ctx, doc, change{slot.Build, slot.Text(content)}); err != nil {
			return err
		}
	}
	if in.SaveOnly {
		return nil
	}
	return build(ctx, uc.deps, compose.New(doc))
}

// build runs the build template inside a fresh context directory holding
// only the Containerfile.
func build(ctx context.Context, deps *Deps, c *compose.Composer) error {
	content, err := c.Containerfile()
	if err != nil {
		return err
	}
	return compose.WithBuildContext(ctx, deps.Store.Fs(), content, func(dir string) error {
		argv, err := c.Build(dir)
		if err != nil {
			return err
		}
		return deps.announce(ctx, argv)
	})
}
