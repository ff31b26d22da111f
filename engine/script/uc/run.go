package uc

import (
	"context"

	"github.com/podded/podded/engine/compose"
	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/slot"
)

type CommandInput struct {
	Path   string
	Tokens []string
}

// Command stores the run command tokens.
type Command struct {
	deps *Deps
}

func NewCommand(deps *Deps) *Command {
	return &Command{deps: deps}
}

func (uc *Command) Execute(ctx context.Context, in *CommandInput) error {
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	if err := lockedFor(doc, "command"); err != nil {
		return err
	}
	if len(in.Tokens) == 0 {
		return core.NewArgumentError("Expected at least 1 argument COMMAND*, got 0")
	}
	_, err = uc.deps.commit(ctx, doc, change{slot.Command, slot.List(in.Tokens...)})
	return err
}

type RunInput struct {
	Path string
	// Tokens replace the stored COMMAND before running when given.
	Tokens      []string
	Interactive bool
}

// Run starts the container with the stored or given command.
type Run struct {
	deps *Deps
}

func NewRun(deps *Deps) *Run {
	return &Run{deps: deps}
}

func (uc *Run) Execute(ctx context.Context, in *RunInput) error {
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	if len(in.Tokens) > 0 {
		if doc, err = uc.deps.mutate(ctx, doc, runOperation(in.Interactive), change{slot.Command, slot.List(in.Tokens...)}); err != nil {
			return err
		}
	}
	return run(ctx, uc.deps, compose.New(doc), in.Interactive)
}

func runOperation(interactive bool) string {
	if interactive {
		return "run-it"
	}
	return "run"
}

func run(ctx context.Context, deps *Deps, c *compose.Composer, interactive bool) error {
	argv, err := c.Run(interactive)
	if err != nil {
		return err
	}
	return deps.announce(ctx, argv)
}

type AllInput struct {
	Path        string
	Interactive bool
}

// All builds the stored Containerfile and then runs the stored command.
type All struct {
	deps *Deps
}

func NewAll(deps *Deps) *All {
	return &All{deps: deps}
}

func (uc *All) Execute(ctx context.Context, in *AllInput) error {
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	c := compose.New(doc)
	if err := ready(c); err != nil {
		return err
	}
	if err := build(ctx, uc.deps, c); err != nil {
		return err
	}
	return run(ctx, uc.deps, c, in.Interactive)
}

// ready checks both slots up front so a missing COMMAND does not surface
// after a finished build.
func ready(c *compose.Composer) error {
	if _, err := c.Containerfile(); err != nil {
		return err
	}
	_, err := c.Run(false)
	return err
}
