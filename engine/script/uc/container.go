package uc

import (
	"context"

	"github.com/podded/podded/engine/compose"
)

type StopInput struct {
	Path string
	// Seconds is passed as --time; negative leaves the runtime default.
	Seconds int
}

// Stop stops the document's container.
type Stop struct {
	deps *Deps
}

func NewStop(deps *Deps) *Stop {
	return &Stop{deps: deps}
}

func (uc *Stop) Execute(ctx context.Context, in *StopInput) error {
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	return uc.deps.announce(ctx, compose.New(doc).Stop(in.Seconds))
}

// Attach connects the terminal to the running container.
type Attach struct {
	deps *Deps
}

func NewAttach(deps *Deps) *Attach {
	return &Attach{deps: deps}
}

func (uc *Attach) Execute(ctx context.Context, in *DocumentInput) error {
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	return uc.deps.announce(ctx, compose.New(doc).Attach())
}

type ExecInput struct {
	Path string
	Args []string
}

// Exec runs a command, a shell by default, inside the running container.
type Exec struct {
	deps *Deps
}

func NewExec(deps *Deps) *Exec {
	return &Exec{deps: deps}
}

func (uc *Exec) Execute(ctx context.Context, in *ExecInput) error {
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	return uc.deps.announce(ctx, compose.New(doc).Exec(in.Args))
}
