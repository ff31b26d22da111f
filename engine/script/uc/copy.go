package uc

import (
	"context"
	"fmt"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/slot"
)

type CopyInput struct {
	Path string
	Dest string
	// Reset clears BUILD and COMMAND in the copy.
	Reset bool
}

// Copy writes an unlocked (or reset) copy of the document to a new path.
// The source document is never modified, so the lock does not apply.
type Copy struct {
	deps *Deps
}

func NewCopy(deps *Deps) *Copy {
	return &Copy{deps: deps}
}

func (uc *Copy) Execute(ctx context.Context, in *CopyInput) error {
	if in.Dest == "" {
		return core.NewArgumentError("Expected 1 argument PATH, got 0")
	}
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	changes := []change{{slot.Lock, slot.Bool(false)}}
	if in.Reset {
		reg := doc.Registry()
		changes = append(changes,
			change{slot.Build, reg.MustLookup(slot.Build).Default},
			change{slot.Command, reg.MustLookup(slot.Command).Default},
		)
	}
	copied, _, err := plan(doc, changes...)
	if err != nil {
		return err
	}
	dest := uc.deps.Store.Abs(in.Dest)
	if err := uc.deps.Store.Create(ctx, copied.WithPath(dest)); err != nil {
		return err
	}
	if in.Reset {
		fmt.Fprintf(uc.deps.out(), "Wrote cleared/reset copy to '%s', you may want to add BUILD and COMMAND\n", dest)
	} else {
		fmt.Fprintf(uc.deps.out(), "Wrote unlocked copy to '%s', you may want to lock it or clear it before use\n", dest)
	}
	return nil
}

type InitInput struct {
	Dest string
}

// Init writes a fresh document from the embedded template.
type Init struct {
	deps *Deps
}

func NewInit(deps *Deps) *Init {
	return &Init{deps: deps}
}

func (uc *Init) Execute(ctx context.Context, in *InitInput) error {
	if in.Dest == "" {
		return core.NewArgumentError("Expected 1 argument PATH, got 0")
	}
	dest := uc.deps.Store.Abs(in.Dest)
	doc, err := uc.deps.Store.Parse(dest, script.Template())
	if err != nil {
		return err
	}
	if err := uc.deps.Store.Create(ctx, doc); err != nil {
		return err
	}
	fmt.Fprintf(uc.deps.out(), "Wrote new document to '%s'\n", dest)
	return nil
}
