package uc

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/lock"
	"github.com/podded/podded/engine/slot"
)

type LockInput struct {
	Path string
	// Force flips LOCK without confirmation; it is the only way back from a
	// locked document.
	Force bool
}

// Lock freezes the document after confirmation.
type Lock struct {
	deps *Deps
}

func NewLock(deps *Deps) *Lock {
	return &Lock{deps: deps}
}

func (uc *Lock) Execute(ctx context.Context, in *LockInput) error {
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	if in.Force {
		next, err := lock.Check(lock.StateOf(doc), lock.Force, "lock force")
		if err != nil {
			return err
		}
		_, err = uc.deps.commit(ctx, doc, change{slot.Lock, slot.Bool(next == lock.Locked)})
		return err
	}
	if _, err := lock.Check(lock.StateOf(doc), lock.Lock, "lock"); err != nil {
		return err
	}
	if doc.MustValue(slot.Command).IsEmpty() {
		return &core.MissingConfigError{Variable: slot.Command, Hint: "use 'run COMMAND' to save one"}
	}
	if doc.MustValue(slot.Build).IsEmpty() {
		fmt.Fprintln(uc.deps.out(), "WARNING: BUILD has not been provided yet (command 'build PATH')!"+
			" Locking now means the 'build' and 'all' commands won't work!")
	}
	ok, err := uc.deps.Prompter.Confirm(
		fmt.Sprintf("Are you sure you want to lock '%s'?", filepath.Base(doc.Path)),
		"Once locked the document cannot modify itself anymore and both BUILD and COMMAND are fixed",
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	_, err = uc.deps.commit(ctx, doc, change{slot.Lock, slot.Bool(true)})
	return err
}
