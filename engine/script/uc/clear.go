package uc

import (
	"context"
	"strings"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/slot"
)

type ClearInput struct {
	Path string
	// Target is build, run (or command) or empty for both.
	Target string
}

// Clear resets BUILD and/or COMMAND to their defaults.
type Clear struct {
	deps *Deps
}

func NewClear(deps *Deps) *Clear {
	return &Clear{deps: deps}
}

func (uc *Clear) Execute(ctx context.Context, in *ClearInput) error {
	targets, err := clearTargets(in.Target)
	if err != nil {
		return err
	}
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	reg := doc.Registry()
	changes := make([]change, 0, len(targets))
	for _, name := range targets {
		changes = append(changes, change{name, reg.MustLookup(name).Default})
	}
	_, err = uc.deps.mutate(ctx, doc, "clear", changes...)
	return err
}

func clearTargets(target string) ([]string, error) {
	switch strings.ToLower(target) {
	case "":
		return []string{slot.Build, slot.Command}, nil
	case "build":
		return []string{slot.Build}, nil
	case "run", "cmd", "command":
		return []string{slot.Command}, nil
	default:
		return nil, core.NewArgumentError("Unknown sub-command: %s, expected 'build', 'run' or none", target)
	}
}
