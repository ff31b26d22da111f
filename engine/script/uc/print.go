package uc

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/podded/podded/engine/compose"
	"github.com/podded/podded/engine/quadlet"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/slot"
)

type PrintInput struct {
	Path string
	// Slot selects one view; every printable slot is listed when empty.
	Slot string
}

// Print shows stored and derived slots. Locked documents can be printed.
type Print struct {
	deps *Deps
}

func NewPrint(deps *Deps) *Print {
	return &Print{deps: deps}
}

// Execute returns a NotFoundError for an unknown slot; it is a notice, not a
// failure.
func (uc *Print) Execute(ctx context.Context, in *PrintInput) error {
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	if in.Slot == "" {
		return uc.all(doc)
	}
	v, err := doc.Registry().Lookup(in.Slot)
	if err != nil {
		return err
	}
	view, err := uc.view(doc, v)
	if err != nil {
		return err
	}
	fmt.Fprintln(uc.deps.out(), view)
	return nil
}

func (uc *Print) all(doc *script.Document) error {
	c := compose.New(doc)
	for _, v := range doc.Registry().Printable() {
		if v.Access == slot.Derived {
			fmt.Fprintf(uc.deps.out(), "%s = %s\n", v.Name, strconv.Quote(c.Tag()))
			continue
		}
		stmt, err := doc.Statement(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(uc.deps.out(), stmt)
	}
	return nil
}

func (uc *Print) view(doc *script.Document, v *slot.Variable) (string, error) {
	c := compose.New(doc)
	switch v.Name {
	case slot.Tag:
		return c.Tag(), nil
	case slot.Lock:
		return strconv.FormatBool(doc.Locked()), nil
	case slot.Build:
		return strings.TrimRight(strings.TrimLeft(doc.MustValue(slot.Build).Str(), "\n"), "\n"), nil
	case slot.Command:
		return compose.Join(doc.MustValue(slot.Command).Items()), nil
	case slot.QuadletDir:
		return quadlet.ResolveDir(doc.MustValue(slot.QuadletDir).Str(), uc.deps.QuadletDir, uc.deps.Home), nil
	default:
		return c.View(v.Name)
	}
}
