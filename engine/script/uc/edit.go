package uc

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/slot"
	"github.com/spf13/afero"
)

type EditInput struct {
	Path string
	// Slot limits the edit to one statement; the whole document is edited
	// when empty.
	Slot string
}

// Edit opens a slot statement or the whole document in the editor and
// stores the result once it parses.
type Edit struct {
	deps *Deps
}

func NewEdit(deps *Deps) *Edit {
	return &Edit{deps: deps}
}

func (uc *Edit) Execute(ctx context.Context, in *EditInput) error {
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	var v *slot.Variable
	if in.Slot != "" {
		if v, err = doc.Registry().Lookup(in.Slot); err != nil {
			return err
		}
		if !v.Editable() {
			return core.NewValidationError(v.Name, nil, "%s is derived from the document path and cannot be edited", v.Name)
		}
	}
	if err := lockedFor(doc, "edit"); err != nil {
		return err
	}
	if v != nil {
		return uc.editSlot(ctx, doc, v)
	}
	return uc.editDocument(ctx, doc)
}

func (uc *Edit) editSlot(ctx context.Context, doc *script.Document, v *slot.Variable) error {
	stmt, err := doc.Statement(v)
	if err != nil {
		return err
	}
	edited, err := uc.roundTrip(ctx, doc, stmt+"\n")
	if err != nil {
		return err
	}
	value, err := parseStatement(v, edited)
	if err != nil {
		return err
	}
	_, err = uc.deps.commit(ctx, doc, change{v.Name, value})
	return err
}

// parseStatement reads back an edited `NAME = <literal>` statement.
func parseStatement(v *slot.Variable, text string) (slot.Value, error) {
	name, literal, ok := strings.Cut(strings.TrimSpace(text), "=")
	if !ok || !strings.EqualFold(strings.TrimSpace(name), v.Name) {
		return slot.Value{}, core.NewValidationError(v.Name, nil, "expected a single `%s = <literal>` statement", v.Name)
	}
	return script.Parse(v, strings.TrimSpace(literal))
}

func (uc *Edit) editDocument(ctx context.Context, doc *script.Document) error {
	edited, err := uc.roundTrip(ctx, doc, doc.Text)
	if err != nil {
		return err
	}
	if edited == doc.Text {
		fmt.Fprintln(uc.deps.out(), "Document unchanged")
		return nil
	}
	next, err := doc.WithText(edited)
	if err != nil {
		return err
	}
	diffs, err := slotDiffs(doc, next)
	if err != nil {
		return err
	}
	uc.deps.printDiffs(diffs)
	return uc.deps.Store.Write(ctx, next)
}

// slotDiffs lists the statements of every editable slot whose value differs
// between two versions of a document.
func slotDiffs(before, after *script.Document) (script.Diffs, error) {
	var diffs script.Diffs
	for _, v := range before.Registry().Editable() {
		if before.MustValue(v.Name).Equal(after.MustValue(v.Name)) {
			continue
		}
		removed, err := before.Statement(v)
		if err != nil {
			return nil, err
		}
		added, err := after.Statement(v)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, &script.Diff{
			Variable: v.Name,
			Removed:  strings.Split(removed, "\n"),
			Added:    strings.Split(added, "\n"),
		})
	}
	return diffs, nil
}

// roundTrip writes content to a temporary file, runs the editor on it and
// returns what the user saved.
func (uc *Edit) roundTrip(ctx context.Context, doc *script.Document, content string) (string, error) {
	fs := uc.deps.Store.Fs()
	tmp, err := afero.TempFile(fs, "", "podded-edit-*-"+filepath.Base(doc.Path))
	if err != nil {
		return "", fmt.Errorf("failed to create edit file: %w", err)
	}
	name := tmp.Name()
	defer func() { _ = fs.Remove(name) }()
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write edit file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close edit file: %w", err)
	}
	if err := uc.deps.Editor.Edit(ctx, name); err != nil {
		return "", err
	}
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return "", fmt.Errorf("failed to read edit file: %w", err)
	}
	return string(data), nil
}
