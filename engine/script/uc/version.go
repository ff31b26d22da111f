package uc

import (
	"context"
	"fmt"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/lock"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/update"
)

type VersionAction string

const (
	VersionShow   VersionAction = ""
	VersionDiff   VersionAction = "diff"
	VersionUpdate VersionAction = "update"
)

type VersionInput struct {
	// Path is optional for VersionShow.
	Path   string
	Action VersionAction
}

// Version compares the binary and the document with the published template
// and optionally moves the document onto it.
type Version struct {
	deps *Deps
}

func NewVersion(deps *Deps) *Version {
	return &Version{deps: deps}
}

func (uc *Version) Execute(ctx context.Context, in *VersionInput) error {
	switch in.Action {
	case VersionShow, VersionDiff, VersionUpdate:
	default:
		return core.NewArgumentError("Unknown sub-command: %s, expected 'diff', 'update' or none", in.Action)
	}
	out := uc.deps.out()
	if in.Path == "" {
		if in.Action != VersionShow {
			return ErrNoDocument
		}
		fmt.Fprintf(out, "podded %s\n", uc.deps.Version)
		return nil
	}
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	if in.Action == VersionUpdate {
		if err := lock.Guard(doc, "version update"); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "podded %s\n", uc.deps.Version)
	if local, ok := script.HeaderVersion(doc.Text); ok {
		fmt.Fprintf(out, "document %s: v%s\n", doc.Path, local)
	} else {
		fmt.Fprintf(out, "document %s: no version header\n", doc.Path)
	}
	report, remote, err := uc.deps.Updater.Check(ctx, doc)
	if err != nil {
		return err
	}
	if in.Action != VersionShow {
		return uc.apply(ctx, doc, remote, report, in.Action == VersionUpdate)
	}
	if report.Newer {
		fmt.Fprintf(out, "template %s: v%s is newer, see 'version diff'\n", uc.deps.Updater.URL(), report.Remote)
	} else {
		fmt.Fprintf(out, "template %s: v%s, up to date\n", uc.deps.Updater.URL(), report.Remote)
	}
	return nil
}

func (uc *Version) apply(ctx context.Context, doc, remote *script.Document, report *update.Report, write bool) error {
	out := uc.deps.out()
	merged, err := update.Merge(doc, remote)
	if err != nil {
		return err
	}
	diff, err := update.UnifiedDiff(doc, merged, "template v"+report.Remote)
	if err != nil {
		return err
	}
	if diff == "" {
		fmt.Fprintln(out, "Document already matches the template")
		return nil
	}
	fmt.Fprintln(out, diff)
	if !write {
		return nil
	}
	if !report.Newer {
		fmt.Fprintf(out, "Template v%s is not newer than the document, nothing written\n", report.Remote)
		return nil
	}
	return uc.deps.Store.Write(ctx, merged)
}
