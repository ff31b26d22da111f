package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/slot"
	"github.com/podded/podded/pkg/config"
)

// Report compares a document with the remote template.
type Report struct {
	// Document is the header version of the local document, empty when the
	// document has no header.
	Document string
	Remote   string
	// Newer is set when the remote template is ahead of the document.
	Newer bool
}

// Compare orders two versions; an empty local version is older than any
// remote one.
func Compare(local, remote string) (int, error) {
	r, err := semver.NewVersion(remote)
	if err != nil {
		return 0, core.NewValidationError("", err, "invalid remote version %q", remote)
	}
	if local == "" {
		return -1, nil
	}
	l, err := semver.NewVersion(local)
	if err != nil {
		return 0, core.NewValidationError("", err, "invalid document version %q", local)
	}
	return l.Compare(r), nil
}

// Updater fetches the remote template and merges documents onto it.
type Updater struct {
	fetcher Fetcher
	url     string
	reg     *slot.Registry
}

func NewUpdater(fetcher Fetcher, url string, reg *slot.Registry) *Updater {
	if url == "" {
		url = config.DefaultUpdateURL
	}
	if reg == nil {
		reg = slot.Default()
	}
	return &Updater{fetcher: fetcher, url: url, reg: reg}
}

func (u *Updater) URL() string {
	return u.url
}

// Remote fetches and scans the remote template.
func (u *Updater) Remote(ctx context.Context) (*script.Document, string, error) {
	text, err := u.fetcher.Fetch(ctx, u.url)
	if err != nil {
		return nil, "", err
	}
	version, ok := script.HeaderVersion(text)
	if !ok {
		return nil, "", &core.FetchError{URL: u.url, Cause: fmt.Errorf("payload has no `# podded vX.Y.Z` header")}
	}
	remote, err := script.NewDocument(u.reg, u.url, text, 0)
	if err != nil {
		return nil, "", &core.FetchError{URL: u.url, Cause: err}
	}
	return remote, version, nil
}

// Check reports whether the remote template is newer than doc.
func (u *Updater) Check(ctx context.Context, doc *script.Document) (*Report, *script.Document, error) {
	remote, version, err := u.Remote(ctx)
	if err != nil {
		return nil, nil, err
	}
	local, _ := script.HeaderVersion(doc.Text)
	cmp, err := Compare(local, version)
	if err != nil {
		return nil, nil, err
	}
	return &Report{Document: local, Remote: version, Newer: cmp < 0}, remote, nil
}

// Merge carries every slot value of doc onto the remote template and returns
// the result addressed at doc's path.
func Merge(doc, remote *script.Document) (*script.Document, error) {
	merged := remote.WithPath(doc.Path)
	merged.Mode = doc.Mode
	for _, v := range doc.Registry().Editable() {
		value, err := doc.Value(v.Name)
		if err != nil {
			return nil, err
		}
		if merged, _, err = script.Set(merged, v.Name, value); err != nil {
			return nil, fmt.Errorf("carrying %s over: %w", v.Name, err)
		}
	}
	return merged, nil
}

// UnifiedDiff renders the change from one document text to another.
func UnifiedDiff(from, to *script.Document, toLabel string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(from.Text),
		B:        difflib.SplitLines(to.Text),
		FromFile: from.Path,
		ToFile:   toLabel,
		Context:  3,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to render diff: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}
