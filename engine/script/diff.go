package script

import "strings"

// Diff is the before/after view of one patched statement.
type Diff struct {
	Variable string
	Removed  []string
	Added    []string
}

// Changed reports whether the patch altered the document.
func (d *Diff) Changed() bool {
	return len(d.Removed) > 0 || len(d.Added) > 0
}

// String renders the diff the way podded prints it:
//
//	BUILD block changed:
//	- BUILD = ""
//	+ BUILD = """
//	+ FROM x
//	+ """
func (d *Diff) String() string {
	if !d.Changed() {
		return d.Variable + " unchanged"
	}
	var b strings.Builder
	b.WriteString(d.Variable)
	b.WriteString(" block changed:")
	for _, line := range d.Removed {
		b.WriteString("\n- ")
		b.WriteString(line)
	}
	for _, line := range d.Added {
		b.WriteString("\n+ ")
		b.WriteString(line)
	}
	return b.String()
}

// Diffs is the ordered list of diffs of one operation.
type Diffs []*Diff

// Changed reports whether any diff altered the document.
func (ds Diffs) Changed() bool {
	for _, d := range ds {
		if d.Changed() {
			return true
		}
	}
	return false
}
