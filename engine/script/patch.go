package script

import (
	"strings"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/slot"
)

// Patch replaces the literal of one slot. It is consumed once by Apply.
type Patch struct {
	Variable *slot.Variable
	Old      string
	New      string
	Span     Span
	// Insert appends a new statement for a template slot the document
	// does not assign yet.
	Insert bool

	value slot.Value
}

// Noop reports whether applying the patch would leave the text unchanged.
func (p *Patch) Noop() bool {
	return !p.Insert && p.Old == p.New
}

// Plan computes the patch that stores value into v.
func Plan(doc *Document, v *slot.Variable, value slot.Value) (*Patch, error) {
	if !v.Editable() {
		return nil, core.NewValidationError(v.Name, nil, "%s slots are read-only", v.Access)
	}
	lit, err := Serialize(v, value)
	if err != nil {
		return nil, err
	}
	a, ok := doc.layout.Get(v.Name)
	if !ok {
		if v.Required() {
			return nil, core.NewStructuralError(v.Name, 0, "no assignment in %s", doc.Path)
		}
		if value.Equal(v.Default) {
			// an absent template already yields its default
			return &Patch{Variable: v, Old: lit, New: lit, value: value}, nil
		}
		end := len(doc.Text)
		return &Patch{Variable: v, New: lit, Span: Span{Start: end, End: end}, Insert: true, value: value}, nil
	}
	return &Patch{Variable: v, Old: a.Literal(doc.Text), New: lit, Span: a.Span, value: value}, nil
}

// Apply writes the patch into a copy of the document. Every byte outside the
// patched literal is kept.
func Apply(doc *Document, p *Patch) (*Document, *Diff, error) {
	diff := &Diff{Variable: p.Variable.Name}
	if p.Noop() {
		return doc, diff, nil
	}
	var text string
	if p.Insert {
		prefix := doc.Text
		if prefix != "" && !strings.HasSuffix(prefix, "\n") {
			prefix += "\n"
		}
		stmt := p.Variable.Name + " = " + p.New
		text = prefix + stmt + "\n"
		diff.Added = splitLines(stmt)
	} else {
		a, _ := doc.layout.Get(p.Variable.Name)
		text = doc.Text[:p.Span.Start] + p.New + doc.Text[p.Span.End:]
		head := doc.Text[a.Stmt:p.Span.Start]
		diff.Removed = splitLines(head + p.Old)
		diff.Added = splitLines(head + p.New)
	}
	next, err := doc.WithText(text)
	if err != nil {
		return nil, nil, err
	}
	got, err := next.Value(p.Variable.Name)
	if err != nil {
		return nil, nil, err
	}
	if !got.Equal(p.value) {
		return nil, nil, core.NewStructuralError(p.Variable.Name, 0, "patched literal reads back as %s", got)
	}
	return next, diff, nil
}

// Set plans and applies a single value.
func Set(doc *Document, name string, value slot.Value) (*Document, *Diff, error) {
	v, err := doc.reg.Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	p, err := Plan(doc, v, value)
	if err != nil {
		return nil, nil, err
	}
	return Apply(doc, p)
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
