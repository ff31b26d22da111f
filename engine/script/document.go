package script

import (
	"io/fs"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/slot"
)

// DefaultMode is the permission set of documents podded creates.
const DefaultMode fs.FileMode = 0o755

// Document is a podded document read into memory. It is immutable: Apply
// returns a new Document instead of changing the receiver.
type Document struct {
	Path string
	Text string
	Mode fs.FileMode

	reg    *slot.Registry
	layout *Layout
}

// NewDocument scans text and returns the document, or a StructuralError when
// the text is not a well-formed podded document.
func NewDocument(reg *slot.Registry, path, text string, mode fs.FileMode) (*Document, error) {
	layout, err := Scan(reg, text)
	if err != nil {
		return nil, err
	}
	if mode == 0 {
		mode = DefaultMode
	}
	return &Document{Path: path, Text: text, Mode: mode, reg: reg, layout: layout}, nil
}

func (d *Document) Registry() *slot.Registry {
	return d.reg
}

func (d *Document) Layout() *Layout {
	return d.layout
}

// Value returns the effective value of an editable slot: the stored literal
// when the document has one, the registry default otherwise.
func (d *Document) Value(name string) (slot.Value, error) {
	v, err := d.reg.Lookup(name)
	if err != nil {
		return slot.Value{}, err
	}
	if a, ok := d.layout.Get(v.Name); ok {
		return a.Value, nil
	}
	return v.Default, nil
}

// MustValue is Value for registry names known at compile time.
func (d *Document) MustValue(name string) slot.Value {
	value, err := d.Value(name)
	if err != nil {
		panic(err)
	}
	return value
}

// Locked reports whether the document refuses further modification.
func (d *Document) Locked() bool {
	return d.MustValue(slot.Lock).Flag()
}

// Statement returns the `NAME = <literal>` text of a slot, or the statement
// the slot would get with its default when the document has none.
func (d *Document) Statement(v *slot.Variable) (string, error) {
	if a, ok := d.layout.Get(v.Name); ok {
		return a.Statement(d.Text), nil
	}
	lit, err := Serialize(v, v.Default)
	if err != nil {
		return "", err
	}
	return v.Name + " = " + lit, nil
}

// WithPath returns the same document addressed at another path.
func (d *Document) WithPath(path string) *Document {
	c := *d
	c.Path = path
	return &c
}

// WithText re-scans a replacement text for the same path.
func (d *Document) WithText(text string) (*Document, error) {
	return NewDocument(d.reg, d.Path, text, d.Mode)
}

// Locate returns the span of the literal assigned to v. A slot the document
// does not assign has no span.
func Locate(doc *Document, v *slot.Variable) (Span, error) {
	a, ok := doc.layout.Get(v.Name)
	if !ok {
		return Span{}, core.NewStructuralError(v.Name, 0, "no assignment in %s", doc.Path)
	}
	return a.Span, nil
}
