package script

import (
	"sort"
	"strings"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/slot"
)

// Span is the byte range [Start, End) of a literal inside the document text.
type Span struct {
	Start int
	End   int
}

// Assignment is one `NAME = <literal>` statement found in a document.
type Assignment struct {
	Variable *slot.Variable
	// Line is the 1-based line the statement starts on.
	Line int
	// Stmt is the offset of the first byte of NAME.
	Stmt  int
	Span  Span
	Value slot.Value
}

// Statement returns the statement text from NAME to the end of the literal.
func (a *Assignment) Statement(text string) string {
	return text[a.Stmt:a.Span.End]
}

// Literal returns the literal text of the assignment.
func (a *Assignment) Literal(text string) string {
	return text[a.Span.Start:a.Span.End]
}

// Layout is the set of assignments found in one document text.
type Layout struct {
	byName map[string]*Assignment
}

// Get returns the assignment of a variable, if the document has one.
func (l *Layout) Get(name string) (*Assignment, bool) {
	a, ok := l.byName[name]
	return a, ok
}

// Assignments returns every assignment in document order.
func (l *Layout) Assignments() []*Assignment {
	out := make([]*Assignment, 0, len(l.byName))
	for _, a := range l.byName {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stmt < out[j].Stmt })
	return out
}

// Scan reads every registry assignment from text. Lines inside a literal are
// never taken for statements, and lines naming unknown or derived slots are
// left alone. A stored slot that is missing, or any slot assigned twice,
// makes the text malformed.
func Scan(reg *slot.Registry, text string) (*Layout, error) {
	layout := &Layout{byName: make(map[string]*Assignment)}
	line := 1
	for pos := 0; pos < len(text); {
		a, next, err := scanStatement(reg, text, pos, line)
		if err != nil {
			return nil, err
		}
		if a != nil {
			if prev, dup := layout.byName[a.Variable.Name]; dup {
				return nil, core.NewStructuralError(a.Variable.Name, a.Line,
					"assigned more than once (first on line %d)", prev.Line)
			}
			layout.byName[a.Variable.Name] = a
		}
		nl := strings.IndexByte(text[next:], '\n')
		if nl < 0 {
			break
		}
		following := next + nl + 1
		line += strings.Count(text[pos:following], "\n")
		pos = following
	}
	for _, v := range reg.Stored() {
		if _, ok := layout.byName[v.Name]; !ok {
			return nil, core.NewStructuralError(v.Name, 0, "no `%s = <literal>` line found", v.Name)
		}
	}
	return layout, nil
}

// scanStatement recognizes `NAME = <literal>` at the start of the line at
// pos. It returns nil when the line is ordinary text, together with the
// offset the scan resumes from: past the literal of an assignment, past the
// fenced block of any other `NAME = """` statement, or pos itself.
func scanStatement(reg *slot.Registry, text string, pos, line int) (*Assignment, int, error) {
	i := pos
	for i < len(text) && (isIdentByte(text[i]) && (i > pos || !('0' <= text[i] && text[i] <= '9'))) {
		i++
	}
	if i == pos {
		return nil, pos, nil
	}
	name := text[pos:i]
	i = skipBlank(text, i)
	if i >= len(text) || text[i] != '=' || (i+1 < len(text) && text[i+1] == '=') {
		return nil, pos, nil
	}
	start := skipBlank(text, i+1)
	v, err := reg.Lookup(name)
	if err != nil || v.Name != name || !v.Editable() {
		return nil, skipForeignBlock(text, pos, start), nil
	}
	value, end, err := parseAt(v.Kind, text, start)
	if err != nil {
		return nil, pos, core.NewStructuralError(v.Name, line, "%v", err)
	}
	return &Assignment{
		Variable: v,
		Line:     line,
		Stmt:     pos,
		Span:     Span{Start: start, End: end},
		Value:    value,
	}, end, nil
}

// skipForeignBlock steps over the fenced block of a statement podded does
// not own, so its lines are never read as assignments. An unterminated block
// is left to be scanned as plain text.
func skipForeignBlock(text string, pos, start int) int {
	if !strings.HasPrefix(text[start:], fence) {
		return pos
	}
	_, end, err := parseText(text, start)
	if err != nil {
		return pos
	}
	return end
}

func skipBlank(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i
}
