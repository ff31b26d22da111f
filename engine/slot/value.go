package slot

import (
	"slices"
	"strconv"
	"strings"
)

// Kind is the literal shape a slot is stored in.
type Kind string

const (
	KindString    Kind = "string"
	KindList      Kind = "string-list"
	KindBool      Kind = "boolean"
	KindMultiline Kind = "multiline-string"
)

// Value is a typed slot value. The zero Value is an empty string.
type Value struct {
	kind Kind
	str  string
	list []string
	flag bool
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func List(items ...string) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// Text builds a multiline value. Line endings are normalized to \n and a
// non-empty text always ends in a newline.
func Text(s string) Value {
	return Value{kind: KindMultiline, str: NormalizeText(s)}
}

// NormalizeText is the canonical form of multiline content.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}

func (v Value) Kind() Kind {
	if v.kind == "" {
		return KindString
	}
	return v.kind
}

func (v Value) Str() string {
	return v.str
}

func (v Value) Items() []string {
	return slices.Clone(v.list)
}

func (v Value) Flag() bool {
	return v.flag
}

// IsEmpty reports whether the value carries nothing: an empty or blank
// string, an empty list or false.
func (v Value) IsEmpty() bool {
	switch v.Kind() {
	case KindList:
		return len(v.list) == 0
	case KindBool:
		return !v.flag
	default:
		return strings.TrimSpace(v.str) == ""
	}
}

func (v Value) Equal(o Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindList:
		return slices.Equal(v.list, o.list)
	case KindBool:
		return v.flag == o.flag
	default:
		return v.str == o.str
	}
}

// String renders the value for humans, not for storage.
func (v Value) String() string {
	switch v.Kind() {
	case KindList:
		quoted := make([]string, len(v.list))
		for i, item := range v.list {
			quoted[i] = strconv.Quote(item)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return v.str
	}
}
