package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/slot"
)

const fence = `"""`

var errNoLiteral = errors.New("expected a literal")

// Serialize renders a value in the literal syntax of the variable's kind.
// Parse(Serialize(v)) == v for every value Serialize accepts.
func Serialize(v *slot.Variable, value slot.Value) (string, error) {
	if value.Kind() != v.Kind {
		return "", core.NewValidationError(v.Name, nil, "expected a %s value, got %s", v.Kind, value.Kind())
	}
	switch v.Kind {
	case slot.KindBool:
		return strconv.FormatBool(value.Flag()), nil
	case slot.KindString:
		return strconv.Quote(value.Str()), nil
	case slot.KindList:
		return serializeList(value.Items()), nil
	case slot.KindMultiline:
		return serializeText(v.Name, value.Str())
	default:
		return "", core.NewValidationError(v.Name, nil, "unsupported kind %s", v.Kind)
	}
}

func serializeList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func serializeText(name, content string) (string, error) {
	content = slot.NormalizeText(content)
	if content == "" {
		return `""`, nil
	}
	for i, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		if strings.HasPrefix(line, fence) {
			return "", core.NewValidationError(name, nil, "line %d starts with %s and would close the block", i+1, fence)
		}
	}
	return fence + "\n" + content + fence, nil
}

// Parse reads a complete literal of the variable's kind. Trailing text is an
// error; use parseAt to read a literal embedded in a document.
func Parse(v *slot.Variable, literal string) (slot.Value, error) {
	value, end, err := parseAt(v.Kind, literal, 0)
	if err != nil {
		return slot.Value{}, core.NewValidationError(v.Name, err, "cannot parse %s literal", v.Kind)
	}
	if rest := strings.TrimSpace(literal[end:]); rest != "" {
		return slot.Value{}, core.NewValidationError(v.Name, nil, "unexpected text after literal: %q", rest)
	}
	return value, nil
}

// parseAt reads the literal starting at text[pos] and returns the offset just
// past it.
func parseAt(kind slot.Kind, text string, pos int) (slot.Value, int, error) {
	switch kind {
	case slot.KindBool:
		return parseBool(text, pos)
	case slot.KindString:
		s, end, err := parseQuoted(text, pos)
		if err != nil {
			return slot.Value{}, pos, err
		}
		return slot.String(s), end, nil
	case slot.KindList:
		return parseList(text, pos)
	case slot.KindMultiline:
		return parseText(text, pos)
	default:
		return slot.Value{}, pos, fmt.Errorf("unsupported kind %s", kind)
	}
}

func parseBool(text string, pos int) (slot.Value, int, error) {
	for _, word := range []string{"true", "false"} {
		if !strings.HasPrefix(text[pos:], word) {
			continue
		}
		end := pos + len(word)
		if end < len(text) && isIdentByte(text[end]) {
			break
		}
		return slot.Bool(word == "true"), end, nil
	}
	return slot.Value{}, pos, fmt.Errorf("%w: true or false", errNoLiteral)
}

func parseQuoted(text string, pos int) (string, int, error) {
	if pos >= len(text) || text[pos] != '"' {
		return "", pos, fmt.Errorf("%w: double-quoted string", errNoLiteral)
	}
	quoted, err := strconv.QuotedPrefix(text[pos:])
	if err != nil {
		return "", pos, fmt.Errorf("unterminated or invalid string: %w", err)
	}
	s, err := strconv.Unquote(quoted)
	if err != nil {
		return "", pos, fmt.Errorf("invalid string: %w", err)
	}
	return s, pos + len(quoted), nil
}

func parseList(text string, pos int) (slot.Value, int, error) {
	if pos >= len(text) || text[pos] != '[' {
		return slot.Value{}, pos, fmt.Errorf("%w: [", errNoLiteral)
	}
	i := skipSpace(text, pos+1)
	items := []string{}
	for {
		if i >= len(text) {
			return slot.Value{}, pos, errors.New("unterminated list")
		}
		if text[i] == ']' {
			return slot.List(items...), i + 1, nil
		}
		item, end, err := parseQuoted(text, i)
		if err != nil {
			return slot.Value{}, pos, fmt.Errorf("list element %d: %w", len(items)+1, err)
		}
		items = append(items, item)
		i = skipSpace(text, end)
		if i >= len(text) {
			return slot.Value{}, pos, errors.New("unterminated list")
		}
		switch text[i] {
		case ',':
			i = skipSpace(text, i+1)
		case ']':
		default:
			return slot.Value{}, pos, fmt.Errorf("expected , or ] after list element %d", len(items))
		}
	}
}

func parseText(text string, pos int) (slot.Value, int, error) {
	if !strings.HasPrefix(text[pos:], fence) {
		s, end, err := parseQuoted(text, pos)
		if err != nil {
			return slot.Value{}, pos, err
		}
		return slot.Text(s), end, nil
	}
	open := pos + len(fence)
	bodyStart, ok := consumeNewline(text, open)
	if !ok {
		return slot.Value{}, pos, fmt.Errorf("%s must be followed by a line break", fence)
	}
	for lineStart := bodyStart; lineStart <= len(text); {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += lineStart
		}
		// the first line starting with the fence closes the block; the rest
		// of that line belongs to the statement
		if strings.HasPrefix(text[lineStart:lineEnd], fence) {
			return slot.Text(text[bodyStart:lineStart]), lineStart + len(fence), nil
		}
		if lineEnd == len(text) {
			break
		}
		lineStart = lineEnd + 1
	}
	return slot.Value{}, pos, fmt.Errorf("unterminated %s block", fence)
}

func consumeNewline(text string, i int) (int, bool) {
	switch {
	case strings.HasPrefix(text[i:], "\r\n"):
		return i + 2, true
	case strings.HasPrefix(text[i:], "\n"):
		return i + 1, true
	default:
		return i, false
	}
}

func skipSpace(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

func isIdentByte(b byte) bool {
	return b == '_' || ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z') || ('0' <= b && b <= '9')
}
