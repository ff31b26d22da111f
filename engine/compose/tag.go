package compose

import (
	"path/filepath"
	"strings"
)

// scriptExtensions are stripped from the document name before it becomes a tag.
var scriptExtensions = []string{".podded", ".pod", ".py", ".sh"}

// DeriveTag turns a document path into the image tag and container name.
// Only a known script extension is removed, so `webserver.dev` and
// `webserver.prod` keep distinct tags. Image names must be lower case, so
// names differing only in case share a tag. A tag always starts with a
// letter or digit.
func DeriveTag(path string) string {
	name := filepath.Base(filepath.Clean(path))
	lower := strings.ToLower(name)
	for _, ext := range scriptExtensions {
		if strings.HasSuffix(lower, ext) && len(name) > len(ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	tag := strings.TrimLeft(b.String(), "._-")
	if tag == "" {
		return "podded"
	}
	return tag
}
