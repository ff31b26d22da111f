package script

import (
	_ "embed"
	"regexp"
)

//go:embed template.podded
var template string

var headerVersion = regexp.MustCompile(`(?m)^# podded v(\S+)\s*$`)

// Template returns the text of a fresh podded document.
func Template() string {
	return template
}

// HeaderVersion extracts the version from the `# podded vX.Y.Z` header line
// of a document.
func HeaderVersion(text string) (string, bool) {
	m := headerVersion.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
