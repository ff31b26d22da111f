package helpers

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Color settings accepted by cli.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var getenv = os.Getenv

// isRunningInCI checks if we're running in a CI/CD environment
func isRunningInCI() bool {
	if getenv("CI") != "" {
		return true
	}
	ciVars := []string{
		"JENKINS_HOME",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"BUILDKITE",
		"DRONE",
		"TF_BUILD",
		"TEAMCITY_VERSION",
		"CONTINUOUS_INTEGRATION",
	}
	for _, v := range ciVars {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the stream is attached to a terminal.
func IsTerminal(stream any) bool {
	f, ok := stream.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsInteractive reports whether the user can answer a prompt: both streams
// are terminals and no CI runner is detected.
func IsInteractive(in io.Reader, out io.Writer) bool {
	if isRunningInCI() {
		return false
	}
	return IsTerminal(in) && IsTerminal(out)
}

// ShouldUseColor resolves the color setting against the output stream.
func ShouldUseColor(setting string, out io.Writer) bool {
	switch setting {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if getenv("NO_COLOR") != "" {
		return false
	}
	if !IsTerminal(out) {
		return false
	}
	if isRunningInCI() {
		return false
	}
	term := getenv("TERM")
	return term != "dumb" && term != ""
}
