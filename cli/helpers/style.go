package helpers

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/podded/podded/engine/script"
)

// Styles colors the lines podded prints for the user.
type Styles struct {
	Header  lipgloss.Style
	Removed lipgloss.Style
	Added   lipgloss.Style
	Prefix  lipgloss.Style
}

// NewStyles binds the styles to out. Without color every style renders the
// text unchanged.
func NewStyles(out io.Writer, color bool) *Styles {
	r := lipgloss.NewRenderer(out)
	if color {
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI)
		}
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Styles{
		Header:  r.NewStyle().Bold(true),
		Removed: r.NewStyle().Foreground(lipgloss.Color("1")),
		Added:   r.NewStyle().Foreground(lipgloss.Color("2")),
		Prefix:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

// RenderDiff renders a slot diff like Diff.String with colored lines.
func (s *Styles) RenderDiff(d *script.Diff) string {
	if !d.Changed() {
		return d.String()
	}
	var b strings.Builder
	b.WriteString(s.Header.Render(d.Variable + " block changed:"))
	for _, line := range d.Removed {
		b.WriteString("\n")
		b.WriteString(s.Removed.Render("- " + line))
	}
	for _, line := range d.Added {
		b.WriteString("\n")
		b.WriteString(s.Added.Render("+ " + line))
	}
	return b.String()
}

// RenderError renders the one-line report of a failed command.
func (s *Styles) RenderError(err *CliError) string {
	if err.Prefix == "" {
		return err.Message
	}
	return s.Prefix.Render(err.Prefix) + " " + err.Message
}
