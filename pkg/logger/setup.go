package logger

import (
	"context"
	"io"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

// SetupLogger builds the process logger from the log settings, installs it
// as the default and attaches it to ctx.
func SetupLogger(ctx context.Context, level string, json bool, out io.Writer) (context.Context, Logger) {
	Init(&Config{
		Level:      LogLevel(level),
		Output:     out,
		JSON:       json,
		AddSource:  LogLevel(level) == DebugLevel,
		TimeFormat: "15:04:05",
	})
	l := GetDefault()
	return ContextWithLogger(ctx, l), l
}

func getDefaultStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	styles.Prefix = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	styles.Levels[charmlog.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBU").
		Bold(true).
		Foreground(lipgloss.Color("244"))
	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Foreground(lipgloss.Color("214"))
	styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERRO").
		Bold(true).
		Foreground(lipgloss.Color("196"))
	return styles
}
