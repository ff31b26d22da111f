package runtime

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(title, description string) (bool, error)
}

// FormPrompter asks with a huh confirm form on a terminal and with a plain
// `[y/N]` line otherwise.
type FormPrompter struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

func NewPrompter(in io.Reader, out io.Writer, interactive bool) *FormPrompter {
	return &FormPrompter{in: in, out: out, interactive: interactive}
}

func (p *FormPrompter) Confirm(title, description string) (bool, error) {
	if !p.interactive {
		return p.confirmLine(title, description)
	}
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithInput(p.in).WithOutput(p.out)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return ok, nil
}

func (p *FormPrompter) confirmLine(title, description string) (bool, error) {
	fmt.Fprintln(p.out, title)
	if description != "" {
		fmt.Fprintln(p.out, description)
	}
	fmt.Fprint(p.out, "[y/N]: ")
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "true":
		return true, nil
	default:
		return false, nil
	}
}
