// Package compose turns the slots of a document into argument lists for the
// container runtime and the service manager. Arguments are passed to the
// launcher as separate tokens and are never joined into a shell line.
package compose

import (
	"slices"
	"strconv"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/slot"
)

// ContextPlaceholder stands for the temporary build context in print views.
const ContextPlaceholder = "<temp-Containerfile-dir>"

// DefaultExecArgs is what `exec` runs when no tokens are given.
var DefaultExecArgs = []string{"sh"}

// Bindings are the values markers expand to.
type Bindings struct {
	Tag        string
	Command    []string
	Context    string
	Args       []string
	Time       []string
	RunCommand []string
}

// Expand replaces every element equal to a marker with its binding. List
// bindings are spliced in place; other elements are copied verbatim.
func Expand(template []string, b Bindings) []string {
	out := make([]string, 0, len(template)+len(b.Command))
	for _, el := range template {
		switch el {
		case slot.MarkerTag:
			out = append(out, b.Tag)
		case slot.MarkerCommand:
			out = append(out, b.Command...)
		case slot.MarkerContext:
			if b.Context != "" {
				out = append(out, b.Context)
			}
		case slot.MarkerArgs:
			out = append(out, b.Args...)
		case slot.MarkerTime:
			out = append(out, b.Time...)
		case slot.MarkerRunCommand:
			out = append(out, b.RunCommand...)
		default:
			out = append(out, el)
		}
	}
	return out
}

// Composer derives argument lists from one document. Nothing is cached: each
// call reads the current slot values.
type Composer struct {
	doc *script.Document
	tag string
}

func New(doc *script.Document) *Composer {
	return &Composer{doc: doc, tag: DeriveTag(doc.Path)}
}

// Tag is the derived TAG slot.
func (c *Composer) Tag() string {
	return c.tag
}

func (c *Composer) template(name string) []string {
	return c.doc.MustValue(name).Items()
}

func (c *Composer) command() []string {
	return c.doc.MustValue(slot.Command).Items()
}

// Containerfile returns the stored BUILD content, or a MissingConfigError.
func (c *Composer) Containerfile() (string, error) {
	build := c.doc.MustValue(slot.Build)
	if build.IsEmpty() {
		return "", c.missing(slot.Build, "use 'build PATH' to save one")
	}
	return build.Str(), nil
}

// Build is the build invocation for a context directory. A template without
// a {CONTEXT} element gets the directory appended.
func (c *Composer) Build(contextDir string) ([]string, error) {
	if _, err := c.Containerfile(); err != nil {
		return nil, err
	}
	tpl := c.template(slot.BuildCommand)
	if !slices.Contains(tpl, slot.MarkerContext) {
		tpl = append(tpl, slot.MarkerContext)
	}
	return Expand(tpl, Bindings{Tag: c.tag, Context: contextDir}), nil
}

// Run is the detached or interactive run invocation with the stored COMMAND.
func (c *Composer) Run(interactive bool) ([]string, error) {
	cmd := c.command()
	if len(cmd) == 0 {
		return nil, c.missing(slot.Command, "use 'run COMMAND' to save one")
	}
	name := slot.RunCommand
	if interactive {
		name = slot.RunITCommand
	}
	return c.withCommand(c.template(name), cmd), nil
}

func (c *Composer) withCommand(tpl, cmd []string) []string {
	if !slices.Contains(tpl, slot.MarkerCommand) {
		tpl = append(tpl, slot.MarkerCommand)
	}
	return Expand(tpl, Bindings{Tag: c.tag, Command: cmd})
}

// Stop is the stop invocation. A timeout of zero or more adds `--time N`.
func (c *Composer) Stop(seconds int) []string {
	var wait []string
	if seconds >= 0 {
		wait = []string{"--time", strconv.Itoa(seconds)}
	}
	return Expand(c.template(slot.StopCommand), Bindings{Tag: c.tag, Time: wait})
}

func (c *Composer) Attach() []string {
	return Expand(c.template(slot.AttachCommand), Bindings{Tag: c.tag})
}

// Exec runs args inside the container, a shell when args is empty.
func (c *Composer) Exec(args []string) []string {
	if len(args) == 0 {
		args = DefaultExecArgs
	}
	return Expand(c.template(slot.ExecCommand), Bindings{Tag: c.tag, Args: args})
}

// Podlet is the quadlet generator invocation fed with the detached run
// invocation. The fallback runs podlet itself in a container.
func (c *Composer) Podlet(fallback bool) ([]string, error) {
	run, err := c.Run(false)
	if err != nil {
		return nil, err
	}
	name := slot.PodletCommand
	if fallback {
		name = slot.PodletFallback
	}
	tpl := c.template(name)
	if !slices.Contains(tpl, slot.MarkerRunCommand) {
		tpl = append(tpl, slot.MarkerRunCommand)
	}
	return Expand(tpl, Bindings{Tag: c.tag, RunCommand: run}), nil
}

// View is the shell-quoted rendering of a template slot as it would be
// launched, with ContextPlaceholder standing for the build context.
func (c *Composer) View(name string) (string, error) {
	var (
		argv []string
		err  error
	)
	switch name {
	case slot.BuildCommand:
		tpl := c.template(name)
		if !slices.Contains(tpl, slot.MarkerContext) {
			tpl = append(tpl, slot.MarkerContext)
		}
		argv = Expand(tpl, Bindings{Tag: c.tag, Context: ContextPlaceholder})
	case slot.RunCommand, slot.RunITCommand:
		argv = c.withCommand(c.template(name), c.command())
	case slot.StopCommand:
		argv = c.Stop(-1)
	case slot.AttachCommand:
		argv = c.Attach()
	case slot.ExecCommand:
		argv = c.Exec(nil)
	case slot.PodletCommand, slot.PodletFallback:
		argv, err = c.Podlet(name == slot.PodletFallback)
	default:
		return "", core.NewArgumentError("%s is not a command template", name)
	}
	if err != nil {
		return "", err
	}
	return Join(argv), nil
}

func (c *Composer) missing(name, hint string) error {
	if c.doc.Locked() {
		hint = ""
	}
	return &core.MissingConfigError{Variable: name, Hint: hint}
}
