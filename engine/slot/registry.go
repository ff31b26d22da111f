// Package slot defines the closed set of configuration slots a podded
// document carries: their names, literal kinds, defaults and who may write
// them.
package slot

import (
	"strings"

	"github.com/podded/podded/engine/core"
)

// Access decides where a slot lives and who may patch it.
type Access int

const (
	// Stored slots must appear exactly once and are rewritten by commands.
	Stored Access = iota
	// Template slots are optional overrides, rewritten only by edit.
	Template
	// Derived slots are computed and never written to the document.
	Derived
)

func (a Access) String() string {
	switch a {
	case Stored:
		return "stored"
	case Template:
		return "template"
	case Derived:
		return "derived"
	default:
		return "unknown"
	}
}

// Variable is a single named slot.
type Variable struct {
	Name    string
	Kind    Kind
	Access  Access
	Default Value
	Help    string
}

// Editable reports whether a facade operation may patch the slot.
func (v *Variable) Editable() bool {
	return v.Access != Derived
}

// Required reports whether a well-formed document must contain the slot.
func (v *Variable) Required() bool {
	return v.Access == Stored
}

const (
	Lock           = "LOCK"
	Build          = "BUILD"
	Command        = "COMMAND"
	Tag            = "TAG"
	QuadletDir     = "QUADLET_DIR"
	BuildCommand   = "BUILD_COMMAND"
	RunCommand     = "RUN_COMMAND"
	RunITCommand   = "RUN_IT_COMMAND"
	StopCommand    = "STOP_COMMAND"
	AttachCommand  = "ATTACH_COMMAND"
	ExecCommand    = "EXEC_COMMAND"
	PodletCommand  = "PODLET_COMMAND"
	PodletFallback = "PODLET_FALLBACK"
)

// Registry is an immutable, ordered lookup table of slots.
type Registry struct {
	ordered []*Variable
	byName  map[string]*Variable
}

func newRegistry(vars ...*Variable) *Registry {
	r := &Registry{
		ordered: vars,
		byName:  make(map[string]*Variable, len(vars)),
	}
	for _, v := range vars {
		r.byName[v.Name] = v
	}
	return r
}

var defaultRegistry = newRegistry(
	&Variable{
		Name: Lock, Kind: KindBool, Access: Stored, Default: Bool(false),
		Help: "when true the document refuses to modify itself",
	},
	&Variable{
		Name: Build, Kind: KindMultiline, Access: Stored, Default: Text(""),
		Help: "the saved Containerfile",
	},
	&Variable{
		Name: Command, Kind: KindList, Access: Stored, Default: List(),
		Help: "arguments appended to the run templates",
	},
	&Variable{
		Name: Tag, Kind: KindString, Access: Derived, Default: String(""),
		Help: "image tag and container name, derived from the file name",
	},
	&Variable{
		Name: QuadletDir, Kind: KindString, Access: Template, Default: String(""),
		Help: "directory receiving the generated quadlet unit",
	},
	&Variable{
		Name: BuildCommand, Kind: KindList, Access: Template,
		Default: List("podman", "build", "--tag", MarkerTag, MarkerContext),
		Help:    "build the saved Containerfile",
	},
	&Variable{
		Name: RunCommand, Kind: KindList, Access: Template,
		Default: List("podman", "run", "--detach", "--name", MarkerTag, MarkerCommand),
		Help:    "run the container in the background",
	},
	&Variable{
		Name: RunITCommand, Kind: KindList, Access: Template,
		Default: List("podman", "run", "-it", "--name", MarkerTag, MarkerCommand),
		Help:    "run the container attached to the terminal",
	},
	&Variable{
		Name: StopCommand, Kind: KindList, Access: Template,
		Default: List("podman", "stop", MarkerTime, MarkerTag),
		Help:    "stop the running container",
	},
	&Variable{
		Name: AttachCommand, Kind: KindList, Access: Template,
		Default: List("podman", "attach", MarkerTag),
		Help:    "attach to the running container",
	},
	&Variable{
		Name: ExecCommand, Kind: KindList, Access: Template,
		Default: List("podman", "exec", "-it", MarkerTag, MarkerArgs),
		Help:    "execute a command inside the running container",
	},
	&Variable{
		Name: PodletCommand, Kind: KindList, Access: Template,
		Default: List("podlet", "--install", MarkerRunCommand),
		Help:    "generate the quadlet unit with a local podlet",
	},
	&Variable{
		Name: PodletFallback, Kind: KindList, Access: Template,
		Default: List("podman", "run", "--rm", "ghcr.io/containers/podlet", "--install", MarkerRunCommand),
		Help:    "generate the quadlet unit when podlet is not installed",
	},
)

// Default returns the registry compiled into podded.
func Default() *Registry {
	return defaultRegistry
}

// Lookup finds a slot by its full name, ignoring case.
func (r *Registry) Lookup(name string) (*Variable, error) {
	if v, ok := r.byName[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return v, nil
	}
	return nil, &core.NotFoundError{Name: name}
}

// MustLookup is Lookup for names known at compile time.
func (r *Registry) MustLookup(name string) *Variable {
	v, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Printable returns every slot, derived ones included, in registry order.
func (r *Registry) Printable() []*Variable {
	out := make([]*Variable, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Editable returns the slots that may be written to the document.
func (r *Registry) Editable() []*Variable {
	return r.filter(func(v *Variable) bool { return v.Editable() })
}

// Stored returns the slots a well-formed document must contain.
func (r *Registry) Stored() []*Variable {
	return r.filter(func(v *Variable) bool { return v.Access == Stored })
}

// Names lists every slot name in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.ordered))
	for i, v := range r.ordered {
		names[i] = v.Name
	}
	return names
}

func (r *Registry) filter(keep func(*Variable) bool) []*Variable {
	var out []*Variable
	for _, v := range r.ordered {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
