package quadlet

import (
	"context"
	"errors"
	"fmt"

	"github.com/podded/podded/engine/compose"
	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/runtime"
	"github.com/tidwall/gjson"
)

// ContainerState is the part of `podman container inspect` status shows.
type ContainerState struct {
	ID        string
	Image     string
	Status    string
	Running   bool
	StartedAt string
	ExitCode  int64
}

// ParseInspect reads the first container of an inspect document.
func ParseInspect(data string) (ContainerState, bool) {
	if !gjson.Valid(data) {
		return ContainerState{}, false
	}
	first := gjson.Get(data, "0")
	if !first.Exists() {
		return ContainerState{}, false
	}
	image := first.Get("ImageName").String()
	if image == "" {
		image = first.Get("Config.Image").String()
	}
	id := first.Get("Id").String()
	if len(id) > 12 {
		id = id[:12]
	}
	return ContainerState{
		ID:        id,
		Image:     image,
		Status:    first.Get("State.Status").String(),
		Running:   first.Get("State.Running").Bool(),
		StartedAt: first.Get("State.StartedAt").String(),
		ExitCode:  first.Get("State.ExitCode").Int(),
	}, true
}

func (st ContainerState) String() string {
	switch {
	case st.Running:
		return fmt.Sprintf("%s (%s) running since %s, image %s", st.ID, st.Status, st.StartedAt, st.Image)
	case st.Status == "exited":
		return fmt.Sprintf("%s exited with %d, image %s", st.ID, st.ExitCode, st.Image)
	default:
		return fmt.Sprintf("%s %s, image %s", st.ID, st.Status, st.Image)
	}
}

// Status prints the container state and then the service status.
func (s *Service) Status(ctx context.Context, c *compose.Composer) error {
	tag := c.Tag()
	data, err := runtime.AnnounceOutput(ctx, s.runner, s.out, compose.Inspect(s.settings.Runtime, tag))
	switch {
	case err == nil:
		if st, ok := ParseInspect(data); ok {
			fmt.Fprintf(s.out, "Container %s: %s\n", tag, st)
		} else {
			fmt.Fprintf(s.out, "Container %s: no container\n", tag)
		}
	case errors.Is(err, core.ErrExternalProcess):
		fmt.Fprintf(s.out, "Container %s: no container\n", tag)
	default:
		return err
	}
	return runtime.Announce(ctx, s.runner, s.out, s.settings.Manager.Status(tag), s.stdio)
}
