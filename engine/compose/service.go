package compose

// ServiceManager composes the fixed systemctl invocations.
type ServiceManager struct {
	Binary string
	// Scope is "user" or "system".
	Scope string
}

// DefaultServiceManager is `systemctl --user`.
var DefaultServiceManager = ServiceManager{Binary: "systemctl", Scope: "user"}

func (m ServiceManager) base() []string {
	bin := m.Binary
	if bin == "" {
		bin = DefaultServiceManager.Binary
	}
	scope := m.Scope
	if scope == "" {
		scope = DefaultServiceManager.Scope
	}
	return []string{bin, "--" + scope}
}

func (m ServiceManager) DaemonReload() []string {
	return append(m.base(), "daemon-reload")
}

func (m ServiceManager) Start(tag string) []string {
	return append(m.base(), "start", tag)
}

func (m ServiceManager) Stop(tag string) []string {
	return append(m.base(), "stop", tag)
}

func (m ServiceManager) Status(tag string) []string {
	return append(m.base(), "status", tag)
}

// Inspect is the container runtime query `status` parses.
func Inspect(runtime, tag string) []string {
	if runtime == "" {
		runtime = "podman"
	}
	return []string{runtime, "container", "inspect", tag}
}
