// Package config loads podded's own settings: which binaries to drive, where
// quadlet units go and how the CLI behaves. Document slots are not part of
// this configuration; they live in the document itself.
package config

import (
	"context"
	"time"
)

// Config holds every tool setting. Precedence, lowest first: defaults, the
// YAML file, the environment (PODDED_*), CLI flags.
type Config struct {
	Runtime RuntimeConfig `koanf:"runtime" json:"runtime" yaml:"runtime" validate:"required"`
	Service ServiceConfig `koanf:"service" json:"service" yaml:"service" validate:"required"`
	Quadlet QuadletConfig `koanf:"quadlet" json:"quadlet" yaml:"quadlet"`
	Editor  EditorConfig  `koanf:"editor"  json:"editor"  yaml:"editor"`
	Update  UpdateConfig  `koanf:"update"  json:"update"  yaml:"update"  validate:"required"`
	Log     LogConfig     `koanf:"log"     json:"log"     yaml:"log"`
	CLI     CLIConfig     `koanf:"cli"     json:"cli"     yaml:"cli"`
}

// RuntimeConfig names the container engine used outside document templates.
type RuntimeConfig struct {
	// Binary runs `container inspect` for status.
	Binary string `koanf:"binary" json:"binary" yaml:"binary" env:"PODDED_RUNTIME_BINARY" validate:"required"`
}

// ServiceConfig drives the systemd service manager.
type ServiceConfig struct {
	Binary string `koanf:"binary" json:"binary" yaml:"binary" env:"PODDED_SERVICE_BINARY" validate:"required"`
	Scope  string `koanf:"scope"  json:"scope"  yaml:"scope"  env:"PODDED_SERVICE_SCOPE"  validate:"oneof=user system"`
}

// QuadletConfig sets the unit directory used when a document has no
// QUADLET_DIR of its own.
type QuadletConfig struct {
	Dir string `koanf:"dir" json:"dir" yaml:"dir" env:"PODDED_QUADLET_DIR" validate:"omitempty,home_path"`
}

// EditorConfig overrides $VISUAL and $EDITOR for `edit`.
type EditorConfig struct {
	Command string `koanf:"command" json:"command" yaml:"command" env:"PODDED_EDITOR"`
}

// UpdateConfig points `version` at the published template.
type UpdateConfig struct {
	URL     string        `koanf:"url"     json:"url"     yaml:"url"     env:"PODDED_UPDATE_URL"     validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" json:"timeout" yaml:"timeout" env:"PODDED_UPDATE_TIMEOUT"`
}

type LogConfig struct {
	Level string `koanf:"level" json:"level" yaml:"level" env:"PODDED_LOG_LEVEL" validate:"oneof=debug info warn error disabled"`
	JSON  bool   `koanf:"json"  json:"json"  yaml:"json"  env:"PODDED_LOG_JSON"`
}

// CLIConfig controls terminal behaviour.
type CLIConfig struct {
	Color string `koanf:"color" json:"color" yaml:"color" env:"PODDED_COLOR" validate:"oneof=auto always never"`
	// Interactive enables the huh confirmation form; stdin prompts are used
	// otherwise.
	Interactive bool `koanf:"interactive" json:"interactive" yaml:"interactive" env:"PODDED_INTERACTIVE"`
}

// DefaultUpdateURL serves the canonical document template.
const DefaultUpdateURL = "https://raw.githubusercontent.com/podded/podded/main/engine/script/template.podded"

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{Binary: "podman"},
		Service: ServiceConfig{Binary: "systemctl", Scope: "user"},
		Update: UpdateConfig{
			URL:     DefaultUpdateURL,
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "warn"},
		CLI: CLIConfig{Color: "auto", Interactive: true},
	}
}

// Service loads and validates configuration.
type Service interface {
	Load(ctx context.Context, sources ...Source) (*Config, error)
	Validate(config *Config) error
	// GetSource reports which source provided a key.
	GetSource(key string) SourceType
}

// Source is one configuration layer.
type Source interface {
	Load() (map[string]any, error)
	Type() SourceType
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Metadata records where every key came from.
type Metadata struct {
	Sources  map[string]SourceType `json:"sources"`
	LoadedAt time.Time             `json:"loaded_at"`
}
