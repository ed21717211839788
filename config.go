package modgraph

import (
	"fmt"

	"github.com/GoCodeAlone/modgraph/feeders"
)

// Config tunes resolution policy and event metadata.
type Config struct {
	// EventSource is the CloudEvents source attribute of emitted events.
	EventSource string `env:"EVENT_SOURCE" yaml:"eventSource" toml:"event_source" json:"eventSource"`

	// AllowGlobalShadowing lets a local provider take precedence over a global
	// provider with the same identity instead of failing the build.
	AllowGlobalShadowing bool `env:"ALLOW_GLOBAL_SHADOWING" yaml:"allowGlobalShadowing" toml:"allow_global_shadowing" json:"allowGlobalShadowing"`

	// WarnCaptiveDependencies logs a warning when a singleton depends on a
	// request-scoped provider.
	WarnCaptiveDependencies bool `env:"WARN_CAPTIVE_DEPENDENCIES" yaml:"warnCaptiveDependencies" toml:"warn_captive_dependencies" json:"warnCaptiveDependencies"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		EventSource:             "modgraph",
		WarnCaptiveDependencies: true,
	}
}

// LoadConfig feeds DefaultConfig through each feeder in order, so later
// feeders override earlier ones.
//
//	cfg, err := modgraph.LoadConfig(
//		feeders.NewYamlFeeder("modgraph.yaml"),
//		feeders.NewAffixedEnvFeeder("MODGRAPH", ""),
//	)
func LoadConfig(sources ...feeders.Feeder) (Config, error) {
	cfg := DefaultConfig()
	for _, f := range sources {
		if err := f.Feed(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cfg.EventSource == "" {
		cfg.EventSource = DefaultConfig().EventSource
	}
	return cfg, nil
}
