// Package feeders populates configuration and manifest structures from YAML,
// TOML, JSON and .env files and from environment variables.
package feeders

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Feeder fills target, which must be a pointer, from a source.
type Feeder interface {
	Feed(target any) error
}

// ForFile returns the file feeder matching the extension of path.
func ForFile(path string) (Feeder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYamlFeeder(path), nil
	case ".toml":
		return NewTomlFeeder(path), nil
	case ".json":
		return NewJSONFeeder(path), nil
	case ".env":
		return NewDotEnvFeeder(path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
