package feeders

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YamlFeeder is a feeder that reads YAML files
type YamlFeeder struct {
	Path string
}

// NewYamlFeeder creates a new YamlFeeder that reads from the specified YAML file
func NewYamlFeeder(filePath string) YamlFeeder {
	return YamlFeeder{Path: filePath}
}

// Feed decodes the YAML file into target.
func (y YamlFeeder) Feed(target any) error {
	data, err := os.ReadFile(y.Path)
	if err != nil {
		return wrapReadError("YAML", y.Path, err)
	}
	if err = yaml.Unmarshal(data, target); err != nil {
		return wrapDecodeError("YAML", y.Path, err)
	}
	return nil
}
