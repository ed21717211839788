package feeders

import (
	"errors"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// TomlFeeder is a feeder that reads TOML files
type TomlFeeder struct {
	Path string
}

// NewTomlFeeder creates a new TomlFeeder that reads from the specified TOML file
func NewTomlFeeder(filePath string) TomlFeeder {
	return TomlFeeder{Path: filePath}
}

// Feed decodes the TOML file into target.
func (t TomlFeeder) Feed(target any) error {
	if _, err := toml.DecodeFile(t.Path, target); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return wrapReadError("TOML", t.Path, err)
		}
		return wrapDecodeError("TOML", t.Path, err)
	}
	return nil
}
