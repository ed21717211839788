package feeders

import (
	"errors"
	"fmt"
)

// Static error definitions for feeders
var (
	ErrUnsupportedFormat       = errors.New("unsupported file format")
	ErrEnvInvalidStructure     = errors.New("env: invalid structure")
	ErrEnvEmptyPrefixAndSuffix = errors.New("env: prefix or suffix cannot be empty")
	ErrEnvFieldCannotBeSet     = errors.New("env: field cannot be set")
	ErrDotEnvInvalidLine       = errors.New("dotenv: invalid line format")
)

func wrapReadError(fileType, path string, err error) error {
	return fmt.Errorf("failed to read %s file %s: %w", fileType, path, err)
}

func wrapDecodeError(fileType, path string, err error) error {
	return fmt.Errorf("failed to decode %s file %s: %w", fileType, path, err)
}
