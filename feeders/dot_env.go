package feeders

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"strings"
)

// DotEnvFeeder reads KEY=VALUE pairs from a .env file into struct fields
// carrying an `env:"TAG"` tag. Variables set in the process environment take
// precedence over the file. The file never modifies the process environment.
type DotEnvFeeder struct {
	Path string
	// Prefix is prepended to every tag as PREFIX_TAG.
	Prefix string
}

// NewDotEnvFeeder creates a new DotEnvFeeder that reads from the specified .env file
func NewDotEnvFeeder(path string) DotEnvFeeder {
	return DotEnvFeeder{Path: path}
}

// Feed reads the .env file and populates the provided structure
func (f DotEnvFeeder) Feed(structure any) error {
	inputType := reflect.TypeOf(structure)
	if inputType == nil || inputType.Kind() != reflect.Pointer || inputType.Elem().Kind() != reflect.Struct {
		return ErrEnvInvalidStructure
	}

	vars, err := f.parse()
	if err != nil {
		return err
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return vars[key]
	}
	return processStructFields(reflect.ValueOf(structure).Elem(), strings.ToUpper(f.Prefix), "", lookup)
}

// parse reads the .env file into a map. Blank lines and # comments are
// skipped; values may be wrapped in single or double quotes.
func (f DotEnvFeeder) parse() (map[string]string, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, wrapReadError("dotenv", f.Path, err)
	}
	defer file.Close()

	vars := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w at line %d of %s", ErrDotEnvInvalidLine, lineNum, f.Path)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') || (value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		vars[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, wrapReadError("dotenv", f.Path, err)
	}
	return vars, nil
}
