package feeders

import (
	"encoding/json"
	"os"
)

// JSONFeeder is a feeder that reads JSON files
type JSONFeeder struct {
	Path string
}

// NewJSONFeeder creates a new JSONFeeder that reads from the specified JSON file
func NewJSONFeeder(filePath string) JSONFeeder {
	return JSONFeeder{Path: filePath}
}

// Feed decodes the JSON file into target.
func (j JSONFeeder) Feed(target any) error {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return wrapReadError("JSON", j.Path, err)
	}
	if err = json.Unmarshal(data, target); err != nil {
		return wrapDecodeError("JSON", j.Path, err)
	}
	return nil
}
