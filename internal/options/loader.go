package options

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = ".op-overloading.yaml"

// LoadFile loads and parses a YAML options file from the given path.
func LoadFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read options file %s: %w", path, err)
	}

	o, err := Parse(data)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}

	return o, nil
}

// Parse parses YAML data into Options. Unknown keys are rejected.
func Parse(data []byte) (Options, error) {
	var o Options

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&o)
	if err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("failed to parse options YAML: %w", err)
	}

	return o, nil
}

// Find loads DefaultFile from dir. A missing file yields empty Options.
func Find(dir string) (Options, error) {
	path := filepath.Join(dir, DefaultFile)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Options{}, nil
	}

	return LoadFile(path)
}

// Marshal serializes Options to YAML.
func Marshal(o Options) ([]byte, error) {
	return yaml.Marshal(o)
}
