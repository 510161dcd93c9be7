package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML configuration file. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func LoadFile(fs afero.Fs, path string) (*FileConfig, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	fc := &FileConfig{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse config file %s: %w", ErrInvalidConfig, path, err)
	}

	return fc, nil
}
