package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PropertyFile is a property store backed by a flat YAML mapping:
//
//	shroud_zones: |
//	  0xD2A80024 [100.684067 87.626068 20.004999] 0.015540 0 0 0.999879|10|40
//
// The file is re-read on every lookup so edits apply on the next reload.
type PropertyFile struct {
	path string
}

// NewPropertyFile returns a store reading path.
func NewPropertyFile(path string) *PropertyFile {
	return &PropertyFile{path: path}
}

// Path returns the backing file path.
func (f *PropertyFile) Path() string { return f.path }

// GetString returns the value stored under key, or def when the file or
// the key is missing.
func (f *PropertyFile) GetString(_ context.Context, key, def string) (string, error) {
	props, err := f.load()
	if err != nil {
		return def, err
	}
	if v, ok := props[key]; ok {
		return v, nil
	}
	return def, nil
}

func (f *PropertyFile) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading properties %s: %w", f.path, err)
	}

	var props map[string]string
	if err := yaml.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("parsing properties %s: %w", f.path, err)
	}
	return props, nil
}
