package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const TuningFile = "tuning.yaml"

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load reads dir/tuning.yaml over the built-in defaults and validates the
// result. A missing file yields the defaults. Difficulty entries replace the
// default entry for that level as a whole.
func Load(dir string) (*Tuning, error) {
	t := Default()
	path := filepath.Join(dir, TuningFile)
	if err := loadYAML(path, t); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfiguration, path, err)
		}
	}
	if t.DefaultDifficulty != "" {
		d, err := ParseDifficulty(string(t.DefaultDifficulty))
		if err != nil {
			return nil, err
		}
		t.DefaultDifficulty = d
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
