package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileBackend keeps preferences in a YAML file.
type FileBackend struct {
	Path string
}

type fileContents struct {
	Preferences map[string]bool `yaml:"preferences"`
}

// Load reads the file. A missing file yields no preferences.
func (b *FileBackend) Load(_ context.Context) (map[string]bool, error) {
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", b.Path, err)
	}

	var contents fileContents
	if err := yaml.Unmarshal(data, &contents); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", b.Path, err)
	}
	if contents.Preferences == nil {
		contents.Preferences = map[string]bool{}
	}
	return contents.Preferences, nil
}

// Save writes the file atomically via a temp file and rename.
func (b *FileBackend) Save(_ context.Context, values map[string]bool) error {
	data, err := yaml.Marshal(fileContents{Preferences: values})
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.Path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
