package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ArticleBrowser/internal/ports"
)

// FilePreferenceStore keeps user preferences in a small YAML file.
type FilePreferenceStore struct {
	path string
}

var _ ports.PreferenceStore = (*FilePreferenceStore)(nil)

type preferences struct {
	DarkMode bool `yaml:"darkMode"`
}

// NewFilePreferenceStore stores preferences at path.
func NewFilePreferenceStore(path string) *FilePreferenceStore {
	return &FilePreferenceStore{path: path}
}

// DarkMode returns the stored preference; a missing file means false.
func (s *FilePreferenceStore) DarkMode() (bool, error) {
	prefs, err := s.read()
	if err != nil {
		return false, err
	}
	return prefs.DarkMode, nil
}

// SetDarkMode writes the preference, creating the file if needed.
func (s *FilePreferenceStore) SetDarkMode(enabled bool) error {
	prefs, err := s.read()
	if err != nil {
		return err
	}
	prefs.DarkMode = enabled

	raw, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

func (s *FilePreferenceStore) read() (preferences, error) {
	var prefs preferences
	if s.path == "" {
		return prefs, errors.New("preferences path is not configured")
	}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("read preferences: %w", err)
	}
	if err := yaml.Unmarshal(raw, &prefs); err != nil {
		return prefs, fmt.Errorf("parse preferences: %w", err)
	}
	return prefs, nil
}
