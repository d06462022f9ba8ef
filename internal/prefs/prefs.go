// Package prefs is a small file-backed key-value store for local state:
// the theme preference and an opaque session token.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Storage keys.
const (
	ThemeKey        = "@taskmaster_theme"
	SessionTokenKey = "@taskmaster_session_token"
)

// Theme is the display theme preference.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses a theme name (case-insensitive).
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("invalid theme: %s (use light or dark)", s)
}

// Store persists string values in a single JSON file.
// A Store is safe for concurrent use within one process.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a store backed by the file at path.
// The file is created on first write.
func Open(path string) *Store {
	return &Store{path: path}
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = value
	return s.save(m)
}

// Clear removes all stored values.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear storage: %w", err)
	}
	return nil
}

// Theme returns the saved theme, or ThemeLight if none is saved or the
// store cannot be read.
func (s *Store) Theme() Theme {
	v, ok, err := s.Get(ThemeKey)
	if err != nil || !ok {
		return ThemeLight
	}
	theme, err := ParseTheme(v)
	if err != nil {
		return ThemeLight
	}
	return theme
}

// SetTheme saves the theme preference.
func (s *Store) SetTheme(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	return s.Set(ThemeKey, string(theme))
}

// SessionToken returns the saved session token. Read errors are reported
// as a missing token.
func (s *Store) SessionToken() (string, bool) {
	v, ok, err := s.Get(SessionTokenKey)
	if err != nil || !ok {
		return "", false
	}
	return v, true
}

// SetSessionToken saves an opaque session token.
func (s *Store) SetSessionToken(token string) error {
	return s.Set(SessionTokenKey, token)
}

func (s *Store) load() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read storage: %w", err)
	}
	m := map[string]string{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode storage: %w", err)
	}
	return m, nil
}

func (s *Store) save(m map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0600); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	return nil
}
