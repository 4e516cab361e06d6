package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"wodtimer/internal/platform"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Store is a flat key-value settings file. Every setter rewrites the whole file.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]interface{}
}

// ResolvePath returns the settings file location in the user config dir.
func ResolvePath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Join(configDir, settingsFileName), nil
}

// Open reads the settings file at path. A missing file yields an empty store and an
// empty path keeps the store in memory.
func Open(path string) (*Store, error) {
	store := &Store{
		path:   path,
		values: map[string]interface{}{},
	}
	if path == "" {
		return store, nil
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return store, fmt.Errorf("read settings file: %w", err)
	}

	var fileData map[string]interface{}
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return store, fmt.Errorf("parse settings yaml: %w", err)
	}
	for key, value := range fileData {
		store.values[key] = value
	}
	return store, nil
}

// Path returns the backing file, or "" for an in-memory store.
func (store *Store) Path() string {
	return store.path
}

// Int returns the integer stored under key, or fallback when it is missing or not a
// whole number.
func (store *Store) Int(key string, fallback int) int {
	store.mu.Lock()
	defer store.mu.Unlock()

	switch value := store.values[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case uint64:
		return int(value)
	case float64:
		if value == float64(int(value)) {
			return int(value)
		}
	}
	return fallback
}

// Bool returns the boolean stored under key, or fallback.
func (store *Store) Bool(key string, fallback bool) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	if value, ok := store.values[key].(bool); ok {
		return value
	}
	return fallback
}

// String returns the string stored under key, or fallback.
func (store *Store) String(key string, fallback string) string {
	store.mu.Lock()
	defer store.mu.Unlock()

	if value, ok := store.values[key].(string); ok {
		return value
	}
	return fallback
}

// SetInt stores value under key and saves the file.
func (store *Store) SetInt(key string, value int) error {
	return store.set(key, value)
}

// SetBool stores value under key and saves the file.
func (store *Store) SetBool(key string, value bool) error {
	return store.set(key, value)
}

// SetString stores value under key and saves the file.
func (store *Store) SetString(key string, value string) error {
	return store.set(key, value)
}

// Keys returns the stored keys in sorted order.
func (store *Store) Keys() []string {
	store.mu.Lock()
	defer store.mu.Unlock()

	keys := make([]string, 0, len(store.values))
	for key := range store.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (store *Store) set(key string, value interface{}) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.values[key] = value
	return store.saveLocked()
}

func (store *Store) saveLocked() error {
	if store.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(store.values)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
