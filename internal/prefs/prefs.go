// Package prefs persists per-source user preferences such as the base URL
// override. Stores are keyed by source id and preference key.
package prefs

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

type Store interface {
	Get(source, key string) (string, bool, error)
	Set(source, key, value string) error
	Close() error
}

const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Open returns the store for backend at path. An empty backend means YAML.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendYAML:
		return OpenYAML(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown prefs backend %q", backend)
	}
}

// DefaultPath places the store next to the config profiles.
func DefaultPath(root, backend string) string {
	if backend == BackendSQLite {
		return filepath.Join(root, "prefs.db")
	}

	return filepath.Join(root, "prefs.yaml")
}

// Scoped binds a store to one source so it satisfies providers.Preferences.
type Scoped struct {
	store  Store
	source string
	log    interface{ Debugf(string, ...any) }
}

func For(store Store, source string, log interface{ Debugf(string, ...any) }) *Scoped {
	return &Scoped{store: store, source: source, log: log}
}

// String returns the stored value or def. A blank value counts as unset and
// read failures degrade to def.
func (s *Scoped) String(key, def string) string {
	v, ok, err := s.store.Get(s.source, key)
	if err != nil {
		if s.log != nil {
			s.log.Debugf("prefs: read %s.%s: %v\n", s.source, key, err)
		}
		return def
	}
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}

	return v
}

func (s *Scoped) SetString(key, value string) error {
	return s.store.Set(s.source, key, value)
}

type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: map[string]map[string]string{}}
}

func (m *Memory) Get(source, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[source][key]
	return v, ok, nil
}

func (m *Memory) Set(source, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[source] == nil {
		m.data[source] = map[string]string{}
	}
	m.data[source][key] = value

	return nil
}

func (m *Memory) Close() error { return nil }
