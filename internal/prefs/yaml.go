package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLStore keeps every source's preferences in one YAML document:
//
//	nettruyen1s:
//	  overrideBaseUrl: https://example.org
type YAMLStore struct {
	mu   sync.Mutex
	path string
	data map[string]map[string]string
}

func OpenYAML(path string) (*YAMLStore, error) {
	s := &YAMLStore{path: path, data: map[string]map[string]string{}}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prefs: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &s.data); err != nil {
		return nil, fmt.Errorf("prefs: parse %s: %w", path, err)
	}
	if s.data == nil {
		s.data = map[string]map[string]string{}
	}

	return s, nil
}

func (s *YAMLStore) Get(source, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[source][key]
	return v, ok, nil
}

func (s *YAMLStore) Set(source, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[source] == nil {
		s.data[source] = map[string]string{}
	}
	s.data[source][key] = value

	return s.flush()
}

func (s *YAMLStore) flush() error {
	out, err := yaml.Marshal(s.data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	return os.WriteFile(s.path, out, 0644)
}

func (s *YAMLStore) Close() error { return nil }
