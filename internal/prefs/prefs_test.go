package prefs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Get("nettruyen1s", "overrideBaseUrl")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("nettruyen1s", "overrideBaseUrl", "https://mirror.example"))
	require.NoError(t, s.Set("cuutruyen", "overrideBaseUrl", "https://other.example"))

	v, ok, err := s.Get("nettruyen1s", "overrideBaseUrl")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://mirror.example", v)

	require.NoError(t, s.Set("nettruyen1s", "overrideBaseUrl", ""))
	v, ok, err = s.Get("nettruyen1s", "overrideBaseUrl")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, v)

	v, _, err = s.Get("cuutruyen", "overrideBaseUrl")
	require.NoError(t, err)
	assert.Equal(t, "https://other.example", v)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestYAMLStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	s, err := OpenYAML(path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	reopened, err := OpenYAML(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get("cuutruyen", "overrideBaseUrl")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://other.example", v)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("cuutruyen", "overrideBaseUrl")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://other.example", v)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("", DefaultPath(dir, ""))
	require.NoError(t, err)
	assert.IsType(t, &YAMLStore{}, s)

	s, err = Open(BackendSQLite, DefaultPath(dir, BackendSQLite))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open("etcd", dir)
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("root", "prefs.yaml"), DefaultPath("root", BackendYAML))
	assert.Equal(t, filepath.Join("root", "prefs.db"), DefaultPath("root", BackendSQLite))
}

type failingStore struct{ *Memory }

func (failingStore) Get(string, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

type recordLog struct{ n int }

func (l *recordLog) Debugf(string, ...any) { l.n++ }

func TestScoped(t *testing.T) {
	store := NewMemory()
	var p providers.Preferences = For(store, "nettruyen1s", nil)

	assert.Equal(t, "def", p.String("overrideBaseUrl", "def"))
	require.NoError(t, p.SetString("overrideBaseUrl", "https://mirror.example"))
	assert.Equal(t, "https://mirror.example", p.String("overrideBaseUrl", "def"))

	other := For(store, "cuutruyen", nil)
	assert.Equal(t, "def", other.String("overrideBaseUrl", "def"), "values are scoped per source")

	require.NoError(t, p.SetString("overrideBaseUrl", ""))
	assert.Equal(t, "def", p.String("overrideBaseUrl", "def"), "blank value reads as the default")
}

func TestScopedReadErrorFallsBack(t *testing.T) {
	log := &recordLog{}
	p := For(failingStore{NewMemory()}, "nettruyen1s", log)

	assert.Equal(t, "def", p.String("overrideBaseUrl", "def"))
	assert.Equal(t, 1, log.n)
}
