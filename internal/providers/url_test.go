package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureURL(t *testing.T) {
	assert.Equal(t, "https://img.example.org/1.jpg", SecureURL("//img.example.org/1.jpg"))
	assert.Equal(t, "http://img.example.org/1.jpg", SecureURL("http://img.example.org/1.jpg"))
	assert.Equal(t, "/local.jpg", SecureURL("/local.jpg"))
}

func TestRelativeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://nettruyen1s.com/truyen-tranh/one-piece", "/truyen-tranh/one-piece"},
		{"https://nettruyen1s.com/truyen-tranh/a?page=2#top", "/truyen-tranh/a?page=2#top"},
		{"/truyen-tranh/b", "/truyen-tranh/b"},
		{"https://nettruyen1s.com", "/"},
		{"  /padded  ", "/padded"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeURL(tt.in), tt.in)
	}
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://a.example/x/y", ResolveURL("https://a.example", "/x/y"))
	assert.Equal(t, "https://b.example/z", ResolveURL("https://a.example", "https://b.example/z"))
	assert.Equal(t, "https://a.example", ResolveURL("https://a.example", ""))
}

func TestNewGETSetsReferer(t *testing.T) {
	req, err := NewGET(context.Background(), "https://a.example/x", "https://a.example/")
	require.NoError(t, err)

	assert.Equal(t, "https://a.example/", req.Header.Get("Referer"))
	assert.Equal(t, "GET", req.Method)
}

type countingPrefs struct {
	values map[string]string
	reads  int
}

func (p *countingPrefs) String(key, def string) string {
	p.reads++
	if v, ok := p.values[key]; ok {
		return v
	}

	return def
}

func (p *countingPrefs) SetString(key, value string) error {
	p.values[key] = value
	return nil
}

func TestBaseURL(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		b := NewBaseURL(&countingPrefs{values: map[string]string{}}, "https://site.example")
		assert.Equal(t, "https://site.example", b.Get())
	})

	t.Run("override trims trailing slash", func(t *testing.T) {
		p := &countingPrefs{values: map[string]string{BaseURLPrefKey: "https://mirror.example/"}}
		b := NewBaseURL(p, "https://site.example")
		assert.Equal(t, "https://mirror.example", b.Get())
	})

	t.Run("empty override falls back", func(t *testing.T) {
		p := &countingPrefs{values: map[string]string{BaseURLPrefKey: "  "}}
		b := NewBaseURL(p, "https://site.example")
		assert.Equal(t, "https://site.example", b.Get())
	})

	t.Run("read once", func(t *testing.T) {
		p := &countingPrefs{values: map[string]string{}}
		b := NewBaseURL(p, "https://site.example")

		first := b.Get()
		p.values[BaseURLPrefKey] = "https://later.example"

		assert.Equal(t, first, b.Get())
		assert.Equal(t, 1, p.reads)
	})

	t.Run("nil prefs", func(t *testing.T) {
		assert.Equal(t, "https://site.example", NewBaseURL(nil, "https://site.example").Get())
	})
}

func TestBaseURLPreference(t *testing.T) {
	p := BaseURLPreference("https://site.example")

	assert.Equal(t, BaseURLPrefKey, p.Key)
	assert.Equal(t, "https://site.example", p.Default)
	assert.Equal(t, "Default: https://site.example", p.DialogMessage)
	assert.Equal(t, RestartNotice, p.ChangeNotice)
}
