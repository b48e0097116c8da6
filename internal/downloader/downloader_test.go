package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordProgress struct {
	mu       sync.Mutex
	lastDone int
	total    int
	bytes    int64
	done     bool
}

func (p *recordProgress) Update(done, total int, bytes int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastDone, p.total, p.bytes = done, total, bytes
}

func (p *recordProgress) MarkDone() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done = true
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.jpg":
			http.NotFound(w, r)
		case "/page.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>"))
		default:
			assert.Equal(t, "https://site.example/", r.Header.Get("Referer"))
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("jpeg:" + r.URL.Path))
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newTestDownloader(c providers.Doer, skipBroken bool) *Downloader {
	d := New(c, skipBroken)
	d.retryDelay = 0
	return d
}

func TestDownloadPages(t *testing.T) {
	srv := imageServer(t)
	folder := filepath.Join(t.TempDir(), "0001_chapter_1_tmp")

	pages := []providers.Page{
		{Index: 0, ImageURL: srv.URL + "/a.jpg"},
		{Index: 1, ImageURL: srv.URL + "/b.png?token=1"},
		{Index: 2, ImageURL: srv.URL + "/c"},
		{Index: 3, ImageURL: srv.URL + "/spinner.gif"},
	}

	ph := &recordProgress{}
	files, bytes, err := newTestDownloader(srv.Client(), false).
		DownloadPages(context.Background(), pages, folder, "https://site.example/", 2, ph)
	require.NoError(t, err)

	sort.Strings(files)
	assert.Equal(t, []string{
		filepath.Join(folder, "page_001.jpg"),
		filepath.Join(folder, "page_002.png"),
		filepath.Join(folder, "page_003.jpg"),
	}, files)

	b, err := os.ReadFile(files[1])
	require.NoError(t, err)
	assert.Equal(t, "jpeg:/b.png", string(b))

	assert.Positive(t, bytes)
	assert.True(t, ph.done)
	assert.Equal(t, 4, ph.lastDone)
	assert.Equal(t, 4, ph.total)
}

func TestDownloadPagesFailures(t *testing.T) {
	srv := imageServer(t)
	pages := []providers.Page{
		{Index: 0, ImageURL: srv.URL + "/ok.jpg"},
		{Index: 1, ImageURL: srv.URL + "/missing.jpg"},
		{Index: 2, ImageURL: srv.URL + "/page.html"},
	}

	t.Run("strict", func(t *testing.T) {
		files, _, err := newTestDownloader(srv.Client(), false).
			DownloadPages(context.Background(), pages, t.TempDir(), "https://site.example/", 3, &recordProgress{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed 2/3 images")
		assert.Len(t, files, 1)
	})

	t.Run("skip broken", func(t *testing.T) {
		files, _, err := newTestDownloader(srv.Client(), true).
			DownloadPages(context.Background(), pages, t.TempDir(), "https://site.example/", 3, &recordProgress{})
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})
}

func TestDownloadPagesCancelled(t *testing.T) {
	srv := imageServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ph := &recordProgress{}
	_, _, err := newTestDownloader(srv.Client(), false).
		DownloadPages(ctx, []providers.Page{{ImageURL: srv.URL + "/a.jpg"}}, t.TempDir(), "https://site.example/", 1, ph)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, ph.done)
}

func TestImageExt(t *testing.T) {
	assert.Equal(t, ".webp", imageExt("https://img.example/1.WEBP"))
	assert.Equal(t, ".png", imageExt("https://img.example/1.png?x=y.jpg"))
	assert.Equal(t, ".jpg", imageExt("https://img.example/noext"))
	assert.Equal(t, ".jpg", imageExt("https://img.example/file.verylongext"))
}
