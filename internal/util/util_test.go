package util

import (
	"archive/zip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoWithRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(srv.Client(), req, 3, time.Millisecond)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoWithRetryGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(srv.Client(), req, 2, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500 after 2 attempts")
}

func TestDoWithRetryHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(srv.Client(), req, 5, time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewHTTPClientHeaders(t *testing.T) {
	var ua, cookie atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua.Store(r.Header.Get("User-Agent"))
		cookie.Store(r.Header.Get("Cookie"))
	}))
	defer srv.Close()

	cookieFile := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(cookieFile, []byte("\n  cf_clearance=abc  \nignored=1\n"), 0o644))

	c, err := NewHTTPClient(HTTPClientOptions{
		Timeout:    5 * time.Second,
		UserAgent:  "mangasrc-test",
		Cookie:     "session=1",
		CookieFile: cookieFile,
		RateLimit:  100,
	})
	require.NoError(t, err)

	resp, err := c.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "mangasrc-test", ua.Load())
	assert.Equal(t, "session=1; cf_clearance=abc", cookie.Load())

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err = c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "mangasrc-test", ua.Load())
	assert.Empty(t, req.Header.Get("User-Agent"), "caller's request is left untouched")
	assert.Empty(t, req.Header.Get("Cookie"))
}

func TestPickUserAgent(t *testing.T) {
	assert.Equal(t, "custom", PickUserAgent("custom"))
	assert.True(t, strings.HasPrefix(PickUserAgent(""), "Mozilla/5.0"))
}

func TestCreateCBZ(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"page_002.jpg", "page_001.jpg"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
		files = append(files, p)
	}

	out := filepath.Join(dir, "0001_chapter_1.cbz")
	require.NoError(t, CreateCBZ(files, out, &ComicInfo{Title: "Chapter 1", Series: "Đảo Hải Tặc", Number: "1"}))

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"ComicInfo.xml", "page_001.jpg", "page_002.jpg"}, names)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	info, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)

	assert.Contains(t, string(info), "<Series>Đảo Hải Tặc</Series>")
	assert.Contains(t, string(info), "<PageCount>2</PageCount>")
	assert.Equal(t, filepath.Join(dir, "page_002.jpg"), files[0], "input slice is not reordered")
}

func TestCreateCBZWithoutInfo(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "page_001.jpg")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))

	out := filepath.Join(dir, "plain.cbz")
	require.NoError(t, CreateCBZ([]string{p}, out, nil))

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()

	require.Len(t, zr.File, 1)
	assert.Equal(t, "page_001.jpg", zr.File[0].Name)
}

func TestCreateCBZMissingFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "page_001.jpg")
	require.NoError(t, os.WriteFile(good, []byte("x"), 0o644))

	out := filepath.Join(dir, "x.cbz")
	err := CreateCBZ([]string{good, filepath.Join(dir, "page_002.jpg")}, out, &ComicInfo{Title: "x"})
	assert.Error(t, err)

	assert.NoFileExists(t, out)
	assert.NoFileExists(t, out+".part")
}

func TestHuman(t *testing.T) {
	assert.Equal(t, "512 B", Human(512))
	assert.Equal(t, "1.50 KB", Human(1536))
	assert.Equal(t, "2.00 MB", Human(2<<20))
	assert.Equal(t, "3.00 GB", Human(3<<30))
}

type quietLog struct{ removed []string }

func (l *quietLog) Infof(_ string, args ...any) {
	l.removed = append(l.removed, args[0].(string))
}

func (l *quietLog) Errorf(string, ...any) {}

func TestCleanupUnfinishedTempFolders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "0001_a_tmp"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "keep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0002_b_tmp"), nil, 0o644))

	log := &quietLog{}
	CleanupUnfinishedTempFolders(dir, log)

	assert.NoDirExists(t, filepath.Join(dir, "0001_a_tmp"))
	assert.DirExists(t, filepath.Join(dir, "keep"))
	assert.FileExists(t, filepath.Join(dir, "0002_b_tmp"))
	assert.Len(t, log.removed, 1)
}
