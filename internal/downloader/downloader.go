// Package downloader fetches a chapter's page images to disk.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/brogergvhs/mangasrc/internal/providers"
)

const (
	attempts    = 3
	pageTimeout = 30 * time.Second
)

// Progress receives per-chapter download progress.
type Progress interface {
	Update(done, total int, bytes int64)
	MarkDone()
}

type Downloader struct {
	client     providers.Doer
	skipBroken bool
	retryDelay time.Duration
}

func New(c providers.Doer, skipBroken bool) *Downloader {
	return &Downloader{
		client:     c,
		skipBroken: skipBroken,
		retryDelay: time.Second,
	}
}

// tracker serialises progress reports from concurrent page downloads.
type tracker struct {
	mu    sync.Mutex
	ph    Progress
	done  int
	total int
	bytes int64
}

func (t *tracker) addBytes(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.bytes += n
	t.ph.Update(t.done, t.total, t.bytes)
}

func (t *tracker) pageDone() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.done++
	t.ph.Update(t.done, t.total, t.bytes)
}

func (t *tracker) written() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.bytes
}

// DownloadPages fetches every page image into folder as page_NNN.ext using
// up to workers goroutines and returns the written files in page order.
// GIFs are skipped. Failed pages are reported after the rest finish unless
// the downloader skips broken pages.
func (d *Downloader) DownloadPages(
	ctx context.Context,
	pages []providers.Page,
	folder string,
	referer string,
	workers int,
	ph Progress,
) ([]string, int64, error) {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, 0, err
	}

	tr := &tracker{ph: ph, total: len(pages)}
	ph.Update(0, len(pages), 0)
	defer ph.MarkDone()

	workers = min(max(workers, 1), max(len(pages), 1))
	results := make([]string, len(pages))
	errs := make([]error, len(pages))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = d.fetchPage(ctx, pages[i], folder, referer, tr)
				tr.pageDone()
			}
		}()
	}

feed:
	for i := range pages {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	files := make([]string, 0, len(pages))
	for _, f := range results {
		if f != "" {
			files = append(files, f)
		}
	}

	if err := ctx.Err(); err != nil {
		return files, tr.written(), err
	}

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 && !d.skipBroken {
		return files, tr.written(), fmt.Errorf("failed %d/%d images (use --skip-broken to continue): %w",
			len(failed), len(pages), errors.Join(failed...))
	}

	return files, tr.written(), nil
}

// fetchPage returns an empty path for skipped pages.
func (d *Downloader) fetchPage(ctx context.Context, pg providers.Page, folder, referer string, tr *tracker) (string, error) {
	ext := imageExt(pg.ImageURL)
	if ext == ".gif" {
		return "", nil
	}

	out := filepath.Join(folder, fmt.Sprintf("page_%03d%s", pg.Index+1, ext))

	// a retry restarts at zero; only bytes past the best attempt are counted
	var best int64
	progress := func(done int64) {
		if delta := done - best; delta > 0 {
			best = done
			tr.addBytes(delta)
		}
	}

	if err := d.downloadWithRetry(ctx, pg.ImageURL, out, referer, progress); err != nil {
		return "", fmt.Errorf("page %d: %w", pg.Index+1, err)
	}

	return out, nil
}

func imageExt(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}

	ext := strings.ToLower(path.Ext(p))
	if ext == "" || len(ext) > 5 {
		return ".jpg"
	}

	return ext
}

func (d *Downloader) downloadWithRetry(ctx context.Context, target, output, referer string, progress func(int64)) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = d.download(ctx, target, output, referer, progress); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * d.retryDelay):
		}
	}

	return err
}

func (d *Downloader) download(ctx context.Context, target, output, referer string, progress func(int64)) error {
	ctx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Referer", referer)
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, _ := mime.ParseMediaType(ct); !strings.HasPrefix(mt, "image/") {
			return fmt.Errorf("unexpected MIME: %s", ct)
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}

	_, err = copyWithProgress(f, resp.Body, progress)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(output)
	}

	return err
}
