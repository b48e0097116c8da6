package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brogergvhs/mangasrc/internal/util"
)

// Client runs a source's requests through the host HTTP client and hands the
// bodies to the source's parsers. Retries live here, never in a source.
type Client struct {
	src      Source
	http     Doer
	attempts int
	backoff  time.Duration
}

func NewClient(src Source, c Doer, attempts int, backoff time.Duration) *Client {
	if attempts < 1 {
		attempts = 1
	}

	return &Client{src: src, http: c, attempts: attempts, backoff: backoff}
}

func (c *Client) Source() Source { return c.src }

func (c *Client) Popular(ctx context.Context, page int) (MangasPage, error) {
	req, err := c.src.PopularRequest(ctx, page)
	if err != nil {
		return MangasPage{}, err
	}

	return fetch(c, req, c.src.ParseMangaList)
}

func (c *Client) Latest(ctx context.Context, page int) (MangasPage, error) {
	if !c.src.SupportsLatest() {
		return MangasPage{}, Unsupported(c.src.ID(), "latest updates")
	}

	req, err := c.src.LatestRequest(ctx, page)
	if err != nil {
		return MangasPage{}, err
	}

	return fetch(c, req, c.src.ParseMangaList)
}

func (c *Client) Search(ctx context.Context, page int, query string, filters FilterList) (MangasPage, error) {
	req, err := c.src.SearchRequest(ctx, page, query, filters)
	if err != nil {
		return MangasPage{}, err
	}

	return fetch(c, req, c.src.ParseMangaList)
}

func (c *Client) Details(ctx context.Context, m Manga) (MangaDetail, error) {
	req, err := c.src.DetailsRequest(ctx, m)
	if err != nil {
		return MangaDetail{}, err
	}

	return fetch(c, req, c.src.ParseDetails)
}

func (c *Client) Chapters(ctx context.Context, m Manga) ([]Chapter, error) {
	req, err := c.src.ChapterListRequest(ctx, m)
	if err != nil {
		return nil, err
	}

	return fetch(c, req, c.src.ParseChapterList)
}

func (c *Client) Pages(ctx context.Context, ch Chapter) ([]Page, error) {
	req, err := c.src.PageListRequest(ctx, ch)
	if err != nil {
		return nil, err
	}

	return fetch(c, req, c.src.ParsePageList)
}

func fetch[T any](c *Client, req *http.Request, parse func(io.Reader) (T, error)) (T, error) {
	var zero T

	resp, err := util.DoWithRetry(c.http, req, c.attempts, c.backoff)
	if err != nil {
		return zero, fmt.Errorf("%s: %s: %w", c.src.ID(), req.URL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return zero, fmt.Errorf("%s: %s: HTTP %d", c.src.ID(), req.URL, resp.StatusCode)
	}

	out, err := parse(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("%s: parse %s: %w", c.src.ID(), req.URL, err)
	}

	return out, nil
}
