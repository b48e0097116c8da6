package cuutruyen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type debugLog struct{ lines []string }

func (l *debugLog) Debugf(format string, args ...any) {
	l.lines = append(l.lines, format)
}

func TestParseMangaListArray(t *testing.T) {
	body := `{
	  "data": [
	    {"id": 12, "name": " Thám Tử Conan ", "cover_url": "https://img.example/c.jpg", "cover_mobile_url": "https://img.example/c-m.jpg"},
	    {"id": 7, "name": "Dr. Stone", "cover_url": "https://img.example/d.jpg"}
	  ],
	  "_metadata": {"current_page": 1, "total_pages": 3, "total_count": 60, "per_page": 24}
	}`

	p, err := New(providers.Deps{}).ParseMangaList(strings.NewReader(body))
	require.NoError(t, err)

	require.Len(t, p.Mangas, 2)
	assert.True(t, p.HasNextPage)
	assert.Equal(t, providers.Manga{
		Title:        "Thám Tử Conan",
		URL:          "/mangas/12",
		ThumbnailURL: "https://img.example/c-m.jpg",
	}, p.Mangas[0])
	assert.Equal(t, "https://img.example/d.jpg", p.Mangas[1].ThumbnailURL)
}

func TestParseMangaListByTag(t *testing.T) {
	body := `{
	  "data": {
	    "mangas": [{"id": 3, "name": "Kingdom"}],
	    "tag": {"name": "Action", "slug": "action"}
	  },
	  "_metadata": {"current_page": 2, "total_pages": 2}
	}`

	p, err := New(providers.Deps{}).ParseMangaList(strings.NewReader(body))
	require.NoError(t, err)

	require.Len(t, p.Mangas, 1)
	assert.Equal(t, "Kingdom", p.Mangas[0].Title)
	assert.False(t, p.HasNextPage)
}

func TestParseMangaListWithoutMetadata(t *testing.T) {
	log := &debugLog{}
	p, err := New(providers.Deps{Logger: log}).ParseMangaList(strings.NewReader(`{"data": []}`))
	require.NoError(t, err)

	assert.NotNil(t, p.Mangas)
	assert.Empty(t, p.Mangas)
	assert.False(t, p.HasNextPage)
	assert.Len(t, log.lines, 1)
}

func TestParseMangaListMalformed(t *testing.T) {
	_, err := New(providers.Deps{}).ParseMangaList(strings.NewReader(`<html>`))
	assert.Error(t, err)
}

func TestParseDetails(t *testing.T) {
	body := `{"data": {
	  "id": 12,
	  "name": "Thám Tử Conan",
	  "cover_url": "https://img.example/c.jpg",
	  "cover_mobile_url": "https://img.example/c-m.jpg",
	  "author": {"name": "Aoyama Gosho"},
	  "description": "short",
	  "full_description": "  Một cậu bé thám tử.  ",
	  "tags": [{"name": "Trinh thám", "slug": "trinh-tham"}, {"name": "Đã hoàn thành", "slug": "da-hoan-thanh"}]
	}}`

	d, err := New(providers.Deps{}).ParseDetails(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "Thám Tử Conan", d.Title)
	assert.Equal(t, "Aoyama Gosho", d.Author)
	assert.Equal(t, "Một cậu bé thám tử.", d.Description)
	assert.Equal(t, []string{"Trinh thám", "Đã hoàn thành"}, d.Genres)
	assert.Equal(t, providers.StatusCompleted, d.Status)
	assert.Equal(t, "https://img.example/c.jpg", d.ThumbnailURL)
}

func TestParseDetailsFallbacks(t *testing.T) {
	body := `{"data": {"name": "X", "description": "short", "tags": [{"name": "Đang tiến hành"}]}}`

	d, err := New(providers.Deps{}).ParseDetails(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "short", d.Description)
	assert.Empty(t, d.Author)
	assert.Equal(t, providers.StatusOngoing, d.Status)
}

func TestParseChapterList(t *testing.T) {
	body := `{"data": [
	  {"id": 301, "number": "101.5", "name": "Ngoại truyện", "created_at": "2024-01-02T03:04:05+07:00"},
	  {"id": 300, "number": 101, "name": "", "created_at": "2023-12-25T00:00:00Z"},
	  {"id": 299, "number": null, "name": "Mở đầu", "created_at": "bad"}
	]}`

	list, err := New(providers.Deps{}).ParseChapterList(strings.NewReader(body))
	require.NoError(t, err)

	require.Len(t, list, 3)
	assert.Equal(t, "Chương 101.5: Ngoại truyện", list[0].Name)
	assert.Equal(t, "/chapters/301", list[0].URL)
	assert.True(t, list[0].UploadedAt.Equal(time.Date(2024, 1, 1, 20, 4, 5, 0, time.UTC)))

	assert.Equal(t, "Chương 101", list[1].Name)
	assert.Equal(t, "Chương: Mở đầu", list[2].Name)
	assert.True(t, list[2].UploadedAt.Equal(providers.Epoch))
}

func TestParsePageList(t *testing.T) {
	body := `{"data": {"id": 301, "pages": [
	  {"id": 1, "image_url": "//img.example/1.jpg"},
	  {"id": 2, "image_url": "https://img.example/2.jpg"}
	]}}`

	pages, err := New(providers.Deps{}).ParsePageList(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, []providers.Page{
		{Index: 0, ImageURL: "https://img.example/1.jpg"},
		{Index: 1, ImageURL: "https://img.example/2.jpg"},
	}, pages)
}

func TestParseImageURLUnsupported(t *testing.T) {
	_, err := New(providers.Deps{}).ParseImageURL(strings.NewReader(""))
	assert.True(t, errors.Is(err, errors.ErrUnsupported))
}

func TestRequests(t *testing.T) {
	s := New(providers.Deps{})
	ctx := context.Background()

	req, err := s.PopularRequest(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "https://cuutruyen.net/api/v2/mangas/top?duration=all&page=2&per_page=24", req.URL.String())
	assert.Equal(t, "application/json", req.Header.Get("Accept"))

	req, err = s.LatestRequest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://cuutruyen.net/api/v2/mangas/recently_updated?page=1&per_page=24", req.URL.String())

	req, err = s.DetailsRequest(ctx, providers.Manga{URL: "https://cuutruyen.net/mangas/12/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cuutruyen.net/api/v2/mangas/12", req.URL.String())

	req, err = s.ChapterListRequest(ctx, providers.Manga{URL: "/mangas/12"})
	require.NoError(t, err)
	assert.Equal(t, "https://cuutruyen.net/api/v2/mangas/12/chapters", req.URL.String())

	req, err = s.PageListRequest(ctx, providers.Chapter{URL: "/chapters/301"})
	require.NoError(t, err)
	assert.Equal(t, "https://cuutruyen.net/api/v2/chapters/301", req.URL.String())
}

func TestSearchRequest(t *testing.T) {
	s := New(providers.Deps{})
	ctx := context.Background()

	withTag, err := s.Filters().WithTag("action")
	require.NoError(t, err)

	req, err := s.SearchRequest(ctx, 1, "conan", withTag)
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/mangas/quick_search", req.URL.Path)
	assert.Equal(t, "conan", req.URL.Query().Get("q"))

	req, err = s.SearchRequest(ctx, 1, "", withTag)
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/tags/action", req.URL.Path)

	req, err = s.SearchRequest(ctx, 1, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/mangas/top", req.URL.Path)
}

func TestFlexString(t *testing.T) {
	var c ChapterDto
	require.NoError(t, jsonUnmarshal(`{"number": 12.5}`, &c))
	assert.Equal(t, flexString("12.5"), c.Number)

	require.NoError(t, jsonUnmarshal(`{"number": "7"}`, &c))
	assert.Equal(t, flexString("7"), c.Number)

	require.NoError(t, jsonUnmarshal(`{"number": true}`, &c))
	assert.Equal(t, flexString(""), c.Number)
}

func jsonUnmarshal(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}
