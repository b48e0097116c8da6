// Package cuutruyen implements providers.Source for cuutruyen.net, whose
// listings, details and chapters come from a JSON API.
package cuutruyen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/brogergvhs/mangasrc/internal/providers"
)

const (
	ID             = "cuutruyen"
	DefaultBaseURL = "https://cuutruyen.net"

	apiPrefix = "/api/v2"
	perPage   = 24
)

// Completion is tagged "Đã hoàn thành", which the shared rules miss because
// matching is case sensitive.
var statusRules = append([]providers.StatusRule{
	{Contains: "Đã hoàn thành", Status: providers.StatusCompleted},
}, providers.VietnameseStatus...)

func init() {
	providers.Register(ID, func(d providers.Deps) providers.Source { return New(d) })
}

type Source struct {
	deps    providers.Deps
	baseURL *providers.BaseURL
}

func New(deps providers.Deps) *Source {
	deps = deps.WithDefaults()

	return &Source{
		deps:    deps,
		baseURL: providers.NewBaseURL(deps.Prefs, DefaultBaseURL),
	}
}

func (s *Source) ID() string { return ID }
func (s *Source) Name() string { return "Cứu Truyện" }
func (s *Source) Lang() string { return "vi" }
func (s *Source) SupportsLatest() bool { return true }
func (s *Source) BaseURL() string { return s.baseURL.Get() }

func (s *Source) api(ctx context.Context, path string, q url.Values) (*http.Request, error) {
	target := s.BaseURL() + apiPrefix + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	req, err := providers.NewGET(ctx, target, s.BaseURL())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func pageQuery(page int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	return q
}

func (s *Source) PopularRequest(ctx context.Context, page int) (*http.Request, error) {
	q := pageQuery(page)
	q.Set("duration", "all")

	return s.api(ctx, "/mangas/top", q)
}

func (s *Source) LatestRequest(ctx context.Context, page int) (*http.Request, error) {
	return s.api(ctx, "/mangas/recently_updated", pageQuery(page))
}

func (s *Source) SearchRequest(ctx context.Context, page int, query string, filters providers.FilterList) (*http.Request, error) {
	if query != "" {
		q := pageQuery(page)
		q.Set("q", query)

		return s.api(ctx, "/mangas/quick_search", q)
	}

	if tf, ok := filters.TagFilter(); ok {
		if tag, ok := tf.Selected(); ok {
			return s.api(ctx, "/tags/"+url.PathEscape(tag.ID), pageQuery(page))
		}
	}

	return s.PopularRequest(ctx, page)
}

// Manga and chapter URLs are site paths ("/mangas/12"); the API mirrors them
// under apiPrefix.
func (s *Source) DetailsRequest(ctx context.Context, m providers.Manga) (*http.Request, error) {
	return s.api(ctx, sitePath(m.URL), nil)
}

func (s *Source) ChapterListRequest(ctx context.Context, m providers.Manga) (*http.Request, error) {
	return s.api(ctx, sitePath(m.URL)+"/chapters", nil)
}

func (s *Source) PageListRequest(ctx context.Context, ch providers.Chapter) (*http.Request, error) {
	return s.api(ctx, sitePath(ch.URL), nil)
}

func sitePath(u string) string {
	p := providers.RelativeURL(u)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	return strings.TrimRight(p, "/")
}

func decode(r io.Reader) (envelope, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return env, fmt.Errorf("decode %s payload: %w", ID, err)
	}

	return env, nil
}

// ParseMangaList accepts both listing shapes: a plain array of mangas and
// the tag listing object.
func (s *Source) ParseMangaList(r io.Reader) (providers.MangasPage, error) {
	env, err := decode(r)
	if err != nil {
		return providers.MangasPage{}, err
	}

	var items []MangaDto
	data := bytes.TrimSpace(env.Data)
	switch {
	case len(data) == 0:
	case data[0] == '[':
		if err := json.Unmarshal(data, &items); err != nil {
			return providers.MangasPage{}, fmt.Errorf("decode %s mangas: %w", ID, err)
		}
	case data[0] == '{':
		var byTag SearchByTagDto
		if err := json.Unmarshal(data, &byTag); err != nil {
			return providers.MangasPage{}, fmt.Errorf("decode %s tag listing: %w", ID, err)
		}
		items = byTag.Mangas
	}

	mangas := make([]providers.Manga, 0, len(items))
	for _, m := range items {
		mangas = append(mangas, toManga(m))
	}

	hasNext := false
	if env.Metadata != nil {
		hasNext = env.Metadata.CurrentPage < env.Metadata.TotalPages
	} else {
		s.deps.Logger.Debugf("%s: listing without pagination metadata\n", ID)
	}

	return providers.MangasPage{Mangas: mangas, HasNextPage: hasNext}, nil
}

func toManga(m MangaDto) providers.Manga {
	thumb := strings.TrimSpace(m.CoverMobileURL)
	if thumb == "" {
		thumb = strings.TrimSpace(m.CoverURL)
	}

	return providers.Manga{
		Title:        strings.TrimSpace(m.Name),
		URL:          "/mangas/" + strconv.FormatInt(m.ID, 10),
		ThumbnailURL: thumb,
	}
}

func (s *Source) ParseDetails(r io.Reader) (providers.MangaDetail, error) {
	env, err := decode(r)
	if err != nil {
		return providers.MangaDetail{}, err
	}

	var dto MangaDetailDto
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return providers.MangaDetail{}, fmt.Errorf("decode %s manga: %w", ID, err)
		}
	}

	genres := make([]string, 0, len(dto.Tags))
	for _, t := range dto.Tags {
		if name := strings.TrimSpace(t.Name); name != "" {
			genres = append(genres, name)
		}
	}

	desc := dto.FullDescription
	if strings.TrimSpace(desc) == "" {
		desc = dto.Description
	}

	author := ""
	if dto.Author != nil {
		author = strings.TrimSpace(dto.Author.Name)
	}

	thumb := strings.TrimSpace(dto.CoverURL)
	if thumb == "" {
		thumb = strings.TrimSpace(dto.CoverMobileURL)
	}

	return providers.MangaDetail{
		Title:        strings.TrimSpace(dto.Name),
		Author:       author,
		Description:  strings.TrimSpace(desc),
		Genres:       genres,
		Status:       providers.MatchStatus(strings.Join(genres, ", "), statusRules),
		ThumbnailURL: thumb,
	}, nil
}

func (s *Source) ParseChapterList(r io.Reader) ([]providers.Chapter, error) {
	env, err := decode(r)
	if err != nil {
		return nil, err
	}

	var items []ChapterDto
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, fmt.Errorf("decode %s chapters: %w", ID, err)
		}
	}

	out := make([]providers.Chapter, 0, len(items))
	for _, c := range items {
		uploaded, ok := providers.TryParseDate(c.CreatedAt, time.RFC3339)
		if !ok {
			s.deps.Logger.Debugf("%s: unparsed chapter date %q\n", ID, c.CreatedAt)
			uploaded = providers.Epoch
		}

		out = append(out, providers.Chapter{
			Name:       chapterName(string(c.Number), c.Name),
			URL:        "/chapters/" + strconv.FormatInt(c.ID, 10),
			UploadedAt: uploaded,
		})
	}

	return out, nil
}

func chapterName(number, name string) string {
	number = strings.TrimSpace(number)
	name = strings.TrimSpace(name)

	label := "Chương " + number
	if number == "" {
		label = "Chương"
	}
	if name != "" {
		label += ": " + name
	}

	return label
}

func (s *Source) ParsePageList(r io.Reader) ([]providers.Page, error) {
	env, err := decode(r)
	if err != nil {
		return nil, err
	}

	var dto ChapterDetailDto
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return nil, fmt.Errorf("decode %s chapter: %w", ID, err)
		}
	}

	pages := make([]providers.Page, 0, len(dto.Pages))
	for i, p := range dto.Pages {
		pages = append(pages, providers.Page{
			Index:    i,
			ImageURL: providers.SecureURL(strings.TrimSpace(p.ImageURL)),
		})
	}

	return pages, nil
}

func (s *Source) ParseImageURL(io.Reader) (string, error) {
	return "", providers.Unsupported(ID, "image url")
}

func (s *Source) Filters() providers.FilterList {
	return providers.FilterList{providers.NewTagFilter("Thể loại", tags)}
}

func (s *Source) Preferences() []providers.Preference {
	return []providers.Preference{providers.BaseURLPreference(DefaultBaseURL)}
}
