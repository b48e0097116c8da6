// Package nettruyen1s implements providers.Source for nettruyen1s.com, a
// Vietnamese HTML reader site scraped with fixed CSS selectors.
package nettruyen1s

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/mangasrc/internal/providers"
)

const (
	ID             = "nettruyen1s"
	DefaultBaseURL = "https://nettruyen1s.com"

	mangaSelector    = ".items .item"
	nextPageSelector = "ul.pagination > li.active"
	chapterSelector  = "#nt_listchapter .row:not(.heading)"
	pageSelector     = ".reading-detail .page-chapter img"
)

// dd/MM/yy with one or two digit day and month; some rows carry a four digit
// year.
var dateLayouts = []string{"2/1/06", "2/1/2006"}

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
func (s *Source) Name() string { return "Nettruyen1s" }
func (s *Source) Lang() string { return "vi" }
func (s *Source) SupportsLatest() bool { return true }
func (s *Source) BaseURL() string { return s.baseURL.Get() }

func (s *Source) get(ctx context.Context, target string) (*http.Request, error) {
	return providers.NewGET(ctx, target, s.BaseURL())
}

func (s *Source) PopularRequest(ctx context.Context, page int) (*http.Request, error) {
	return s.get(ctx, fmt.Sprintf("%s/danh-sach-truyen/%d/?sort=views", s.BaseURL(), page))
}

func (s *Source) LatestRequest(ctx context.Context, page int) (*http.Request, error) {
	return s.get(ctx, fmt.Sprintf("%s/?page=%d", s.BaseURL(), page))
}

// SearchRequest prefers the keyword search, then an active genre filter, and
// otherwise falls back to the popular listing.
func (s *Source) SearchRequest(ctx context.Context, page int, query string, filters providers.FilterList) (*http.Request, error) {
	if query != "" {
		q := url.Values{}
		q.Set("keyword", query)
		q.Set("page", strconv.Itoa(page))

		return s.get(ctx, s.BaseURL()+"/tim-truyen?"+q.Encode())
	}

	if tf, ok := filters.TagFilter(); ok {
		if tag, ok := tf.Selected(); ok {
			return s.get(ctx, fmt.Sprintf("%s/the-loai/%s?page=%d", s.BaseURL(), url.PathEscape(tag.ID), page))
		}
	}

	return s.PopularRequest(ctx, page)
}

func (s *Source) DetailsRequest(ctx context.Context, m providers.Manga) (*http.Request, error) {
	return s.get(ctx, providers.ResolveURL(s.BaseURL(), m.URL))
}

func (s *Source) ChapterListRequest(ctx context.Context, m providers.Manga) (*http.Request, error) {
	return s.DetailsRequest(ctx, m)
}

func (s *Source) PageListRequest(ctx context.Context, ch providers.Chapter) (*http.Request, error) {
	return s.get(ctx, providers.ResolveURL(s.BaseURL(), ch.URL))
}

func (s *Source) ParseMangaList(r io.Reader) (providers.MangasPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return providers.MangasPage{}, err
	}

	mangas := []providers.Manga{}
	doc.Find(mangaSelector).Each(func(_ int, el *goquery.Selection) {
		mangas = append(mangas, mangaFromElement(el))
	})

	return providers.MangasPage{
		Mangas:      mangas,
		HasNextPage: providers.HasNextSibling(doc, nextPageSelector),
	}, nil
}

func mangaFromElement(el *goquery.Selection) providers.Manga {
	link := el.Find("h3 a")

	return providers.Manga{
		Title:        providers.Text(link),
		URL:          providers.RelativeURL(link.AttrOr("href", "")),
		ThumbnailURL: providers.AttrFallback(el.Find(".image img"), "data-original", "src"),
	}
}

func (s *Source) ParseDetails(r io.Reader) (providers.MangaDetail, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return providers.MangaDetail{}, err
	}

	root := doc.Find("#item-detail")

	return providers.MangaDetail{
		Title:        providers.Text(root.Find("h1.title-detail")),
		Author:       providers.Text(root.Find("li.author p.col-xs-8")),
		Description:  providers.Text(root.Find(".detail-content p")),
		Genres:       providers.TextList(root.Find("li.kind p.col-xs-8 a")),
		Status:       providers.MatchStatus(providers.Text(root.Find("li.status p.col-xs-8")), providers.VietnameseStatus),
		ThumbnailURL: strings.TrimSpace(root.Find(".col-image img").AttrOr("src", "")),
	}, nil
}

func (s *Source) ParseChapterList(r io.Reader) ([]providers.Chapter, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	now := s.deps.Now()
	out := []providers.Chapter{}
	doc.Find(chapterSelector).Each(func(_ int, row *goquery.Selection) {
		link := row.Find(".chapter a")
		dateText := providers.Text(row.Find(".col-xs-4"))

		uploaded := providers.ParseChapterDate(dateText, now, dateLayouts...)
		if uploaded.Equal(providers.Epoch) {
			s.deps.Logger.Debugf("%s: unparsed chapter date %q\n", ID, dateText)
		}

		out = append(out, providers.Chapter{
			Name:       providers.Text(link),
			URL:        providers.RelativeURL(link.AttrOr("href", "")),
			UploadedAt: uploaded,
		})
	})

	return out, nil
}

func (s *Source) ParsePageList(r io.Reader) ([]providers.Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	pages := []providers.Page{}
	doc.Find(pageSelector).Each(func(i int, img *goquery.Selection) {
		pages = append(pages, providers.Page{
			Index:    i,
			ImageURL: providers.SecureURL(providers.AttrFallback(img, "data-original", "src")),
		})
	})

	return pages, nil
}

// ParseImageURL is not used: page lists already carry image URLs.
func (s *Source) ParseImageURL(io.Reader) (string, error) {
	return "", providers.Unsupported(ID, "image url")
}

func (s *Source) Filters() providers.FilterList {
	return providers.FilterList{providers.NewTagFilter("Thể loại", tags)}
}

func (s *Source) Preferences() []providers.Preference {
	return []providers.Preference{providers.BaseURLPreference(DefaultBaseURL)}
}
