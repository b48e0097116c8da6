package providers

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Source is implemented once per website. Request builders resolve relative
// locators against BaseURL; parsers are pure functions of their input.
type Source interface {
	ID() string
	Name() string
	Lang() string
	SupportsLatest() bool
	BaseURL() string

	PopularRequest(ctx context.Context, page int) (*http.Request, error)
	LatestRequest(ctx context.Context, page int) (*http.Request, error)
	SearchRequest(ctx context.Context, page int, query string, filters FilterList) (*http.Request, error)
	DetailsRequest(ctx context.Context, m Manga) (*http.Request, error)
	ChapterListRequest(ctx context.Context, m Manga) (*http.Request, error)
	PageListRequest(ctx context.Context, ch Chapter) (*http.Request, error)

	ParseMangaList(r io.Reader) (MangasPage, error)
	ParseDetails(r io.Reader) (MangaDetail, error)
	ParseChapterList(r io.Reader) ([]Chapter, error)
	ParsePageList(r io.Reader) ([]Page, error)
	ParseImageURL(r io.Reader) (string, error)

	Filters() FilterList
	Preferences() []Preference
}

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Preferences interface {
	String(key, def string) string
	SetString(key, value string) error
}

type Logger interface {
	Debugf(format string, args ...any)
}

// Preference describes one user-editable setting a source exposes.
type Preference struct {
	Key           string
	Title         string
	Summary       string
	Default       string
	DialogMessage string
	ChangeNotice  string
}

// Deps are the collaborators handed to a source at construction.
type Deps struct {
	Prefs  Preferences
	Logger Logger
	Now    func() time.Time
}

// WithDefaults fills unset collaborators with no-op implementations and the
// wall clock.
func (d Deps) WithDefaults() Deps {
	if d.Prefs == nil {
		d.Prefs = noPrefs{}
	}
	if d.Logger == nil {
		d.Logger = nopLogger{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	return d
}

type noPrefs struct{}

func (noPrefs) String(_, def string) string { return def }
func (noPrefs) SetString(_, _ string) error { return nil }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
