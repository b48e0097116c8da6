package providers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// SecureURL rewrites protocol-relative locators to https.
func SecureURL(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}

	return u
}

// RelativeURL strips scheme and host from href, keeping path, query and
// fragment. An empty href stays empty.
func RelativeURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return href
	}

	out := u.EscapedPath()
	if out == "" {
		out = "/"
	}
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		out += "#" + u.EscapedFragment()
	}

	return out
}

func ResolveURL(baseURL, href string) string {
	if href == "" {
		return baseURL
	}

	u, err := url.Parse(href)
	if err == nil && u.IsAbs() {
		return u.String()
	}

	b, err := url.Parse(baseURL)
	if err != nil || u == nil {
		return href
	}

	return b.ResolveReference(u).String()
}

// NewGET builds a GET request carrying the Referer every source expects.
func NewGET(ctx context.Context, target, baseURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Referer", strings.TrimRight(baseURL, "/")+"/")

	return req, nil
}

const (
	BaseURLPrefKey = "overrideBaseUrl"

	baseURLPrefTitle   = "Ghi đè URL cơ sở"
	baseURLPrefSummary = "Dành cho sử dụng tạm thời, cập nhật tiện ích sẽ xóa cài đặt."
	RestartNotice      = "Khởi chạy lại ứng dụng để áp dụng thay đổi."
)

func BaseURLPreference(def string) Preference {
	return Preference{
		Key:           BaseURLPrefKey,
		Title:         baseURLPrefTitle,
		Summary:       baseURLPrefSummary,
		Default:       def,
		DialogMessage: "Default: " + def,
		ChangeNotice:  RestartNotice,
	}
}

// BaseURL reads the override preference on first use and keeps the value
// for the lifetime of the source.
type BaseURL struct {
	once  sync.Once
	prefs Preferences
	def   string
	value string
}

func NewBaseURL(prefs Preferences, def string) *BaseURL {
	if prefs == nil {
		prefs = noPrefs{}
	}

	return &BaseURL{prefs: prefs, def: def}
}

func (b *BaseURL) Get() string {
	b.once.Do(func() {
		v := strings.TrimSpace(b.prefs.String(BaseURLPrefKey, b.def))
		if v == "" {
			v = b.def
		}
		b.value = strings.TrimRight(v, "/")
	})

	return b.value
}
