package providers

import "time"

type Status int

const (
	StatusUnknown Status = iota
	StatusOngoing
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Manga is a listing entry. URL is relative to the source's base URL.
type Manga struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type MangasPage struct {
	Mangas      []Manga `json:"mangas"`
	HasNextPage bool    `json:"has_next_page"`
}

type MangaDetail struct {
	Title        string   `json:"title"`
	Author       string   `json:"author,omitempty"`
	Description  string   `json:"description,omitempty"`
	Genres       []string `json:"genres"`
	Status       Status   `json:"status"`
	ThumbnailURL string   `json:"thumbnail_url"`
}

type Chapter struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Page struct {
	Index    int    `json:"index"`
	ImageURL string `json:"image_url"`
}
