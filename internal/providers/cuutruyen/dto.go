package cuutruyen

import (
	"bytes"
	"encoding/json"
)

type envelope struct {
	Data     json.RawMessage `json:"data"`
	Metadata *metadata       `json:"_metadata"`
}

type metadata struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalCount  int `json:"total_count"`
	PerPage     int `json:"per_page"`
}

type MangaDto struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	CoverURL       string `json:"cover_url"`
	CoverMobileURL string `json:"cover_mobile_url"`
}

type TagDto struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SearchByTagDto is the payload of a tag listing: the tagged mangas and the
// tag itself.
type SearchByTagDto struct {
	Mangas []MangaDto `json:"mangas"`
	Tag    TagDto     `json:"tag"`
}

type AuthorDto struct {
	Name string `json:"name"`
}

type MangaDetailDto struct {
	MangaDto
	Author          *AuthorDto `json:"author"`
	Description     string     `json:"description"`
	FullDescription string     `json:"full_description"`
	Tags            []TagDto   `json:"tags"`
}

type ChapterDto struct {
	ID        int64      `json:"id"`
	Number    flexString `json:"number"`
	Name      string     `json:"name"`
	CreatedAt string     `json:"created_at"`
}

type PageDto struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"image_url"`
}

type ChapterDetailDto struct {
	ID    int64     `json:"id"`
	Pages []PageDto `json:"pages"`
}

// flexString accepts a JSON string or number; anything else decodes to "".
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		*f = ""
		return nil
	}
	*f = flexString(n.String())

	return nil
}
