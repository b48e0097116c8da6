package providers

import "errors"

var ErrNoTagFilter = errors.New("no tag filter")

type Tag struct {
	Name string
	ID   string
}

// TagFilter is a single-choice category selector. Tags[0] is the "all"
// entry; State indexes into Tags and 0 means the filter is inactive.
type TagFilter struct {
	Title string
	Tags  []Tag
	State int
}

func NewTagFilter(title string, tags []Tag) TagFilter {
	cp := make([]Tag, len(tags))
	copy(cp, tags)

	return TagFilter{Title: title, Tags: cp}
}

// Selected returns the chosen tag, or false when the filter is inactive or
// its state is out of range.
func (f TagFilter) Selected() (Tag, bool) {
	if f.State <= 0 || f.State >= len(f.Tags) {
		return Tag{}, false
	}

	return f.Tags[f.State], true
}

func (f TagFilter) Names() []string {
	out := make([]string, len(f.Tags))
	for i, t := range f.Tags {
		out[i] = t.Name
	}

	return out
}

// Select sets State to the tag whose id or display name equals key.
func (f *TagFilter) Select(key string) bool {
	for i, t := range f.Tags {
		if t.ID == key || t.Name == key {
			f.State = i
			return true
		}
	}

	return false
}

type FilterList []TagFilter

// TagFilter returns the first tag filter in the list.
func (l FilterList) TagFilter() (TagFilter, bool) {
	if len(l) == 0 {
		return TagFilter{}, false
	}

	return l[0], true
}

// WithTag returns a copy of the list with the first tag filter set to key.
func (l FilterList) WithTag(key string) (FilterList, error) {
	if len(l) == 0 {
		return nil, ErrNoTagFilter
	}

	out := make(FilterList, len(l))
	copy(out, l)
	if !out[0].Select(key) {
		return nil, errors.New("unknown tag: " + key)
	}

	return out, nil
}
