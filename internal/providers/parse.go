package providers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Epoch is the upload time reported when a date cannot be parsed.
var Epoch = time.Unix(0, 0)

// TryParseDate parses text with layout in the local time zone.
func TryParseDate(text, layout string) (time.Time, bool) {
	t, err := time.ParseInLocation(layout, strings.TrimSpace(text), time.Local)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// ParseChapterDate maps chapter list date text to an upload time. Text with a
// time of day ("15:30") is a same-day relative date and becomes now. Other
// text is tried against layouts in order and becomes Epoch when none match.
func ParseChapterDate(text string, now time.Time, layouts ...string) time.Time {
	if strings.Contains(text, ":") {
		return now
	}
	for _, layout := range layouts {
		if t, ok := TryParseDate(text, layout); ok {
			return t
		}
	}

	return Epoch
}

type StatusRule struct {
	Contains string
	Status   Status
}

// VietnameseStatus covers the status labels used by Vietnamese reader sites.
var VietnameseStatus = []StatusRule{
	{Contains: "Đang tiến hành", Status: StatusOngoing},
	{Contains: "Hoàn thành", Status: StatusCompleted},
}

// MatchStatus returns the status of the first rule whose substring occurs in
// text. Matching is case sensitive on NFC-normalised text.
func MatchStatus(text string, rules []StatusRule) Status {
	text = norm.NFC.String(text)
	for _, r := range rules {
		if strings.Contains(text, norm.NFC.String(r.Contains)) {
			return r.Status
		}
	}

	return StatusUnknown
}

// Unsupported reports an operation a source does not implement.
func Unsupported(sourceID, op string) error {
	return fmt.Errorf("%s: %s: %w", sourceID, op, errors.ErrUnsupported)
}
