package chapters

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/brogergvhs/mangasrc/internal/providers"
)

// Chapter is a source chapter with its 1-based position in reading order.
type Chapter struct {
	providers.Chapter
	Number int
}

// FromSource turns a site chapter list (newest first) into reading order.
func FromSource(list []providers.Chapter) []Chapter {
	out := make([]Chapter, len(list))
	for i, c := range list {
		n := len(list) - i
		out[n-1] = Chapter{Chapter: c, Number: n}
	}

	return out
}

var reUnderscore = regexp.MustCompile(`_+`)

func sanitize(s string) string {
	s = strings.ToLower(s)

	repl := strings.NewReplacer(
		"•", "_",
		"-", "_",
		"—", "_",
		"–", "_",
		"/", "_",
		"\\", "_",
		".", "_",
		":", "_",
		" ", "_",
		"(", "",
		")", "",
	)
	s = repl.Replace(s)

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			clean = append(clean, r)
		}
	}
	s = reUnderscore.ReplaceAllString(string(clean), "_")

	return strings.Trim(s, "_")
}

func (c Chapter) baseName() string {
	prefix := fmt.Sprintf("%04d", c.Number)
	if name := sanitize(c.Name); name != "" {
		return prefix + "_" + name
	}

	return prefix
}

func (c Chapter) FolderName() string {
	return c.baseName() + "_tmp"
}

func (c Chapter) OutputCBZ() string {
	return c.baseName() + ".cbz"
}

func (c Chapter) OutputCBZPath(out string) string {
	return filepath.Join(out, c.OutputCBZ())
}
