package providers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Text returns the whitespace-normalised text of every element in sel,
// joined by a single space.
func Text(sel *goquery.Selection) string {
	return strings.Join(TextList(sel), " ")
}

// TextList returns the non-empty normalised text of each element in sel.
func TextList(sel *goquery.Selection) []string {
	out := []string{}
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := collapse(s.Text()); t != "" {
			out = append(out, t)
		}
	})

	return out
}

// AttrFallback reads the lazy-load attribute first and only falls back to the
// eager one when the first is empty.
func AttrFallback(sel *goquery.Selection, lazy, eager string) string {
	if v := strings.TrimSpace(sel.AttrOr(lazy, "")); v != "" {
		return v
	}

	return strings.TrimSpace(sel.AttrOr(eager, ""))
}

// HasNextSibling reports whether any element matched by active is directly
// followed by an li.
func HasNextSibling(doc *goquery.Document, active string) bool {
	return doc.Find(active+" + li").Length() > 0
}
