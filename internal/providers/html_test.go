package providers

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()

	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	return d
}

func TestText(t *testing.T) {
	d := doc(t, `<ul><li>  One
		piece </li><li></li><li>Two</li></ul>`)

	assert.Equal(t, "One piece Two", Text(d.Find("li")))
	assert.Equal(t, []string{"One piece", "Two"}, TextList(d.Find("li")))
	assert.Equal(t, []string{}, TextList(d.Find("p")))
}

func TestAttrFallback(t *testing.T) {
	d := doc(t, `
		<img id="lazy" data-original="lazy.jpg" src="eager.jpg">
		<img id="eager" data-original="" src="eager.jpg">
		<img id="none">`)

	assert.Equal(t, "lazy.jpg", AttrFallback(d.Find("#lazy"), "data-original", "src"))
	assert.Equal(t, "eager.jpg", AttrFallback(d.Find("#eager"), "data-original", "src"))
	assert.Equal(t, "", AttrFallback(d.Find("#none"), "data-original", "src"))
}

func TestHasNextSibling(t *testing.T) {
	more := doc(t, `<ul class="pagination"><li>1</li><li class="active">2</li><li>3</li></ul>`)
	last := doc(t, `<ul class="pagination"><li>1</li><li class="active">2</li></ul>`)
	none := doc(t, `<ul class="pagination"></ul>`)
	twoPagers := doc(t, `<ul class="pagination"><li class="active">2</li></ul>
		<ul class="pagination"><li class="active">2</li><li>3</li></ul>`)

	sel := "ul.pagination > li.active"
	assert.True(t, HasNextSibling(more, sel))
	assert.False(t, HasNextSibling(last, sel))
	assert.False(t, HasNextSibling(none, sel))
	assert.True(t, HasNextSibling(twoPagers, sel))
}
