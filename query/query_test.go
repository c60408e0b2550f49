package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/customerio/htmledit/dom"
	"github.com/customerio/htmledit/query"
)

const page = `<!DOCTYPE html>
<html>
<body>
<div id="hero" class="wide dark" data-track="home" data-slot="top">
  <h1>Title &amp; More</h1>
  <p class="lead">intro</p>
</div>
<ul>
  <li class="item">a</li>
  <li class="item current">b</li>
</ul>
</body>
</html>`

func parse(t *testing.T) *dom.Document {
	t.Helper()
	return dom.Parse(page, dom.Options{})
}

func TestByID(t *testing.T) {
	t.Parallel()

	doc := parse(t)
	hero := query.ByID(doc, "hero")
	require.NotNil(t, hero)
	require.Equal(t, "div", hero.TagName)
	require.Nil(t, query.ByID(doc, "missing"))
}

func TestByTag(t *testing.T) {
	t.Parallel()

	doc := parse(t)
	require.Len(t, query.ByTag(doc, "li"), 2)
	require.Len(t, query.ByTag(doc, "LI"), 2)
	require.Len(t, query.ByTag(doc, "table"), 0)
}

func TestByClass(t *testing.T) {
	t.Parallel()

	doc := parse(t)
	require.Len(t, query.ByClass(doc, "item"), 2)
	require.Len(t, query.ByClass(doc, "current"), 1)
	require.Len(t, query.ByClass(doc, "wide"), 1)
	// Substrings of a class are not matches.
	require.Len(t, query.ByClass(doc, "wid"), 0)
}

func TestTextContent(t *testing.T) {
	t.Parallel()

	doc := parse(t)
	h1 := query.ByTag(doc, "h1")[0]
	require.Equal(t, "Title & More", query.TextContent(h1))
}

func TestDataset(t *testing.T) {
	t.Parallel()

	doc := parse(t)
	hero := query.ByID(doc, "hero")
	require.Equal(t, map[string]string{"track": "home", "slot": "top"}, query.Dataset(hero))
}

func TestSelect(t *testing.T) {
	t.Parallel()

	doc := parse(t)

	tests := []struct {
		selector string
		count    int
	}{
		{"#hero", 1},
		{"div.wide", 1},
		{"ul > li", 2},
		{"li.current", 1},
		{"div p.lead", 1},
		{"li, p", 3},
		{"ul li:first-child", 1},
		{"article", 0},
	}
	for _, tt := range tests {
		els, err := query.Select(doc, tt.selector)
		require.NoError(t, err, tt.selector)
		require.Len(t, els, tt.count, tt.selector)
	}

	_, err := query.Select(doc, "li[")
	require.Error(t, err)
}

func TestSelectReturnsOriginals(t *testing.T) {
	t.Parallel()

	// Matched elements are the document's own nodes, so they can be passed
	// straight back into the mutation API.
	doc := parse(t)
	els, err := query.Select(doc, "p.lead")
	require.NoError(t, err)
	require.Len(t, els, 1)

	require.NoError(t, doc.SetInnerHTML(els[0], "rewritten"))
	require.Contains(t, doc.String(), `<p class="lead">rewritten</p>`)
}
