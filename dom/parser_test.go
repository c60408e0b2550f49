package dom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/customerio/htmledit/dom"
	"github.com/customerio/htmledit/tokenizer"
)

// el returns the n-th element child of c, failing the test when the shape
// does not match.
func el(t *testing.T, c any, n int) *dom.Element {
	t.Helper()
	var kids []dom.Node
	switch v := c.(type) {
	case *dom.Document:
		kids = v.Children
	case *dom.Element:
		kids = v.Children
	default:
		t.Fatalf("el: unsupported container %T", c)
	}
	i := 0
	for _, k := range kids {
		e, ok := k.(*dom.Element)
		if !ok {
			continue
		}
		if i == n {
			return e
		}
		i++
	}
	t.Fatalf("el: no element child %d", n)
	return nil
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	srcs := []string{
		"",
		"plain text with & and <",
		"<div>content</div>",
		"<div CLASS='a'  data-x = bare >text</DIV>",
		"<!DOCTYPE html>\n<html><body><p>hi</p></body></html>",
		"<ul>\n  <li>one\n  <li>two\n</ul>",
		"<main><div><span>ok</ main>",
		"<div>content",
		"<p>a<!-- note --><![CDATA[raw]]>b</p>",
		"<img src=\"x.png\"><br/><input type=text>",
		"<a href=\"?q=1&amp;p=2\">x &amp; y</a>",
		"<div><script>if (a < b) { x(); }</script></div>",
		"<div>x</div",
		"<div class=\"x",
		"<b><i>mis</b>nested</i>",
		"<x-icon />",
	}
	for _, src := range srcs {
		src := src
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			for _, opts := range []dom.Options{
				{},
				{RecognizeSelfClosing: true},
				{Strategy: dom.Eager},
			} {
				doc := dom.Parse(src, opts)
				require.Equal(t, src, doc.String())
				require.Equal(t, src, doc.Source())
			}
		})
	}
}

func TestParseSpans(t *testing.T) {
	t.Parallel()

	src := `<div class="big" id=main hidden>text</div>`
	doc := dom.Parse(src, dom.Options{})

	div := el(t, doc, 0)
	require.Equal(t, "div", div.TagName)

	start, end := div.Range()
	require.Equal(t, 0, start)
	require.Equal(t, len(src)-1, end)
	require.Equal(t, `<div class="big" id=main hidden>`, div.OpenTag.Raw)
	require.Equal(t, 31, div.OpenTag.End)
	require.Equal(t, "</div>", div.Close.Raw)
	require.Equal(t, 36, div.Close.Start)
	require.False(t, div.Close.Synthetic())

	require.Len(t, div.Attrs, 3)

	class := div.Attrs[0]
	require.Equal(t, "class", class.Name.Data)
	require.Equal(t, 5, class.Name.Start)
	require.Equal(t, tokenizer.QuoteDouble, class.Quote)
	require.Equal(t, "big", class.Value.Data)
	require.Equal(t, 12, class.Value.Start)
	require.Equal(t, 14, class.Value.End)
	require.Equal(t, `class="big"`, class.Source.Data)

	id := div.Attrs[1]
	require.Equal(t, tokenizer.QuoteBare, id.Quote)
	require.Equal(t, "main", id.Value.Data)

	hidden := div.Attrs[2]
	require.Equal(t, tokenizer.QuoteNone, hidden.Quote)
	require.Nil(t, hidden.Value)

	v, ok := div.Attr("class")
	require.True(t, ok)
	require.Equal(t, "big", v)
	_, ok = div.Attr("nope")
	require.False(t, ok)

	text, ok := div.Children[0].(*dom.Text)
	require.True(t, ok)
	require.Equal(t, "text", text.Data)
	ts, te := text.Range()
	require.Equal(t, 32, ts)
	require.Equal(t, 35, te)
}

func TestParseMalformedCloseRecovery(t *testing.T) {
	t.Parallel()

	src := "<main><div><span>ok</ main>"
	doc := dom.Parse(src, dom.Options{})

	main := el(t, doc, 0)
	require.Equal(t, "main", main.TagName)
	require.NotNil(t, main.Close)
	require.Equal(t, "</ main>", main.Close.Raw)
	require.Equal(t, 19, main.Close.Start)
	require.Equal(t, 26, main.Close.End)

	div := el(t, main, 0)
	require.Nil(t, div.Close)
	_, de := div.Range()
	require.Equal(t, 18, de)

	span := el(t, div, 0)
	require.Nil(t, span.Close)
	_, se := span.Range()
	require.Equal(t, 18, se)

	require.Equal(t, src, doc.String())
}

func TestParseAutofix(t *testing.T) {
	t.Parallel()

	doc := dom.Parse("<div>content", dom.Options{Autofix: true})
	div := el(t, doc, 0)

	require.NotNil(t, div.Close)
	require.True(t, div.Close.Synthetic())
	require.Equal(t, -1, div.Close.Start)
	require.Equal(t, "</div>", div.Close.Raw)
	require.Equal(t, "<div>content</div>", doc.String())
}

func TestParseUnmatchedCloseBecomesText(t *testing.T) {
	t.Parallel()

	src := "a</div>b"
	doc := dom.Parse(src, dom.Options{})

	require.Len(t, doc.Children, 1)
	text, ok := doc.Children[0].(*dom.Text)
	require.True(t, ok)
	require.Equal(t, "a</div>b", text.Data)
	require.Equal(t, src, doc.String())
}

func TestParseSwallowedRawTextClose(t *testing.T) {
	t.Parallel()

	src := "<div><script>x</div>"
	doc := dom.Parse(src, dom.Options{})

	div := el(t, doc, 0)
	require.NotNil(t, div.Close)
	require.Equal(t, "</div>", div.Close.Raw)
	require.Equal(t, 14, div.Close.Start)
	require.Equal(t, 19, div.Close.End)

	script := el(t, div, 0)
	require.Nil(t, script.Close)
	_, se := script.Range()
	require.Equal(t, 13, se)

	text, ok := script.Children[0].(*dom.Text)
	require.True(t, ok)
	require.Equal(t, "x", text.Data)

	require.Equal(t, src, doc.String())
}

func TestParseSelfClosing(t *testing.T) {
	t.Parallel()

	// Trailing slash on a non-void tag is only honored when asked for.
	doc := dom.Parse("<x-icon /><p>after</p>", dom.Options{RecognizeSelfClosing: true})
	icon := el(t, doc, 0)
	require.True(t, icon.OpenTag.SelfClosing)
	require.Empty(t, icon.Children)
	p := el(t, doc, 1)
	require.Equal(t, "p", p.TagName)
	require.Equal(t, p, p.Children[0].Parent())

	doc = dom.Parse("<x-icon /><p>after</p>", dom.Options{})
	icon = el(t, doc, 0)
	require.False(t, icon.OpenTag.SelfClosing)
	require.Len(t, icon.Children, 1)

	// Voids always self-close, slash or not.
	doc = dom.Parse("<br><img src=x>tail", dom.Options{})
	br := el(t, doc, 0)
	require.True(t, br.OpenTag.SelfClosing)
	img := el(t, doc, 1)
	require.True(t, img.OpenTag.SelfClosing)
}

func TestPosition(t *testing.T) {
	t.Parallel()

	doc := dom.Parse("ab\ncd\nef", dom.Options{})

	tests := []struct {
		offset, line, col int
	}{
		{0, 1, 0},
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 0},
		{4, 2, 1},
		{6, 3, 0},
		{7, 3, 1},
	}
	for _, tt := range tests {
		line, col := doc.Position(tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("Position(%d) = (%d, %d), want (%d, %d)", tt.offset, line, col, tt.line, tt.col)
		}
	}
}
