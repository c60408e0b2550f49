package tokenizer

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Run scans src and delivers position-annotated callbacks to h. It always
// scans to the end of the input; malformed markup is recovered, never
// reported as an error.
func Run(src string, h Handler) {
	z := html.NewTokenizer(strings.NewReader(src))
	offset := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				// The only errors a string-backed reader can surface are
				// tokenization dead ends; treat them like EOF.
				h.End(len(src))
				return
			}
			// A tag truncated by end-of-input never comes back as a token.
			// Extend the scan to end-of-source so offsets stay gap-free.
			if offset < len(src) {
				emitTail(src, offset, h)
			}
			h.End(len(src))
			return
		}

		raw := z.Raw()
		start, end := offset, offset+len(raw)
		offset = end

		switch tt {
		case html.TextToken:
			if end > start {
				h.Text(start, end)
			}
		case html.StartTagToken:
			lexOpenTag(src, start, end, false, h)
		case html.SelfClosingTagToken:
			lexOpenTag(src, start, end, true, h)
		case html.EndTagToken:
			h.CloseTag(start, end)
		case html.DoctypeToken:
			h.Directive(start, end)
		case html.CommentToken:
			emitCommentish(src, start, end, h)
		}
	}
}

// emitCommentish classifies a comment token. x/net lexes several malformed
// constructs into bogus comments; the raw bytes tell them apart.
func emitCommentish(src string, start, end int, h Handler) {
	raw := src[start:end]
	switch {
	case strings.HasPrefix(raw, "<!--"):
		h.Comment(start, end)
	case strings.HasPrefix(raw, "<![CDATA["):
		h.CDATA(start, end)
	case strings.HasPrefix(raw, "</"):
		// "</" followed by a non-letter ("</ main>") is lexed as a bogus
		// comment. Surface it as the malformed close tag it was meant to be.
		h.CloseTag(start, end)
	default:
		h.Directive(start, end)
	}
}

// emitTail handles bytes the tokenizer swallowed at end-of-input, such as a
// close tag with its '>' missing.
func emitTail(src string, offset int, h Handler) {
	tail := src[offset:]
	switch {
	case strings.HasPrefix(tail, "</"):
		h.CloseTag(offset, len(src))
	case strings.HasPrefix(tail, "<"):
		lexOpenTag(src, offset, len(src), false, h)
	default:
		h.Text(offset, len(src))
	}
}
