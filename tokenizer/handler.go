// Package tokenizer turns golang.org/x/net/html tokens into ordered,
// position-annotated SAX-style callbacks. Offsets are byte offsets into the
// input string with exclusive ends; callers that need inclusive ranges
// convert at their boundary.
//
// The facade never fails on malformed input: bogus constructs are re-emitted
// as the closest sensible callback (a stray "</ main>" becomes a close tag
// spanning its full raw bytes) so that downstream consumers always see a
// contiguous, gap-free cover of the source.
package tokenizer

// Quote describes how an attribute value was written in source.
type Quote int

const (
	// QuoteNone marks an attribute with no value at all (`disabled`).
	QuoteNone Quote = iota
	// QuoteBare marks an unquoted value (`width=10`).
	QuoteBare
	// QuoteDouble marks a double-quoted value.
	QuoteDouble
	// QuoteSingle marks a single-quoted value.
	QuoteSingle
)

// Rune returns the quote character, or 0 when the value is unquoted or
// absent.
func (q Quote) Rune() byte {
	switch q {
	case QuoteDouble:
		return '"'
	case QuoteSingle:
		return '\''
	default:
		return 0
	}
}

// Handler receives ordered callbacks as the source is scanned. For any open
// tag the sequence is OpenTagName, zero or more attribute groups (AttrName,
// then AttrData/AttrEntity fragments, then AttrEnd), and exactly one of
// OpenTagEnd or SelfClosingTag. Handlers must tolerate callbacks arriving
// for malformed sequences without crashing.
type Handler interface {
	// OpenTagName reports a start tag's name. start is the offset of '<',
	// end is just past the name.
	OpenTagName(start, end int)

	// AttrName reports an attribute name inside the current open tag.
	AttrName(start, end int)

	// AttrData reports a literal fragment of the current attribute value.
	// It may fire multiple times, interleaved with AttrEntity.
	AttrData(start, end int)

	// AttrEntity reports a character reference found in the current
	// attribute value: its decoded text and the [start, end) span of the
	// raw reference in source.
	AttrEntity(decoded string, start, end int)

	// AttrEnd closes the current attribute. end is just past the closing
	// quote, or past the value (or name, for valueless attributes).
	AttrEnd(quote Quote, end int)

	// OpenTagEnd closes the current open tag. end is just past '>'.
	OpenTagEnd(end int)

	// SelfClosingTag closes an open tag written with a trailing slash.
	// end is just past '>'.
	SelfClosingTag(end int)

	// CloseTag reports a close tag spanning [start, end), including
	// malformed ones recovered from stray "</" sequences.
	CloseTag(start, end int)

	// Text reports a run of character data.
	Text(start, end int)

	// Comment reports a "<!-- -->" comment, markers included.
	Comment(start, end int)

	// CDATA reports a "<![CDATA[ ]]>" section, markers included.
	CDATA(start, end int)

	// Directive reports a doctype, processing instruction, or other "<!"
	// declaration, markers included.
	Directive(start, end int)

	// End reports that the source has been fully scanned.
	End(srcLen int)
}
