package tokenizer

import "golang.org/x/net/html"

// lexOpenTag re-scans the raw bytes of a start tag token [start, end) and
// emits name- and attribute-level callbacks with exact offsets. x/net only
// reports whole-token attribute pairs, so sub-token positions are recovered
// here.
func lexOpenTag(src string, start, end int, selfClosing bool, h Handler) {
	i := start + 1 // past '<'
	for i < end && !isTagDelim(src[i]) {
		i++
	}
	h.OpenTagName(start, i)

	for i < end {
		// Skip whitespace between attributes.
		for i < end && isSpace(src[i]) {
			i++
		}
		if i >= end {
			break
		}
		if src[i] == '>' {
			i++
			break
		}
		if src[i] == '/' {
			i++
			continue
		}

		// Attribute name.
		nameStart := i
		for i < end && src[i] != '=' && src[i] != '>' && src[i] != '/' && !isSpace(src[i]) {
			i++
		}
		h.AttrName(nameStart, i)

		// Valueless attribute.
		j := i
		for j < end && isSpace(src[j]) {
			j++
		}
		if j >= end || src[j] != '=' {
			h.AttrEnd(QuoteNone, i)
			i = j
			continue
		}
		i = j + 1 // past '='
		for i < end && isSpace(src[i]) {
			i++
		}

		quote := QuoteBare
		var terminator byte
		if i < end && (src[i] == '"' || src[i] == '\'') {
			terminator = src[i]
			if terminator == '"' {
				quote = QuoteDouble
			} else {
				quote = QuoteSingle
			}
			i++
		}

		valStart := i
		for i < end {
			c := src[i]
			if terminator != 0 {
				if c == terminator {
					break
				}
			} else if isSpace(c) || c == '>' {
				break
			}
			i++
		}
		emitValue(src, valStart, i, h)
		if terminator != 0 && i < end {
			i++ // past the closing quote
		}
		h.AttrEnd(quote, i)
	}

	if selfClosing {
		h.SelfClosingTag(end)
	} else {
		h.OpenTagEnd(end)
	}
}

// emitValue splits an attribute value into literal fragments and decoded
// character references.
func emitValue(src string, start, end int, h Handler) {
	lit := start
	for i := start; i < end; {
		if src[i] != '&' {
			i++
			continue
		}
		semi := i + 1
		for semi < end && src[semi] != ';' && src[semi] != '&' && !isSpace(src[semi]) {
			semi++
		}
		if semi >= end || src[semi] != ';' {
			i = semi
			continue
		}
		ref := src[i : semi+1]
		decoded := html.UnescapeString(ref)
		if decoded == ref {
			// Not a recognized reference; leave it literal.
			i = semi + 1
			continue
		}
		if i > lit {
			h.AttrData(lit, i)
		}
		h.AttrEntity(decoded, i, semi+1)
		i = semi + 1
		lit = i
	}
	if end > lit || start == end {
		h.AttrData(lit, end)
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isTagDelim(c byte) bool {
	return isSpace(c) || c == '>' || c == '/'
}
