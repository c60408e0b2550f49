package edit

import "strings"

// Apply materializes edits against src in a single pass and returns the
// resulting string. The edits must be in application order (as produced by
// Drain) and non-overlapping; out-of-range edits are clamped to the source.
func Apply(src string, edits []Edit) string {
	if len(edits) == 0 {
		return src
	}

	net := 0
	for _, e := range edits {
		net += len(e.Text) - (e.End - e.Start)
	}

	var out strings.Builder
	out.Grow(len(src) + net)

	cursor := 0
	for _, e := range edits {
		start, end := e.Start, e.End
		if start < cursor {
			start = cursor
		}
		if end > len(src) {
			end = len(src)
		}
		out.WriteString(src[cursor:start])
		out.WriteString(e.Text)
		if end > cursor {
			cursor = end
		}
	}
	out.WriteString(src[cursor:])

	return out.String()
}
