// Package edit provides the text-edit calculus used to keep byte-range
// metadata synchronized with an evolving source string: deltas that describe
// how a single edit shifts offsets elsewhere, a buffer that accumulates
// pending edits against an immutable source, and a single-pass materializer.
package edit

// Delta describes the positional effect of one text edit. Start and End are
// byte offsets into the source before the edit, with End exclusive. Net is
// the length change: len(replacement) - (End - Start).
//
// Insertions have Start == End. The two insertion flavors (before/after a
// point) produce identical deltas; they differ only in how the Buffer orders
// their text when several edits land on the same offset.
type Delta struct {
	Start int
	End   int
	Net   int
}

// Overwrite returns the delta for replacing bytes [start, end) with text.
func Overwrite(start, end int, text string) Delta {
	return Delta{Start: start, End: end, Net: len(text) - (end - start)}
}

// Insert returns the delta for inserting text at pos.
func Insert(pos int, text string) Delta {
	return Delta{Start: pos, End: pos, Net: len(text)}
}

// Remove returns the delta for deleting bytes [start, end).
func Remove(start, end int) Delta {
	return Delta{Start: start, End: end, Net: -(end - start)}
}

// Zero reports whether applying the delta cannot move or invalidate any
// position. Callers use it as a fast path to skip tree walks.
func (d Delta) Zero() bool {
	return d.Net == 0 && d.Start == d.End
}

// Shift maps a byte position through the delta. It returns the updated
// position and true when the position survives the edit unchanged or
// shifted, or the original position and false when it pointed into the
// replaced region and is no longer meaningful.
//
// The eligibility rule is asymmetric: positions at or past End shift by Net,
// positions strictly inside [Start, End) are invalidated, and positions
// before Start are untouched. For insertions (Start == End) every position
// at or past the insertion point shifts.
func (d Delta) Shift(pos int) (int, bool) {
	if pos >= d.End {
		return pos + d.Net, true
	}
	if pos >= d.Start && d.End > d.Start {
		return pos, false
	}
	return pos, true
}
