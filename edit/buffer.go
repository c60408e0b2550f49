package edit

import (
	"fmt"
	"sort"
)

// Order controls how insertions recorded at the same byte offset are
// sequenced when the buffer is materialized. An insertion attaches either to
// the content on its left or to the content on its right; left-attached text
// always precedes right-attached text at a shared offset, and within the
// same class arrival order is preserved.
type Order int

const (
	// OrderLeft attaches the inserted text to the content preceding the
	// offset, ahead of any right-attached text recorded there.
	OrderLeft Order = iota
	// OrderRight attaches the inserted text to the content following the
	// offset, behind all left-attached text recorded there.
	OrderRight
)

// Edit is a single pending replacement of bytes [Start, End) with Text.
// Start == End records a pure insertion.
type Edit struct {
	Start int
	End   int
	Text  string

	// Order sequences same-offset insertions; it has no effect on ranged
	// edits, which may never share bytes with another pending edit.
	Order Order

	// Key, when non-empty, makes the edit supersede any pending edit
	// recorded under the same key. This is how repeated writes to the same
	// logical target (for example the same attribute) collapse into one
	// edit instead of conflicting.
	Key string

	// Seq is the arrival number assigned by the buffer.
	Seq int
}

// A ConflictError reports two pending edits whose byte ranges overlap.
// The buffer rejects the later edit rather than guessing which one wins.
type ConflictError struct {
	Have Edit
	New  Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("edit [%d:%d) conflicts with pending edit [%d:%d)",
		e.New.Start, e.New.End, e.Have.Start, e.Have.End)
}

// Buffer accumulates edits against an immutable source string. All recorded
// offsets refer to that original source; nothing is applied until the caller
// materializes with Apply or drains the edits for synchronization.
type Buffer struct {
	edits   []Edit
	nextSeq int
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Len returns the number of pending edits.
func (b *Buffer) Len() int {
	return len(b.edits)
}

// Record adds an edit to the buffer and returns its sequence number. When the
// edit carries a key matching a pending edit, the pending edit is replaced.
// A ranged edit overlapping any other pending edit is rejected with a
// *ConflictError and the buffer is left unchanged.
func (b *Buffer) Record(e Edit) (int, error) {
	if e.Key != "" {
		b.Cancel(e.Key)
	}
	for i := range b.edits {
		if overlaps(b.edits[i], e) {
			return 0, &ConflictError{Have: b.edits[i], New: e}
		}
	}
	e.Seq = b.nextSeq
	b.nextSeq++
	b.edits = append(b.edits, e)
	return e.Seq, nil
}

// Cancel removes the pending edit recorded under key, reporting whether one
// existed. It returns the cancelled edit's sequence number.
func (b *Buffer) Cancel(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	for i := range b.edits {
		if b.edits[i].Key == key {
			seq := b.edits[i].Seq
			b.edits = append(b.edits[:i], b.edits[i+1:]...)
			return seq, true
		}
	}
	return 0, false
}

// CancelSeq removes the pending edit with the given sequence number,
// reporting whether one existed.
func (b *Buffer) CancelSeq(seq int) bool {
	for i := range b.edits {
		if b.edits[i].Seq == seq {
			b.edits = append(b.edits[:i], b.edits[i+1:]...)
			return true
		}
	}
	return false
}

// Drain returns the pending edits in application order and empties the
// buffer. Application order is ascending by offset, then left-attached
// ahead of right-attached, then arrival order.
func (b *Buffer) Drain() []Edit {
	edits := b.edits
	b.edits = nil
	sortEdits(edits)
	return edits
}

// overlaps reports whether two edits collide. Ranged edits collide when
// their half-open ranges intersect; an insertion collides with a ranged edit
// only when its point falls strictly inside the range. Two insertions never
// collide, whatever their offsets.
func overlaps(a, e Edit) bool {
	if a.Start == a.End && e.Start == e.End {
		return false
	}
	if a.Start == a.End {
		return e.Start < a.Start && a.Start < e.End
	}
	if e.Start == e.End {
		return a.Start < e.Start && e.Start < a.End
	}
	return a.Start < e.End && e.Start < a.End
}

func sortEdits(edits []Edit) {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}
		if edits[i].Order != edits[j].Order {
			return edits[i].Order < edits[j].Order
		}
		return edits[i].Seq < edits[j].Seq
	})
}
