package dom

import (
	"sort"
	"strings"

	"github.com/customerio/htmledit/edit"
)

// Strategy selects when pending edits are applied to the tree and the
// source string.
type Strategy int

const (
	// Deferred batches edits in the buffer; Flush (or String) applies them
	// in one pass. Between a mutation and the next Flush, stored ranges are
	// stale by contract, not by accident.
	Deferred Strategy = iota

	// Eager applies every edit to the tree and the source as it is
	// recorded, so ranges are always current at the cost of one tree walk
	// per edit.
	Eager
)

// Document is the root of a parsed tree. It owns the source string, the
// top-level child nodes, and the pending-edit buffer that keeps the two
// synchronized.
type Document struct {
	Children []Node

	source string
	lines  []int
	opts   Options

	buf *edit.Buffer
	ops map[int]*pendingOp
}

func (d *Document) childNodes() []Node        { return d.Children }
func (d *Document) setChildNodes(kids []Node) { d.Children = kids }

// Source returns the current materialized source. With the Deferred
// strategy this does not reflect edits recorded since the last Flush.
func (d *Document) Source() string {
	return d.source
}

// Position converts a byte offset into a 1-based line number and 0-based
// byte column. Offsets past the end of source report the last line.
func (d *Document) Position(offset int) (line, col int) {
	if d.lines == nil {
		d.lines = lineOffsets(d.source)
	}
	i := sort.Search(len(d.lines), func(i int) bool { return d.lines[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, offset - d.lines[i]
}

func lineOffsets(src string) []int {
	offsets := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// attached reports whether n is reachable from this document by climbing
// parent links. Mutations on unattached nodes update metadata only and never
// record edits.
func (d *Document) attached(n Node) bool {
	c := n.owner()
	for c != nil {
		switch p := c.(type) {
		case *Document:
			return p == d
		case *Element:
			c = p.owner()
		default:
			return false
		}
	}
	return false
}

// String applies any pending edits and returns the serialized document.
func (d *Document) String() string {
	d.Flush()
	var sb strings.Builder
	sb.Grow(len(d.source))
	for _, n := range d.Children {
		writeNode(&sb, n)
	}
	return sb.String()
}
