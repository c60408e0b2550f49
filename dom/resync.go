package dom

import "github.com/customerio/htmledit/edit"

// resync rewrites every stored position in the tree for one applied delta.
// Nodes in skip are left alone along with their whole subtrees: they carry
// fragment-relative coordinates that a pending fixup will place.
func (d *Document) resync(delta edit.Delta, skip map[Node]bool) {
	if delta.Zero() {
		return
	}
	for _, n := range d.Children {
		resyncNode(n, delta, skip)
	}
}

func resyncNode(n Node, delta edit.Delta, skip map[Node]bool) {
	if skip[n] {
		return
	}
	_, e := n.Range()
	// A subtree that ends before the edit holds no position that can move.
	if e < delta.Start {
		if _, inner := n.(*Element); !inner {
			return
		}
		// Elements may still hold skipped fragment children whose relative
		// coordinates do not respect the parent's range; recursion is needed
		// only when pending fragments exist at all.
		if len(skip) == 0 {
			return
		}
	}

	s, _ := n.Range()
	n.setRange(shiftPos(s, delta), shiftEnd(e, delta))

	el, ok := n.(*Element)
	if !ok {
		return
	}
	el.OpenTag.Start = shiftPos(el.OpenTag.Start, delta)
	el.OpenTag.End = shiftEnd(el.OpenTag.End, delta)
	if el.Close != nil && !el.Close.Synthetic() {
		el.Close.Start = shiftPos(el.Close.Start, delta)
		el.Close.End = shiftEnd(el.Close.End, delta)
	}
	for i := range el.Attrs {
		shiftSpan(&el.Attrs[i].Name, delta)
		if el.Attrs[i].Value != nil {
			shiftSpan(el.Attrs[i].Value, delta)
		}
		shiftSpan(&el.Attrs[i].Source, delta)
	}
	for _, c := range el.Children {
		resyncNode(c, delta, skip)
	}
}

// shiftPos applies a delta to one offset. Sentinel offsets pass through,
// and offsets inside the replaced range stay where they are: the pending
// fixup that owns that span will overwrite them.
func shiftPos(p int, delta edit.Delta) int {
	if p < 0 {
		return p
	}
	np, _ := delta.Shift(p)
	return np
}

// shiftEnd applies a delta to an inclusive end offset. An inclusive end q
// stands for exclusive boundary q+1, so under a ranged delta the boundary is
// shifted instead of the offset itself: a span whose content runs exactly up
// to the replaced region's end must track the replacement's new end. Under
// pure insertions the plain rule applies, so a span ending just before the
// insertion point does not grow.
func shiftEnd(q int, delta edit.Delta) int {
	if q < 0 {
		return q
	}
	if delta.Start == delta.End {
		nq, _ := delta.Shift(q)
		return nq
	}
	nq, _ := delta.Shift(q + 1)
	return nq - 1
}

func shiftSpan(s *Span, delta edit.Delta) {
	s.Start = shiftPos(s.Start, delta)
	s.End = shiftEnd(s.End, delta)
}

// offsetNodes translates fragment-relative coordinates to absolute ones by
// adding base to every stored position in the given subtrees.
func offsetNodes(nodes []Node, base int) {
	if base == 0 {
		return
	}
	for _, n := range nodes {
		s, e := n.Range()
		n.setRange(s+base, e+base)
		el, ok := n.(*Element)
		if !ok {
			continue
		}
		el.OpenTag.Start += base
		el.OpenTag.End += base
		if el.Close != nil && !el.Close.Synthetic() {
			el.Close.Start += base
			el.Close.End += base
		}
		for i := range el.Attrs {
			el.Attrs[i].Name.Start += base
			el.Attrs[i].Name.End += base
			if v := el.Attrs[i].Value; v != nil {
				v.Start += base
				v.End += base
			}
			el.Attrs[i].Source.Start += base
			el.Attrs[i].Source.End += base
		}
		offsetNodes(el.Children, base)
	}
}
