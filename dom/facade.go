package dom

import (
	"fmt"
	"strings"

	"github.com/customerio/htmledit/edit"
	"github.com/customerio/htmledit/tokenizer"
)

// High-level mutation API. Every operation here does three things in
// lockstep: records a text edit against the source, updates tree shape
// through the structural primitives, and arranges for stored positions to
// be rewritten when the edit lands. With the Eager strategy the edit lands
// inside the call; with Deferred it lands at the next Flush.
//
// Operations on nodes not attached to the document update metadata only
// and record nothing. Nodes introduced by a pending fragment insertion
// become addressable targets once Flush has run.

// pendingOp is the tree-side half of a buffered edit: the nodes it spliced
// in (still carrying fragment-relative coordinates) and the fixup that
// places their positions once the edit's landing offset is known.
type pendingOp struct {
	owned []Node
	fixup func(start int)

	// anchor and kind identify the insertion target for operations whose
	// splice index must account for earlier pending insertions at the same
	// place.
	anchor Node
	kind   string
}

// Flush applies all pending edits to the source and brings every stored
// position up to date. It is a no-op with nothing pending, so flushing is
// idempotent. Eager documents never have anything to flush.
func (d *Document) Flush() {
	if d.buf.Len() == 0 {
		return
	}
	edits := d.buf.Drain()

	skip := make(map[Node]bool)
	for _, op := range d.ops {
		for _, n := range op.owned {
			skip[n] = true
		}
	}

	// Edits are applied in ascending order; acc carries the accumulated
	// length change so each delta is expressed in the coordinates the tree
	// has reached.
	acc := 0
	for _, e := range edits {
		delta := edit.Delta{
			Start: e.Start + acc,
			End:   e.End + acc,
			Net:   len(e.Text) - (e.End - e.Start),
		}
		d.resync(delta, skip)
		if op := d.ops[e.Seq]; op != nil {
			for _, n := range op.owned {
				delete(skip, n)
			}
			if op.fixup != nil {
				op.fixup(e.Start + acc)
			}
		}
		acc += delta.Net
	}

	d.source = edit.Apply(d.source, edits)
	d.lines = nil
	d.ops = make(map[int]*pendingOp)
}

// Pending returns the number of buffered edits.
func (d *Document) Pending() int {
	return d.buf.Len()
}

// record routes one edit through the active strategy. On error nothing has
// changed; callers splice tree shape only after record succeeds.
func (d *Document) record(e edit.Edit, op *pendingOp) error {
	if d.opts.Strategy == Eager {
		d.applyNow(e, op)
		return nil
	}
	d.cancelKey(e.Key)
	seq, err := d.buf.Record(e)
	if err != nil {
		return err
	}
	if op != nil {
		d.ops[seq] = op
	}
	return nil
}

func (d *Document) applyNow(e edit.Edit, op *pendingOp) {
	delta := edit.Overwrite(e.Start, e.End, e.Text)
	skip := make(map[Node]bool)
	if op != nil {
		for _, n := range op.owned {
			skip[n] = true
		}
	}
	d.resync(delta, skip)
	if op != nil && op.fixup != nil {
		op.fixup(e.Start)
	}
	d.source = edit.Apply(d.source, []edit.Edit{e})
	d.lines = nil
}

func (d *Document) cancelKey(key string) bool {
	if key == "" || d.opts.Strategy == Eager {
		return false
	}
	seq, ok := d.buf.Cancel(key)
	if ok {
		delete(d.ops, seq)
	}
	return ok
}

// cancelChildInserts drops pending operations whose spliced nodes sit
// directly under el. A content replacement discards those children, so the
// edits that would have inserted their bytes must not materialize.
func (d *Document) cancelChildInserts(el *Element) {
	for seq, op := range d.ops {
		if len(op.owned) > 0 && op.owned[0].Parent() == el {
			d.buf.CancelSeq(seq)
			delete(d.ops, seq)
		}
	}
}

// pendingNodes counts nodes already spliced by pending operations of the
// given kind at the given anchor, so a new splice lands after them.
func (d *Document) pendingNodes(anchor Node, kind string) int {
	total := 0
	for _, op := range d.ops {
		if op.anchor == anchor && op.kind == kind {
			total += len(op.owned)
		}
	}
	return total
}

// SetAttribute writes an attribute. An existing quoted value is rewritten
// in place inside its quotes; a bare or valueless attribute is rewritten as
// a double-quoted one; a new attribute is inserted before the open tag's
// terminator. Repeated writes to the same attribute collapse into the last
// one.
func (d *Document) SetAttribute(el *Element, name, value string) error {
	escaped := escapeAttrValue(value)
	quoted := name + `="` + escaped + `"`

	if !d.attached(el) {
		el.putAttr(Attribute{
			Name:   Span{Start: -1, End: -1, Data: name},
			Value:  &Span{Start: -1, End: -1, Data: value},
			Quote:  tokenizer.QuoteDouble,
			Source: Span{Start: -1, End: -1, Data: quoted},
		})
		return nil
	}

	key := attrKey(el, name)
	raw := el.OpenTag.Raw
	i := el.findAttr(name)

	// Fixups splice the open tag's raw text as it stands when the edit
	// lands, not as it stood at record time: other pending edits to the
	// same tag may land first, and each splice must build on the previous
	// one. The landing offset minus the tag's resynced start locates the
	// replaced bytes in the current raw.

	if i >= 0 && el.Attrs[i].Value != nil && el.Attrs[i].Quote.Rune() != 0 {
		// Quoted value: replace just the bytes between the quotes.
		a := el.Attrs[i]
		vs, ve := a.Value.Start, a.Value.End+1
		oldLen := ve - vs
		err := d.record(edit.Edit{Start: vs, End: ve, Text: escaped, Key: key}, &pendingOp{
			fixup: func(start int) {
				rel := start - el.OpenTag.Start
				el.OpenTag.Raw = spliceString(el.OpenTag.Raw, rel, rel+oldLen, escaped)
				if j := el.findAttr(name); j >= 0 {
					a := &el.Attrs[j]
					srel := start - a.Source.Start
					a.Source.Data = spliceString(a.Source.Data, srel, srel+oldLen, escaped)
					a.Value = &Span{Start: start, End: start + len(escaped) - 1, Data: value}
				}
				el.refreshAttrIndex()
			},
		})
		if err != nil {
			return err
		}
		el.attrIndex[name] = value
		return nil
	}

	if i >= 0 {
		// Bare or valueless: replace the whole name=value run.
		a := el.Attrs[i]
		s0, s1 := a.Source.Start, a.Source.End+1
		oldLen := s1 - s0
		err := d.record(edit.Edit{Start: s0, End: s1, Text: quoted, Key: key}, &pendingOp{
			fixup: func(start int) {
				rel := start - el.OpenTag.Start
				el.OpenTag.Raw = spliceString(el.OpenTag.Raw, rel, rel+oldLen, quoted)
				if j := el.findAttr(name); j >= 0 {
					el.Attrs[j] = quotedAttr(start, name, value, quoted)
				}
				el.refreshAttrIndex()
			},
		})
		if err != nil {
			return err
		}
		el.attrIndex[name] = value
		return nil
	}

	// New attribute: insert before the tag terminator.
	p := el.OpenTag.Start + openInsertRel(raw)
	text := " " + quoted
	err := d.record(edit.Edit{Start: p, End: p, Text: text, Order: edit.OrderLeft, Key: key}, &pendingOp{
		fixup: func(start int) {
			rel := start - el.OpenTag.Start
			el.OpenTag.Raw = spliceString(el.OpenTag.Raw, rel, rel, text)
			el.putAttr(quotedAttr(start+1, name, value, quoted))
		},
	})
	if err != nil {
		return err
	}
	el.attrIndex[name] = value
	return nil
}

// RemoveAttribute deletes an attribute along with the whitespace run before
// it. Removing an attribute whose only existence is a pending SetAttribute
// cancels the pending edit, leaving the source untouched. Removing an
// absent attribute is a no-op.
func (d *Document) RemoveAttribute(el *Element, name string) error {
	if !d.attached(el) {
		el.dropAttr(name)
		return nil
	}

	key := attrKey(el, name)
	i := el.findAttr(name)
	if i < 0 {
		if d.cancelKey(key) {
			delete(el.attrIndex, name)
		}
		return nil
	}

	a := el.Attrs[i]
	raw := el.OpenTag.Raw
	ws := a.Source.Start - el.OpenTag.Start
	for ws > 0 && rawSpace(raw[ws-1]) {
		ws--
	}
	s0 := el.OpenTag.Start + ws
	s1 := a.Source.End + 1
	oldLen := s1 - s0
	err := d.record(edit.Edit{Start: s0, End: s1, Key: key}, &pendingOp{
		fixup: func(start int) {
			rel := start - el.OpenTag.Start
			el.OpenTag.Raw = spliceString(el.OpenTag.Raw, rel, rel+oldLen, "")
			el.dropAttr(name)
		},
	})
	if err != nil {
		return err
	}
	delete(el.attrIndex, name)
	return nil
}

// SetInnerHTML replaces an element's content with the parse of fragment.
// On a self-closing element the open tag is rewritten into a paired form
// around the new content.
func (d *Document) SetInnerHTML(el *Element, fragment string) error {
	nodes := parseFragment(fragment, d.opts)
	if !d.attached(el) {
		replaceChildren(el, nodes)
		return nil
	}
	key := fmt.Sprintf("inner:%p", el)
	d.cancelChildInserts(el)

	if el.OpenTag.SelfClosing {
		return d.convertSelfClosing(el, fragment, nodes, key)
	}

	cs, ce := el.contentRange()
	err := d.record(edit.Edit{Start: cs, End: ce, Text: fragment, Order: edit.OrderLeft, Key: key}, &pendingOp{
		owned: nodes,
		fixup: func(start int) { offsetNodes(nodes, start) },
	})
	if err != nil {
		return err
	}
	replaceChildren(el, nodes)
	return nil
}

// SetOuterHTML replaces a node wholesale with the parse of fragment.
func (d *Document) SetOuterHTML(n Node, fragment string) error {
	nodes := parseFragment(fragment, d.opts)
	if !d.attached(n) {
		return ReplaceNode(n, nodes...)
	}
	c, i, err := locate(n)
	if err != nil {
		return err
	}
	s, e := n.Range()
	err = d.record(edit.Edit{Start: s, End: e + 1, Text: fragment}, &pendingOp{
		owned: nodes,
		fixup: func(start int) { offsetNodes(nodes, start) },
	})
	if err != nil {
		return err
	}
	spliceChildren(c, i, 1, nodes)
	n.setOwner(nil)
	return nil
}

// RemoveNode deletes a node's bytes and detaches it. Removing a detached
// node touches nothing.
func (d *Document) RemoveNode(n Node) error {
	if !d.attached(n) {
		Detach(n)
		return nil
	}
	c, i, err := locate(n)
	if err != nil {
		return err
	}
	s, e := n.Range()
	if err := d.record(edit.Edit{Start: s, End: e + 1}, nil); err != nil {
		return err
	}
	spliceChildren(c, i, 1, nil)
	n.setOwner(nil)
	return nil
}

// AppendHTML parses fragment and adds it as the element's last children.
func (d *Document) AppendHTML(el *Element, fragment string) error {
	nodes := parseFragment(fragment, d.opts)
	if !d.attached(el) {
		appendChildren(el, nodes)
		return nil
	}
	if el.OpenTag.SelfClosing {
		return d.convertSelfClosing(el, fragment, nodes, "")
	}

	var p int
	if el.Close != nil && !el.Close.Synthetic() {
		p = el.Close.Start
	} else {
		_, e := el.Range()
		p = e + 1
	}
	err := d.record(edit.Edit{Start: p, End: p, Text: fragment, Order: edit.OrderRight}, &pendingOp{
		owned: nodes,
		fixup: func(start int) {
			offsetNodes(nodes, start)
			growUnclosed(el, start, len(fragment))
		},
	})
	if err != nil {
		return err
	}
	appendChildren(el, nodes)
	return nil
}

// PrependHTML parses fragment and adds it as the element's first children.
func (d *Document) PrependHTML(el *Element, fragment string) error {
	nodes := parseFragment(fragment, d.opts)
	if !d.attached(el) {
		prependChildren(el, nodes)
		return nil
	}
	if el.OpenTag.SelfClosing {
		return d.convertSelfClosing(el, fragment, nodes, "")
	}

	p := el.OpenTag.End + 1
	idx := d.pendingNodes(el, "prepend")
	err := d.record(edit.Edit{Start: p, End: p, Text: fragment, Order: edit.OrderLeft}, &pendingOp{
		owned:  nodes,
		anchor: el,
		kind:   "prepend",
		fixup: func(start int) {
			offsetNodes(nodes, start)
			growUnclosed(el, start, len(fragment))
		},
	})
	if err != nil {
		return err
	}
	spliceChildren(el, idx, 0, nodes)
	return nil
}

// InsertHTMLBefore parses fragment and splices it in as ref's preceding
// siblings.
func (d *Document) InsertHTMLBefore(ref Node, fragment string) error {
	nodes := parseFragment(fragment, d.opts)
	if !d.attached(ref) {
		return InsertBefore(ref, nodes...)
	}
	c, i, err := locate(ref)
	if err != nil {
		return err
	}
	s, _ := ref.Range()
	err = d.record(edit.Edit{Start: s, End: s, Text: fragment, Order: edit.OrderRight}, &pendingOp{
		owned: nodes,
		fixup: func(start int) { offsetNodes(nodes, start) },
	})
	if err != nil {
		return err
	}
	spliceChildren(c, i, 0, nodes)
	return nil
}

// InsertHTMLAfter parses fragment and splices it in as ref's following
// siblings.
func (d *Document) InsertHTMLAfter(ref Node, fragment string) error {
	nodes := parseFragment(fragment, d.opts)
	if !d.attached(ref) {
		return InsertAfter(ref, nodes...)
	}
	c, i, err := locate(ref)
	if err != nil {
		return err
	}
	_, e := ref.Range()
	p := e + 1
	idx := i + 1 + d.pendingNodes(ref, "after")
	err = d.record(edit.Edit{Start: p, End: p, Text: fragment, Order: edit.OrderLeft}, &pendingOp{
		owned:  nodes,
		anchor: ref,
		kind:   "after",
		fixup: func(start int) {
			offsetNodes(nodes, start)
			if pe, ok := c.(*Element); ok {
				growUnclosed(pe, start, len(fragment))
			}
		},
	})
	if err != nil {
		return err
	}
	spliceChildren(c, idx, 0, nodes)
	return nil
}

// Rename changes an element's tag name, rewriting the name bytes in both
// the open and the close tag.
func (d *Document) Rename(el *Element, name string) error {
	old := el.TagName
	if old == name {
		return nil
	}

	if !d.attached(el) {
		el.TagName = name
		el.OpenTag.Raw = spliceString(el.OpenTag.Raw, 1, 1+len(old), name)
		if el.Close != nil {
			el.Close.Raw = "</" + name + ">"
			el.Close.Name = name
		}
		return nil
	}

	ns := el.OpenTag.Start + 1
	err := d.record(edit.Edit{Start: ns, End: ns + len(old), Text: name, Key: fmt.Sprintf("tag-open:%p", el)}, &pendingOp{
		fixup: func(start int) {
			rel := start - el.OpenTag.Start
			el.OpenTag.Raw = spliceString(el.OpenTag.Raw, rel, rel+len(old), name)
			el.TagName = name
			if el.Close.Synthetic() {
				el.Close.Raw = "</" + name + ">"
				el.Close.Name = name
			}
		},
	})
	if err != nil {
		return err
	}

	if el.Close != nil && !el.Close.Synthetic() {
		craw := el.Close.Raw
		rel := 2
		for rel < len(craw) && rawSpace(craw[rel]) {
			rel++
		}
		oldName := el.Close.Name
		cs := el.Close.Start + rel
		err = d.record(edit.Edit{Start: cs, End: cs + len(oldName), Text: name, Key: fmt.Sprintf("tag-close:%p", el)}, &pendingOp{
			fixup: func(start int) {
				r := start - el.Close.Start
				el.Close.Raw = spliceString(el.Close.Raw, r, r+len(oldName), name)
				el.Close.Name = name
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// convertSelfClosing rewrites a self-closing open tag into a paired
// element wrapping the fragment: the terminator bytes become ">", the
// fragment, and a close tag, all in a single edit.
func (d *Document) convertSelfClosing(el *Element, fragment string, nodes []Node, key string) error {
	raw := el.OpenTag.Raw
	j := len(raw) - 1
	for j > 0 && (raw[j-1] == '/' || rawSpace(raw[j-1])) {
		j--
	}
	name := el.TagName
	closeRaw := "</" + name + ">"
	text := ">" + fragment + closeRaw
	s0 := el.OpenTag.Start + j
	s1 := el.OpenTag.End + 1

	err := d.record(edit.Edit{Start: s0, End: s1, Text: text, Key: key}, &pendingOp{
		owned: nodes,
		fixup: func(start int) {
			s, _ := el.Range()
			el.OpenTag.Raw = el.OpenTag.Raw[:start-el.OpenTag.Start] + ">"
			el.OpenTag.End = start
			el.OpenTag.SelfClosing = false
			offsetNodes(nodes, start+1)
			el.Close = &CloseTag{
				Start: start + 1 + len(fragment),
				End:   start + len(text) - 1,
				Raw:   closeRaw,
				Name:  name,
			}
			el.setRange(s, start+len(text)-1)
		},
	})
	if err != nil {
		return err
	}
	replaceChildren(el, nodes)
	return nil
}

// contentRange returns the element's content as an exclusive byte range.
// For an element without a real close tag the content runs to the end of
// the element.
func (e *Element) contentRange() (int, int) {
	cs := e.OpenTag.End + 1
	if e.Close != nil && !e.Close.Synthetic() {
		return cs, e.Close.Start
	}
	_, end := e.Range()
	return cs, end + 1
}

// growUnclosed extends the recorded end of el, and of any unclosed
// ancestors sharing it, to cover text of length n inserted at start. Pure
// insertions at an element's content end do not move the end on their own
// because a position just before an insertion point stays put.
func growUnclosed(el *Element, start, n int) {
	newEnd := start + n - 1
	node := Node(el)
	for {
		a, ok := node.(*Element)
		if !ok {
			return
		}
		if a.Close != nil && !a.Close.Synthetic() {
			return
		}
		as, ae := a.Range()
		if ae != start-1 {
			return
		}
		a.setRange(as, newEnd)
		parent, ok := a.owner().(*Element)
		if !ok {
			return
		}
		node = parent
	}
}

func attrKey(el *Element, name string) string {
	return fmt.Sprintf("attr:%p:%s", el, name)
}

func quotedAttr(start int, name, value, quoted string) Attribute {
	return Attribute{
		Name:  Span{Start: start, End: start + len(name) - 1, Data: name},
		Value: &Span{Start: start + len(name) + 2, End: start + len(quoted) - 2, Data: value},
		Quote: tokenizer.QuoteDouble,
		Source: Span{
			Start: start,
			End:   start + len(quoted) - 1,
			Data:  quoted,
		},
	}
}

// openInsertRel returns the offset within an open tag's raw text at which
// new attribute text is inserted: just before the terminator, behind any
// slash and the whitespace run preceding it.
func openInsertRel(raw string) int {
	j := len(raw) - 1
	if j > 0 && raw[j-1] == '/' {
		j--
	}
	for j > 0 && rawSpace(raw[j-1]) {
		j--
	}
	return j
}

// escapeAttrValue escapes the two characters that cannot appear raw inside
// a double-quoted attribute value. Everything else passes through.
func escapeAttrValue(v string) string {
	if !strings.ContainsAny(v, `&"`) {
		return v
	}
	v = strings.ReplaceAll(v, "&", "&amp;")
	return strings.ReplaceAll(v, `"`, "&quot;")
}

func spliceString(s string, start, end int, text string) string {
	return s[:start] + text + s[end:]
}

func rawSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
