package dom

import "strings"

// repairNode fixes up subtrees after tokenization, bottom-up. The one repair
// performed today recovers close tags swallowed into raw text: in
// "<div><script>x</div>" the "</div>" bytes land inside the script's text
// because script content is lexed as raw text, leaving both elements
// unclosed. The bytes are carved back out into a real close tag so the
// element boundaries match what an author intended, and serialization still
// reproduces the source exactly.
func repairNode(n Node) {
	el, ok := n.(*Element)
	if !ok {
		return
	}
	for _, c := range el.Children {
		repairNode(c)
	}
	if el.Close == nil && !el.OpenTag.SelfClosing {
		recoverSwallowedClose(el)
	}
}

func recoverSwallowedClose(el *Element) {
	t, path := lastTextDescendant(el)
	if t == nil {
		return
	}
	marker := "</" + strings.ToLower(el.TagName)
	idx := strings.LastIndex(strings.ToLower(t.Data), marker)
	if idx < 0 {
		return
	}
	gt := strings.IndexByte(t.Data[idx:], '>')
	if gt < 0 {
		return
	}
	gt += idx

	ts, _ := t.Range()
	closeStart := ts + idx
	closeEnd := ts + gt
	raw := t.Data[idx : gt+1]
	tail := t.Data[gt+1:]

	if idx == 0 {
		removeLastChild(t.owner())
	} else {
		t.Data = t.Data[:idx]
		t.setRange(ts, closeStart-1)
	}
	for _, p := range path {
		p.setRange(p.OpenTag.Start, closeStart-1)
	}
	el.Close = &CloseTag{Start: closeStart, End: closeEnd, Raw: raw, Name: el.TagName}
	el.setRange(el.OpenTag.Start, closeEnd)

	if tail != "" {
		nt := &Text{Data: tail}
		nt.setRange(closeEnd+1, closeEnd+len(tail))
		insertAfterNode(el, nt)
	}
}

// lastTextDescendant walks the last-child spine of el and returns the text
// node it ends in, along with the elements between el and that text.
func lastTextDescendant(el *Element) (*Text, []*Element) {
	var path []*Element
	cur := el
	for {
		kids := cur.Children
		if len(kids) == 0 {
			return nil, nil
		}
		switch last := kids[len(kids)-1].(type) {
		case *Text:
			return last, path
		case *Element:
			path = append(path, last)
			cur = last
		default:
			return nil, nil
		}
	}
}

func removeLastChild(c container) {
	if c == nil {
		return
	}
	kids := c.childNodes()
	if len(kids) == 0 {
		return
	}
	kids[len(kids)-1].setOwner(nil)
	c.setChildNodes(kids[:len(kids)-1])
}

// insertAfterNode splices n in right after ref among ref's siblings. Used
// only during repair, where ref is known to be attached.
func insertAfterNode(ref, n Node) {
	c := ref.owner()
	if c == nil {
		return
	}
	kids := c.childNodes()
	for i, k := range kids {
		if k == ref {
			out := make([]Node, 0, len(kids)+1)
			out = append(out, kids[:i+1]...)
			out = append(out, n)
			out = append(out, kids[i+1:]...)
			n.setOwner(c)
			c.setChildNodes(out)
			return
		}
	}
}

// autofixNode closes every element left unclosed after repair with a
// synthetic close tag. Synthetic closes carry the (-1, -1) sentinel range:
// they occupy no source bytes, but they do serialize, so the output of an
// autofixed document is balanced even though the input was not.
func autofixNode(n Node) {
	el, ok := n.(*Element)
	if !ok {
		return
	}
	for _, c := range el.Children {
		autofixNode(c)
	}
	if el.Close == nil && !el.OpenTag.SelfClosing {
		el.Close = &CloseTag{
			Start: -1,
			End:   -1,
			Raw:   "</" + el.TagName + ">",
			Name:  el.TagName,
		}
	}
}
