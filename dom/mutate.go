package dom

// Structural primitives. These rewrite tree shape only; they never touch
// the source string or stored positions. The high-level mutation API in
// facade.go layers source edits on top of them, and they are usable on
// their own for assembling detached subtrees.

// Detach removes n from its parent's children. Detaching an already
// detached node is a no-op.
func Detach(n Node) {
	c := n.owner()
	if c == nil {
		return
	}
	if i := indexOf(c, n); i >= 0 {
		spliceChildren(c, i, 1, nil)
	}
	n.setOwner(nil)
}

// InsertBefore splices nodes in as ref's preceding siblings. It fails,
// before any change is made, when ref is detached or cannot be found in its
// recorded parent.
func InsertBefore(ref Node, nodes ...Node) error {
	c, i, err := locate(ref)
	if err != nil {
		return err
	}
	spliceChildren(c, i, 0, nodes)
	return nil
}

// InsertAfter splices nodes in as ref's following siblings.
func InsertAfter(ref Node, nodes ...Node) error {
	c, i, err := locate(ref)
	if err != nil {
		return err
	}
	spliceChildren(c, i+1, 0, nodes)
	return nil
}

// ReplaceNode swaps ref for nodes in ref's parent. ref is detached.
func ReplaceNode(ref Node, nodes ...Node) error {
	c, i, err := locate(ref)
	if err != nil {
		return err
	}
	spliceChildren(c, i, 1, nodes)
	ref.setOwner(nil)
	return nil
}

func locate(ref Node) (container, int, error) {
	c := ref.owner()
	if c == nil {
		return nil, 0, ErrNoParent
	}
	i := indexOf(c, ref)
	if i < 0 {
		return nil, 0, ErrNotFound
	}
	return c, i, nil
}

func indexOf(c container, n Node) int {
	for i, k := range c.childNodes() {
		if k == n {
			return i
		}
	}
	return -1
}

// spliceChildren replaces del children at index i with nodes, reparenting
// both the inserted and the removed.
func spliceChildren(c container, i, del int, nodes []Node) {
	kids := c.childNodes()
	for _, k := range kids[i : i+del] {
		k.setOwner(nil)
	}
	out := make([]Node, 0, len(kids)-del+len(nodes))
	out = append(out, kids[:i]...)
	out = append(out, nodes...)
	out = append(out, kids[i+del:]...)
	for _, n := range nodes {
		n.setOwner(c)
	}
	c.setChildNodes(out)
}

func replaceChildren(c container, nodes []Node) {
	spliceChildren(c, 0, len(c.childNodes()), nodes)
}

func appendChildren(c container, nodes []Node) {
	spliceChildren(c, len(c.childNodes()), 0, nodes)
}

func prependChildren(c container, nodes []Node) {
	spliceChildren(c, 0, 0, nodes)
}

// putAttr replaces the attribute named a.Name.Data in place, or appends it.
func (e *Element) putAttr(a Attribute) {
	if i := e.findAttr(a.Name.Data); i >= 0 {
		e.Attrs[i] = a
	} else {
		e.Attrs = append(e.Attrs, a)
	}
	e.refreshAttrIndex()
}

// dropAttr removes the named attribute and reports whether it was present.
func (e *Element) dropAttr(name string) (Attribute, bool) {
	i := e.findAttr(name)
	if i < 0 {
		return Attribute{}, false
	}
	a := e.Attrs[i]
	e.Attrs = append(e.Attrs[:i:i], e.Attrs[i+1:]...)
	e.refreshAttrIndex()
	return a, true
}

func (e *Element) refreshAttrIndex() {
	e.attrIndex = make(map[string]string, len(e.Attrs))
	for _, a := range e.Attrs {
		if _, dup := e.attrIndex[a.Name.Data]; !dup {
			e.attrIndex[a.Name.Data] = valueOf(a)
		}
	}
}
