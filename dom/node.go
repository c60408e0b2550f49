// Package dom provides a position-annotated HTML tree that stays synchronized
// with its textual source under structural and attribute mutations. Every
// structurally significant span (tag boundaries, attribute boundaries, text
// boundaries) carries explicit byte offsets into the current source, and the
// package keeps those offsets correct as the source grows, shrinks, or is
// spliced at arbitrary offsets, without ever re-parsing the whole document.
package dom

import (
	"github.com/customerio/htmledit/tokenizer"
)

// Span locates a substring of the current source. Start and End are
// inclusive byte offsets; Data is the located text. Spans are value types:
// they are copied, never aliased, when positions are rewritten.
type Span struct {
	Start int
	End   int
	Data  string
}

// Tag records an element's open tag as found in source.
type Tag struct {
	Start       int
	End         int
	Raw         string
	SelfClosing bool
}

// CloseTag records an element's close tag. A close tag synthesized by
// autofix carries the sentinel range (-1, -1): it exists only for
// serialization and is never a slice of the source.
type CloseTag struct {
	Start int
	End   int
	Raw   string
	Name  string
}

// Synthetic reports whether the close tag was synthesized by autofix rather
// than found in source.
func (c *CloseTag) Synthetic() bool {
	return c != nil && c.Start == -1
}

// Attribute is one attribute of an element's open tag. Value is nil for
// valueless attributes (`disabled`). Value.Data excludes the quotes and has
// character references decoded; Source.Data is the full
// `name=quote?value?quote?` text as written.
type Attribute struct {
	Name   Span
	Value  *Span
	Quote  tokenizer.Quote
	Source Span
}

// container is the non-owning parent link: either the *Document for
// top-level nodes or the enclosing *Element. Children slices are the only
// ownership path through the tree.
type container interface {
	childNodes() []Node
	setChildNodes([]Node)
}

// Node is the closed set of tree node variants: *Element, *Text, *Comment,
// *CDATA, and *Directive. The synchronizer and serializer match over the
// full set.
type Node interface {
	// Range returns the node's inclusive start and end byte offsets into
	// the current source.
	Range() (start, end int)

	// Parent returns the enclosing element, or nil for top-level and
	// detached nodes.
	Parent() *Element

	setRange(start, end int)
	owner() container
	setOwner(container)
}

// base carries the range and parent link shared by all node variants.
type base struct {
	start, end int
	parent     container
}

func (b *base) Range() (int, int)    { return b.start, b.end }
func (b *base) setRange(s, e int)    { b.start, b.end = s, e }
func (b *base) owner() container     { return b.parent }
func (b *base) setOwner(c container) { b.parent = c }

func (b *base) Parent() *Element {
	if el, ok := b.parent.(*Element); ok {
		return el
	}
	return nil
}

// Element is an element node. TagName preserves source case; matching
// against close tags is case-insensitive.
type Element struct {
	base
	TagName  string
	OpenTag  Tag
	Close    *CloseTag
	Attrs    []Attribute
	Children []Node

	// attrIndex mirrors Attrs for fast reads; first occurrence wins when
	// source carries duplicates.
	attrIndex map[string]string
}

func (e *Element) childNodes() []Node        { return e.Children }
func (e *Element) setChildNodes(kids []Node) { e.Children = kids }

// Attr returns the value of the named attribute (case-sensitive) and
// whether it is present. Valueless attributes report "".
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrIndex[name]
	return v, ok
}

// findAttr returns the index of the named attribute in Attrs, or -1.
func (e *Element) findAttr(name string) int {
	for i := range e.Attrs {
		if e.Attrs[i].Name.Data == name {
			return i
		}
	}
	return -1
}

// Text is a run of character data, stored exactly as written in source.
type Text struct {
	base
	Data string
}

// Comment is a "<!-- -->" comment, markers included.
type Comment struct {
	base
	Data string
}

// CDATA is a "<![CDATA[ ]]>" section, markers included.
type CDATA struct {
	base
	Data string
}

// Directive is a doctype, processing instruction, or other "<!"
// declaration, markers included.
type Directive struct {
	base
	Data string
}
