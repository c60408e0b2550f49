package dom

import (
	"strings"

	"github.com/customerio/htmledit/edit"
	"github.com/customerio/htmledit/tokenizer"
)

// Options configures parsing and edit application.
type Options struct {
	// Autofix synthesizes close tags, with the (-1, -1) sentinel range, for
	// any element left unclosed after recovery, so serialization always
	// yields balanced markup.
	Autofix bool

	// RecognizeSelfClosing honors a trailing slash on any tag, including
	// standard and custom elements. When false, only void elements
	// self-close. This mirrors the behavior of SAX-style HTML parsers that
	// accept XML-ish self-closing custom tags.
	RecognizeSelfClosing bool

	// Strategy selects deferred or eager edit application.
	Strategy Strategy
}

// Parse builds a position-annotated document from src. It never fails:
// malformed input is recovered into a best-effort tree that still
// serializes byte-for-byte back to src.
func Parse(src string, opts Options) *Document {
	doc := &Document{
		source: src,
		opts:   opts,
		buf:    edit.NewBuffer(),
		ops:    make(map[int]*pendingOp),
	}
	b := &builder{src: src, opts: opts, doc: doc}
	tokenizer.Run(src, b)
	return doc
}

// parseFragment parses src as a fragment and returns its detached top-level
// nodes with fragment-relative ranges.
func parseFragment(src string, opts Options) []Node {
	fd := Parse(src, opts)
	nodes := fd.Children
	fd.Children = nil
	for _, n := range nodes {
		n.setOwner(nil)
	}
	return nodes
}

// builder assembles the tree from tokenizer callbacks.
type builder struct {
	src  string
	opts Options
	doc  *Document

	stack []*Element

	// Open tag under assembly.
	el *Element

	// Attribute under assembly.
	attrName  Span
	valStart  int
	valEnd    int
	valData   strings.Builder
	inAttr    bool
	attrValue bool
}

func (b *builder) OpenTagName(start, end int) {
	b.el = &Element{
		TagName:   b.src[start+1 : end],
		OpenTag:   Tag{Start: start},
		attrIndex: make(map[string]string),
	}
}

func (b *builder) AttrName(start, end int) {
	// Tolerate attribute callbacks with no open tag in flight.
	if b.el == nil {
		return
	}
	b.attrName = Span{Start: start, End: end - 1, Data: b.src[start:end]}
	b.valStart = -1
	b.valEnd = -1
	b.valData.Reset()
	b.inAttr = true
	b.attrValue = false
}

func (b *builder) AttrData(start, end int) {
	if !b.inAttr {
		return
	}
	b.attrValue = true
	if b.valStart < 0 {
		b.valStart = start
	}
	b.valEnd = end - 1
	b.valData.WriteString(b.src[start:end])
}

func (b *builder) AttrEntity(decoded string, start, end int) {
	if !b.inAttr {
		return
	}
	b.attrValue = true
	if b.valStart < 0 {
		b.valStart = start
	}
	b.valEnd = end - 1
	b.valData.WriteString(decoded)
}

func (b *builder) AttrEnd(quote tokenizer.Quote, end int) {
	if b.el == nil || !b.inAttr {
		return
	}
	b.inAttr = false

	a := Attribute{
		Name:  b.attrName,
		Quote: quote,
		Source: Span{
			Start: b.attrName.Start,
			End:   end - 1,
			Data:  b.src[b.attrName.Start:end],
		},
	}
	if quote != tokenizer.QuoteNone && b.attrValue {
		a.Value = &Span{Start: b.valStart, End: b.valEnd, Data: b.valData.String()}
	}
	b.el.Attrs = append(b.el.Attrs, a)
	if _, dup := b.el.attrIndex[a.Name.Data]; !dup {
		b.el.attrIndex[a.Name.Data] = valueOf(a)
	}
}

func (b *builder) OpenTagEnd(end int) {
	b.finishOpenTag(end, false)
}

func (b *builder) SelfClosingTag(end int) {
	honored := b.opts.RecognizeSelfClosing || tokenizer.IsVoid(b.el.TagName)
	b.finishOpenTag(end, honored)
}

func (b *builder) finishOpenTag(end int, selfClosing bool) {
	el := b.el
	if el == nil {
		return
	}
	b.el = nil

	el.OpenTag.End = end - 1
	el.OpenTag.Raw = b.src[el.OpenTag.Start:end]

	if tokenizer.IsVoid(el.TagName) {
		selfClosing = true
	}
	el.OpenTag.SelfClosing = selfClosing

	if selfClosing {
		el.setRange(el.OpenTag.Start, el.OpenTag.End)
		b.attach(el)
		return
	}

	// Provisional: resolved by a matching close tag or at end of input.
	el.setRange(el.OpenTag.Start, maxOffset(len(b.src)-1, el.OpenTag.End))
	b.attach(el)
	b.stack = append(b.stack, el)
}

func (b *builder) CloseTag(start, end int) {
	raw := b.src[start:end]
	name := closeTagName(raw)

	match := -1
	if name != "" {
		for i := len(b.stack) - 1; i >= 0; i-- {
			if strings.EqualFold(b.stack[i].TagName, name) {
				match = i
				break
			}
		}
	}
	if match < 0 {
		// No open element absorbs it; keep the literal bytes as text.
		b.attachText(start, end)
		return
	}

	// Elements opened after the match are left unclosed; their content ends
	// where the close tag begins.
	for i := len(b.stack) - 1; i > match; i-- {
		b.stack[i].setRange(b.stack[i].OpenTag.Start, start-1)
	}
	el := b.stack[match]
	el.Close = &CloseTag{Start: start, End: end - 1, Raw: raw, Name: name}
	el.setRange(el.OpenTag.Start, end-1)
	b.stack = b.stack[:match]
}

func (b *builder) Text(start, end int) {
	b.attachText(start, end)
}

func (b *builder) Comment(start, end int) {
	n := &Comment{Data: b.src[start:end]}
	n.setRange(start, end-1)
	b.attach(n)
}

func (b *builder) CDATA(start, end int) {
	n := &CDATA{Data: b.src[start:end]}
	n.setRange(start, end-1)
	b.attach(n)
}

func (b *builder) Directive(start, end int) {
	n := &Directive{Data: b.src[start:end]}
	n.setRange(start, end-1)
	b.attach(n)
}

func (b *builder) End(srcLen int) {
	for i := len(b.stack) - 1; i >= 0; i-- {
		b.stack[i].setRange(b.stack[i].OpenTag.Start, srcLen-1)
	}
	b.stack = nil

	for _, n := range b.doc.Children {
		repairNode(n)
	}
	if b.opts.Autofix {
		for _, n := range b.doc.Children {
			autofixNode(n)
		}
	}
}

// attach appends a node to the current insertion point: the innermost open
// element, or the document itself.
func (b *builder) attach(n Node) {
	if len(b.stack) > 0 {
		parent := b.stack[len(b.stack)-1]
		n.setOwner(parent)
		parent.Children = append(parent.Children, n)
		return
	}
	n.setOwner(b.doc)
	b.doc.Children = append(b.doc.Children, n)
}

// attachText adds character data, merging with an adjacent preceding text
// node so entity-split tokens form a single node.
func (b *builder) attachText(start, end int) {
	var siblings []Node
	if len(b.stack) > 0 {
		siblings = b.stack[len(b.stack)-1].Children
	} else {
		siblings = b.doc.Children
	}
	if len(siblings) > 0 {
		if t, ok := siblings[len(siblings)-1].(*Text); ok {
			if _, te := t.Range(); te+1 == start {
				t.Data += b.src[start:end]
				t.setRange(t.start, end-1)
				return
			}
		}
	}
	n := &Text{Data: b.src[start:end]}
	n.setRange(start, end-1)
	b.attach(n)
}

// closeTagName extracts the tag name from raw close-tag bytes, tolerating
// stray whitespace and a missing '>'.
func closeTagName(raw string) string {
	s := strings.TrimPrefix(raw, "</")
	s = strings.TrimSuffix(s, ">")
	return strings.TrimSpace(s)
}

func valueOf(a Attribute) string {
	if a.Value == nil {
		return ""
	}
	return a.Value.Data
}

func maxOffset(a, b int) int {
	if a > b {
		return a
	}
	return b
}
