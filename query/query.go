// Package query provides read-only lookups over a parsed document: walks,
// the common byId/byTag/byClass accessors, and CSS selector matching.
package query

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/customerio/htmledit/dom"
)

// Walk visits every element in document order. Returning false from fn
// stops the walk.
func Walk(d *dom.Document, fn func(*dom.Element) bool) {
	walkNodes(d.Children, fn)
}

// WalkFrom visits el and every element below it in document order.
func WalkFrom(el *dom.Element, fn func(*dom.Element) bool) {
	if !fn(el) {
		return
	}
	walkNodes(el.Children, fn)
}

func walkNodes(nodes []dom.Node, fn func(*dom.Element) bool) bool {
	for _, n := range nodes {
		el, ok := n.(*dom.Element)
		if !ok {
			continue
		}
		if !fn(el) {
			return false
		}
		if !walkNodes(el.Children, fn) {
			return false
		}
	}
	return true
}

// ByID returns the first element whose id attribute equals id, or nil.
func ByID(d *dom.Document, id string) *dom.Element {
	var found *dom.Element
	Walk(d, func(e *dom.Element) bool {
		if v, ok := e.Attr("id"); ok && v == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// ByTag returns all elements with the given tag name, matched
// case-insensitively.
func ByTag(d *dom.Document, name string) []*dom.Element {
	var out []*dom.Element
	Walk(d, func(e *dom.Element) bool {
		if strings.EqualFold(e.TagName, name) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// ByClass returns all elements whose class attribute contains the given
// class.
func ByClass(d *dom.Document, class string) []*dom.Element {
	var out []*dom.Element
	Walk(d, func(e *dom.Element) bool {
		if hasClass(e, class) {
			out = append(out, e)
		}
		return true
	})
	return out
}

func hasClass(e *dom.Element, class string) bool {
	v, ok := e.Attr("class")
	if !ok {
		return false
	}
	for _, f := range strings.Fields(v) {
		if f == class {
			return true
		}
	}
	return false
}

// TextContent concatenates the text beneath n with character references
// decoded. Comments, CDATA sections, and directives contribute nothing.
func TextContent(n dom.Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return html.UnescapeString(sb.String())
}

func collectText(n dom.Node, sb *strings.Builder) {
	switch v := n.(type) {
	case *dom.Text:
		sb.WriteString(v.Data)
	case *dom.Element:
		for _, c := range v.Children {
			collectText(c, sb)
		}
	}
}

// Dataset returns the element's data-* attributes keyed by the name after
// the prefix.
func Dataset(e *dom.Element) map[string]string {
	out := make(map[string]string)
	for _, a := range e.Attrs {
		name := a.Name.Data
		if !strings.HasPrefix(name, "data-") {
			continue
		}
		var v string
		if a.Value != nil {
			v = a.Value.Data
		}
		if _, dup := out[name[len("data-"):]]; !dup {
			out[name[len("data-"):]] = v
		}
	}
	return out
}
