package query

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/customerio/htmledit/dom"
)

// Select returns the elements matching a CSS selector group, in document
// order. Matching runs over a shadow x/net/html tree built from the
// document, so the full cascadia grammar is available; matched shadow nodes
// are mapped back to their originals.
func Select(d *dom.Document, selector string) ([]*dom.Element, error) {
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, err
	}
	root, back := shadowTree(d)
	var out []*dom.Element
	for _, n := range cascadia.QueryAll(root, sel) {
		if el := back[n]; el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

// First returns the first element matching selector, or nil.
func First(d *dom.Document, selector string) (*dom.Element, error) {
	els, err := Select(d, selector)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, nil
	}
	return els[0], nil
}

// shadowTree mirrors the document into x/net/html nodes for the matcher.
// Tag and attribute names are lowercased the way that parser would have
// produced them; selector matching is case-insensitive by convention.
func shadowTree(d *dom.Document) (*html.Node, map[*html.Node]*dom.Element) {
	back := make(map[*html.Node]*dom.Element)
	root := &html.Node{Type: html.DocumentNode}
	for _, c := range d.Children {
		shadowNode(root, c, back)
	}
	return root, back
}

func shadowNode(parent *html.Node, n dom.Node, back map[*html.Node]*dom.Element) {
	switch v := n.(type) {
	case *dom.Element:
		name := strings.ToLower(v.TagName)
		m := &html.Node{
			Type:     html.ElementNode,
			Data:     name,
			DataAtom: atom.Lookup([]byte(name)),
		}
		for _, a := range v.Attrs {
			var val string
			if a.Value != nil {
				val = a.Value.Data
			}
			m.Attr = append(m.Attr, html.Attribute{
				Key: strings.ToLower(a.Name.Data),
				Val: val,
			})
		}
		parent.AppendChild(m)
		back[m] = v
		for _, c := range v.Children {
			shadowNode(m, c, back)
		}
	case *dom.Text:
		parent.AppendChild(&html.Node{Type: html.TextNode, Data: v.Data})
	}
}
