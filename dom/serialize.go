package dom

import "strings"

// OuterHTML serializes a node and its subtree by concatenating stored raw
// text. An element contributes its open tag, its children, and its close tag
// if it has one; autofix-synthesized close tags are emitted from their
// stored text since they have no presence in source.
func OuterHTML(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

// InnerHTML serializes an element's children.
func InnerHTML(e *Element) string {
	var sb strings.Builder
	for _, c := range e.Children {
		writeNode(&sb, c)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Element:
		sb.WriteString(n.OpenTag.Raw)
		for _, c := range n.Children {
			writeNode(sb, c)
		}
		if n.Close != nil {
			sb.WriteString(n.Close.Raw)
		}
	case *Text:
		sb.WriteString(n.Data)
	case *Comment:
		sb.WriteString(n.Data)
	case *CDATA:
		sb.WriteString(n.Data)
	case *Directive:
		sb.WriteString(n.Data)
	}
}
