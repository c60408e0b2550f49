package dom

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump renders the tree as indented branches with node kinds and byte
// ranges. It is a debugging aid; pending edits are not flushed first.
func Dump(d *Document) string {
	tree := treeprint.New()
	tree.SetValue("document")
	for _, n := range d.Children {
		dumpNode(tree, n)
	}
	return tree.String()
}

func dumpNode(t treeprint.Tree, n Node) {
	s, e := n.Range()
	meta := fmt.Sprintf("%d:%d", s, e)
	switch v := n.(type) {
	case *Element:
		b := t.AddMetaBranch(meta, "<"+v.TagName+">")
		for _, a := range v.Attrs {
			b.AddNode(fmt.Sprintf("@%s=%q", a.Name.Data, valueOf(a)))
		}
		for _, c := range v.Children {
			dumpNode(b, c)
		}
	case *Text:
		t.AddMetaNode(meta, fmt.Sprintf("text %q", clip(v.Data, 40)))
	case *Comment:
		t.AddMetaNode(meta, fmt.Sprintf("comment %q", clip(v.Data, 40)))
	case *CDATA:
		t.AddMetaNode(meta, fmt.Sprintf("cdata %q", clip(v.Data, 40)))
	case *Directive:
		t.AddMetaNode(meta, fmt.Sprintf("directive %q", clip(v.Data, 40)))
	}
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
