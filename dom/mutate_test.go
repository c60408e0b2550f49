package dom_test

import (
	"errors"
	"testing"

	"github.com/customerio/htmledit/dom"
)

func parseOne(t *testing.T, src string) (*dom.Document, *dom.Element) {
	t.Helper()
	doc := dom.Parse(src, dom.Options{})
	return doc, el(t, doc, 0)
}

func TestDetach(t *testing.T) {
	t.Parallel()

	doc, div := parseOne(t, "<div><a>1</a><b>2</b></div>")
	a := el(t, div, 0)

	dom.Detach(a)
	if a.Parent() != nil {
		t.Error("detached node still has a parent")
	}
	if len(div.Children) != 1 {
		t.Fatalf("parent kept %d children, want 1", len(div.Children))
	}
	if got := dom.InnerHTML(div); got != "<b>2</b>" {
		t.Errorf("InnerHTML = %q", got)
	}

	// Detaching again is harmless; the source is untouched throughout.
	dom.Detach(a)
	if doc.Source() != "<div><a>1</a><b>2</b></div>" {
		t.Error("structural primitives must not touch the source")
	}
}

func TestInsertBeforeAfterPrimitives(t *testing.T) {
	t.Parallel()

	_, div := parseOne(t, "<div><b>2</b></div>")
	b := el(t, div, 0)

	a := &dom.Element{TagName: "a"}
	c := &dom.Element{TagName: "c"}

	if err := dom.InsertBefore(b, a); err != nil {
		t.Fatal(err)
	}
	if err := dom.InsertAfter(b, c); err != nil {
		t.Fatal(err)
	}
	if len(div.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(div.Children))
	}
	if div.Children[0] != a || div.Children[1] != b || div.Children[2] != c {
		t.Error("siblings out of order")
	}
	if a.Parent() != div || c.Parent() != div {
		t.Error("inserted nodes not reparented")
	}
}

func TestInsertRelativeToDetachedNode(t *testing.T) {
	t.Parallel()

	_, div := parseOne(t, "<div><b>2</b></div>")
	b := el(t, div, 0)
	dom.Detach(b)

	n := &dom.Text{Data: "x"}
	if err := dom.InsertBefore(b, n); !errors.Is(err, dom.ErrNoParent) {
		t.Errorf("InsertBefore detached = %v, want ErrNoParent", err)
	}
	if err := dom.InsertAfter(b, n); !errors.Is(err, dom.ErrNoParent) {
		t.Errorf("InsertAfter detached = %v, want ErrNoParent", err)
	}
	if err := dom.ReplaceNode(b, n); !errors.Is(err, dom.ErrNoParent) {
		t.Errorf("ReplaceNode detached = %v, want ErrNoParent", err)
	}
	if len(div.Children) != 0 {
		t.Error("failed operations must not modify the tree")
	}
}

func TestReplaceNode(t *testing.T) {
	t.Parallel()

	_, div := parseOne(t, "<div><a>1</a></div>")
	a := el(t, div, 0)

	x := &dom.Text{Data: "x"}
	y := &dom.Text{Data: "y"}
	if err := dom.ReplaceNode(a, x, y); err != nil {
		t.Fatal(err)
	}
	if a.Parent() != nil {
		t.Error("replaced node still attached")
	}
	if got := dom.InnerHTML(div); got != "xy" {
		t.Errorf("InnerHTML = %q", got)
	}
}
