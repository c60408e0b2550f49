package tokenizer_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/customerio/htmledit/tokenizer"
)

// collector records callbacks as readable strings so tests can compare
// whole event streams.
type collector struct {
	src    string
	events []string
}

func (c *collector) add(format string, args ...any) {
	c.events = append(c.events, fmt.Sprintf(format, args...))
}

func (c *collector) OpenTagName(start, end int)  { c.add("name %q @%d", c.src[start:end], start) }
func (c *collector) AttrName(start, end int)     { c.add("attr %q @%d", c.src[start:end], start) }
func (c *collector) AttrData(start, end int)     { c.add("val %q @%d", c.src[start:end], start) }
func (c *collector) OpenTagEnd(end int)          { c.add("open> %d", end) }
func (c *collector) SelfClosingTag(end int)      { c.add("self> %d", end) }
func (c *collector) CloseTag(start, end int)     { c.add("close %q @%d", c.src[start:end], start) }
func (c *collector) Text(start, end int)         { c.add("text %q @%d", c.src[start:end], start) }
func (c *collector) Comment(start, end int)      { c.add("comment %q @%d", c.src[start:end], start) }
func (c *collector) CDATA(start, end int)        { c.add("cdata %q @%d", c.src[start:end], start) }
func (c *collector) Directive(start, end int)    { c.add("directive %q @%d", c.src[start:end], start) }
func (c *collector) End(srcLen int)              { c.add("end %d", srcLen) }

func (c *collector) AttrEntity(decoded string, start, end int) {
	c.add("ent %q=%q @%d", c.src[start:end], decoded, start)
}

func (c *collector) AttrEnd(q tokenizer.Quote, end int) {
	c.add("attrend %d %d", q, end)
}

func run(src string) []string {
	c := &collector{src: src}
	tokenizer.Run(src, c)
	return c.events
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "text only",
			src:  "hello",
			want: []string{`text "hello" @0`, "end 5"},
		},
		{
			name: "double quoted attribute",
			src:  `<a href="x">y</a>`,
			want: []string{
				`name "<a" @0`,
				`attr "href" @3`,
				`val "x" @9`,
				fmt.Sprintf("attrend %d 11", tokenizer.QuoteDouble),
				"open> 12",
				`text "y" @12`,
				`close "</a>" @13`,
				"end 17",
			},
		},
		{
			name: "entity inside attribute value",
			src:  `<a href="x&amp;y">`,
			want: []string{
				`name "<a" @0`,
				`attr "href" @3`,
				`val "x" @9`,
				`ent "&amp;"="&" @10`,
				`val "y" @15`,
				fmt.Sprintf("attrend %d 17", tokenizer.QuoteDouble),
				"open> 18",
				"end 18",
			},
		},
		{
			name: "single quoted bare and valueless",
			src:  `<input type='text' width=10 disabled>`,
			want: []string{
				`name "<input" @0`,
				`attr "type" @7`,
				`val "text" @13`,
				fmt.Sprintf("attrend %d 18", tokenizer.QuoteSingle),
				`attr "width" @19`,
				`val "10" @25`,
				fmt.Sprintf("attrend %d 27", tokenizer.QuoteBare),
				`attr "disabled" @28`,
				fmt.Sprintf("attrend %d 36", tokenizer.QuoteNone),
				"open> 37",
				"end 37",
			},
		},
		{
			name: "self closing",
			src:  `<br/>`,
			want: []string{`name "<br" @0`, "self> 5", "end 5"},
		},
		{
			name: "malformed close tag with space",
			src:  `<main>ok</ main>`,
			want: []string{
				`name "<main" @0`,
				"open> 6",
				`text "ok" @6`,
				`close "</ main>" @8`,
				"end 16",
			},
		},
		{
			name: "comment",
			src:  `a<!-- c -->b`,
			want: []string{
				`text "a" @0`,
				`comment "<!-- c -->" @1`,
				`text "b" @11`,
				"end 12",
			},
		},
		{
			name: "cdata section",
			src:  `<![CDATA[x]]>`,
			want: []string{`cdata "<![CDATA[x]]>" @0`, "end 13"},
		},
		{
			name: "doctype",
			src:  `<!DOCTYPE html><p>`,
			want: []string{
				`directive "<!DOCTYPE html>" @0`,
				`name "<p" @15`,
				"open> 18",
				"end 18",
			},
		},
		{
			name: "close tag truncated at end of input",
			src:  `<div>x</div`,
			want: []string{
				`name "<div" @0`,
				"open> 5",
				`text "x" @5`,
				`close "</div" @6`,
				"end 11",
			},
		},
		{
			name: "open tag truncated at end of input",
			src:  `<div class="x`,
			want: []string{
				`name "<div" @0`,
				`attr "class" @5`,
				`val "x" @12`,
				fmt.Sprintf("attrend %d 13", tokenizer.QuoteDouble),
				"open> 13",
				"end 13",
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := run(tt.src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("events mismatch\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestVoids(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"br", "img", "input", "meta", "hr", "wbr"} {
		if !tokenizer.IsVoid(name) {
			t.Errorf("IsVoid(%q) = false", name)
		}
	}
	for _, name := range []string{"div", "span", "x-icon", "script"} {
		if tokenizer.IsVoid(name) {
			t.Errorf("IsVoid(%q) = true", name)
		}
	}
	if !tokenizer.IsKnownTag("div") || tokenizer.IsKnownTag("x-icon") {
		t.Error("IsKnownTag misclassifies")
	}
}
