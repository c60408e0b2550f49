package tokenizer

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// voidElements are the HTML elements that never take a close tag.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// IsVoid reports whether name (any case) is a void HTML element.
func IsVoid(name string) bool {
	lower := strings.ToLower(name)
	return voidElements[atom.Lookup([]byte(lower))]
}

// IsKnownTag reports whether name is a standard HTML tag name. Custom
// elements (anything the atom table does not know) report false.
func IsKnownTag(name string) bool {
	return atom.Lookup([]byte(strings.ToLower(name))) != 0
}
