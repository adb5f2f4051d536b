package node

import (
	"sort"
	"strings"
)

// Type identifies the kind of a document node. Template files and in-memory
// mappings bind render functions to these values.
type Type string

// Known node types.
const (
	TypeDocument      Type = "document"
	TypeEmbedded      Type = "embedded"
	TypeSection       Type = "section"
	TypePreamble      Type = "preamble"
	TypeParagraph     Type = "paragraph"
	TypeImage         Type = "image"
	TypeInlineImage   Type = "inline_image"
	TypeListing       Type = "listing"
	TypeLiteral       Type = "literal"
	TypeAdmonition    Type = "admonition"
	TypeUList         Type = "ulist"
	TypeOList         Type = "olist"
	TypeDList         Type = "dlist"
	TypeListItem      Type = "list_item"
	TypeQuote         Type = "quote"
	TypeVerse         Type = "verse"
	TypeSidebar       Type = "sidebar"
	TypeExample       Type = "example"
	TypeOpen          Type = "open"
	TypeTable         Type = "table"
	TypeThematicBreak Type = "thematic_break"
	TypePageBreak     Type = "page_break"
	TypeInlineAnchor  Type = "inline_anchor"
	TypeInlineQuoted  Type = "inline_quoted"
)

var known = map[Type]struct{}{
	TypeDocument:      {},
	TypeEmbedded:      {},
	TypeSection:       {},
	TypePreamble:      {},
	TypeParagraph:     {},
	TypeImage:         {},
	TypeInlineImage:   {},
	TypeListing:       {},
	TypeLiteral:       {},
	TypeAdmonition:    {},
	TypeUList:         {},
	TypeOList:         {},
	TypeDList:         {},
	TypeListItem:      {},
	TypeQuote:         {},
	TypeVerse:         {},
	TypeSidebar:       {},
	TypeExample:       {},
	TypeOpen:          {},
	TypeTable:         {},
	TypeThematicBreak: {},
	TypePageBreak:     {},
	TypeInlineAnchor:  {},
	TypeInlineQuoted:  {},
}

// Valid reports whether t is one of the known node types.
func (t Type) Valid() bool {
	_, ok := known[t]
	return ok
}

func (t Type) String() string {
	return string(t)
}

// ParseType normalises raw (trimmed, lower-cased) and reports whether it names
// a known node type.
func ParseType(raw string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", false
	}
	return t, true
}

// Types returns every known node type sorted by name.
func Types() []Type {
	out := make([]Type, 0, len(known))
	for t := range known {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Node is the read-only view of a document node supplied by the conversion
// pipeline. Templates inspect it to decide whether to render directly or defer
// to the next candidate.
type Node interface {
	Type() Type
	ID() string
	Title() string
	Roles() []string
	HasRole(role string) bool
	Attr(name string) (string, bool)
	Attributes() map[string]string
	Target() string
	Text() string
	ImageURI(target string) string
	Parent() Node
	Children() []Node
}
