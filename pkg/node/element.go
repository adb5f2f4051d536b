package node

import (
	"maps"
	"path"
	"slices"
	"strings"
)

// Element is the in-memory Node implementation used by the bundled document
// loader. Elements are assembled once and treated as immutable afterwards.
type Element struct {
	NodeType   Type
	NodeID     string
	NodeTitle  string
	NodeRoles  []string
	Attrs      map[string]string
	NodeTarget string
	Body       string

	parent   *Element
	children []*Element
}

// NewElement constructs an element of the given type.
func NewElement(t Type) *Element {
	return &Element{NodeType: t}
}

// Append attaches children to e, setting their parent pointer.
func (e *Element) Append(children ...*Element) *Element {
	for _, child := range children {
		if child == nil {
			continue
		}
		child.parent = e
		e.children = append(e.children, child)
	}
	return e
}

func (e *Element) Type() Type { return e.NodeType }
func (e *Element) ID() string { return e.NodeID }
func (e *Element) Title() string { return e.NodeTitle }
func (e *Element) Target() string { return e.NodeTarget }
func (e *Element) Text() string { return e.Body }
func (e *Element) Roles() []string { return slices.Clone(e.NodeRoles) }

// HasRole reports whether role is listed on the element.
func (e *Element) HasRole(role string) bool {
	return slices.Contains(e.NodeRoles, role)
}

// Attr looks up an attribute on the element itself; it does not inherit.
func (e *Element) Attr(name string) (string, bool) {
	if e.Attrs == nil {
		return "", false
	}
	value, ok := e.Attrs[name]
	return value, ok
}

// Attributes returns a copy of the element attributes.
func (e *Element) Attributes() map[string]string {
	if len(e.Attrs) == 0 {
		return map[string]string{}
	}
	return maps.Clone(e.Attrs)
}

// Parent returns the enclosing node, or nil for the root.
func (e *Element) Parent() Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Children returns the child nodes in document order.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	for idx, child := range e.children {
		out[idx] = child
	}
	return out
}

// ImageURI resolves target against the nearest imagesdir attribute. Absolute
// URLs, data URIs and rooted paths are returned unchanged.
func (e *Element) ImageURI(target string) string {
	if target == "" || isAbsoluteURI(target) {
		return target
	}
	dir := e.inheritedAttr("imagesdir")
	if dir == "" {
		return target
	}
	if isAbsoluteURI(dir) {
		return strings.TrimSuffix(dir, "/") + "/" + strings.TrimPrefix(target, "/")
	}
	return path.Join(dir, target)
}

func (e *Element) inheritedAttr(name string) string {
	for cur := e; cur != nil; cur = cur.parent {
		if value, ok := cur.Attr(name); ok {
			return value
		}
	}
	return ""
}

func isAbsoluteURI(value string) bool {
	if strings.HasPrefix(value, "/") || strings.HasPrefix(value, "data:") {
		return true
	}
	scheme, _, ok := strings.Cut(value, "://")
	return ok && scheme != "" && !strings.ContainsAny(scheme, "/.")
}
