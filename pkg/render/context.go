package render

import "github.com/goliatone/go-doctemplate/pkg/node"

// floor marks the cursor of a Context handed to the default renderer.
const floor = -1

// Context is handed to every RenderFunc. It is an immutable value: the cursor
// points at the candidate currently running, and Next derives a fresh Context
// for the candidate below it. Contexts must not be retained past the call that
// received them. The zero Context is inert: it sits at the floor, Next and
// Content return "".
type Context struct {
	node   node.Node
	cursor int
	inv    *invocation
}

type invocation struct {
	conv       *Converter
	candidates Candidates
	depth      int
}

// Node returns the node being rendered.
func (c Context) Node() node.Node {
	return c.node
}

// Cursor returns the index of the running candidate, or -1 inside the default
// renderer and for the zero Context.
func (c Context) Cursor() int {
	if c.inv == nil {
		return floor
	}
	return c.cursor
}

// Depth reports how many enclosing nodes are being rendered around this one.
func (c Context) Depth() int {
	if c.inv == nil {
		return 0
	}
	return c.inv.depth
}

// Source names the template source of the running candidate. It is empty for
// the default renderer.
func (c Context) Source() string {
	if c.inv == nil || c.cursor <= floor || c.cursor >= len(c.inv.candidates) {
		return ""
	}
	return c.inv.candidates[c.cursor].Source
}

// Next renders the node with the next lower-priority candidate, or with the
// default renderer once the first candidate has been passed. Repeated calls
// re-run the same handler. Inside the default renderer Next returns "".
func (c Context) Next() (string, error) {
	if c.inv == nil || c.cursor <= floor {
		return "", nil
	}
	return c.inv.call(c.node, c.cursor-1)
}

// Content renders the node's children through the full chain. Each child gets
// its own cursor; this is unrelated to Next.
func (c Context) Content() (string, error) {
	if c.inv == nil || c.inv.conv == nil {
		return "", nil
	}
	return c.inv.conv.renderChildren(c.node, c.inv.depth+1)
}

func (inv *invocation) call(n node.Node, cursor int) (string, error) {
	if cursor < 0 {
		return inv.conv.fallback.Render(Context{node: n, cursor: floor, inv: inv})
	}
	candidate := inv.candidates[cursor]
	out, err := candidate.Render(Context{node: n, cursor: cursor, inv: inv})
	if err != nil {
		return "", wrapRenderError(n, candidate.Source, err)
	}
	return out, nil
}
