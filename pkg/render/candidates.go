package render

import (
	"slices"

	"github.com/goliatone/go-doctemplate/pkg/node"
)

// Candidate is one render function eligible for a node type together with the
// name of the template source that contributed it.
type Candidate struct {
	Source string
	Render RenderFunc
}

// Candidates holds the render functions for a single node type in source
// declaration order. The last element has the highest priority.
type Candidates []Candidate

// Sources lists the contributing source names in declaration order.
func (c Candidates) Sources() []string {
	out := make([]string, len(c))
	for idx, candidate := range c {
		out[idx] = candidate.Source
	}
	return out
}

// Table maps node types to their candidate lists.
type Table map[node.Type]Candidates

// Lookup returns the candidates registered for t.
func (t Table) Lookup(typ node.Type) Candidates {
	if t == nil {
		return nil
	}
	return t[typ]
}

// Types returns the node types with at least one candidate, sorted by name.
func (t Table) Types() []node.Type {
	out := make([]node.Type, 0, len(t))
	for typ, candidates := range t {
		if len(candidates) > 0 {
			out = append(out, typ)
		}
	}
	slices.Sort(out)
	return out
}

func (t Table) clone() Table {
	out := make(Table, len(t))
	for typ, candidates := range t {
		if len(candidates) == 0 {
			continue
		}
		out[typ] = slices.Clone(candidates)
	}
	return out
}
