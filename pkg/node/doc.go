// Package node defines the read-only document node view consumed by the
// template chain. Node types form a closed enumeration; templates are keyed by
// these values and never by structural inspection of template objects.
package node
