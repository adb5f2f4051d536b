// Package orchestrator wires template discovery, chain building and the
// default renderer into a ready to use render.Converter. It applies the
// built-in defaults (html5 backend, pongo2/expr/static engines) while
// remaining open to dependency injection.
package orchestrator
