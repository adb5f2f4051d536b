// Package chain assembles, per node type, the ordered list of candidate render
// functions contributed by template sources. Sources are walked in declaration
// order; the last contributor ends up on top of the chain and delegates
// downward with Context.Next.
package chain
