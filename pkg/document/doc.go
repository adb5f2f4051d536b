// Package document loads node trees described in JSON or YAML into
// *node.Element values and converts them through a render.Converter. It is the
// minimal document model the CLI and end-to-end tests drive the template chain
// with.
package document
