// Package template binds file-name glob patterns to pluggable template
// engines. A Composite keeps its bindings in registration order and resolves a
// file name to the first engine whose pattern matches, so template files of
// different technologies can share one directory.
package template
