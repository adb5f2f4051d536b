// Package source turns template directories, in-memory mappings and theme
// manifests into template sources: contributors of render functions keyed by
// node type. Directory sources compile every template eagerly so that
// rendering never touches the file system.
package source
