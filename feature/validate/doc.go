// Package validate checks release descriptors without building a catalog: the document root,
// the reference graph (cycles, ordering, chain depth) and parents missing from the release.
package validate
