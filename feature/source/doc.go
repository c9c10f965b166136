// Package source finds release descriptor files and turns them into catalog jobs.
//
// A Source lists descriptors and opens them for reading; Dir reads a local directory and
// Bucket reads objects under a storage prefix. Jobs sorts the listing into version order,
// cuts the requested window and assigns release sequences. Loader adapts a Source into the
// catalog.Loader the Builder consumes.
package source
