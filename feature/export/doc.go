// Package export persists the renumbered catalog tables.
//
// An export always writes a manifest.json into the output directory. Depending on the Config it
// also replaces the tables in the configured database (sqlite or mysql through GORM), writes one
// CSV file per table and uploads the produced files to object storage below
// <upload_prefix>/<run id>/.
//
// The output directory is guarded by a file lock for the duration of Run, so two builds never
// interleave their files.
package export
